package commands

import (
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/cordialsys/solbank/program"
	"github.com/spf13/cobra"
)

func CmdPda() *cobra.Command {
	return &cobra.Command{
		Use:   "pda [user]",
		Short: "Derive the bank account address (PDA) of a user.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			user, err := inputUserOrSigner(cfg, args)
			if err != nil {
				return err
			}
			programID, err := setup.ProgramID(cfg)
			if err != nil {
				return err
			}
			pda, bump, err := program.FindUserAccountAddress(user, programID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), asJson(map[string]interface{}{
				"user":         user.String(),
				"program_id":   programID.String(),
				"user_account": pda.String(),
				"bump":         bump,
			}))
			return nil
		},
	}
}

type accountOutput struct {
	UserAccount string                 `json:"user_account"`
	Authority   string                 `json:"authority"`
	Balance     xc.AmountBlockchain    `json:"balance"`
	BalanceSol  xc.AmountHumanReadable `json:"balance_sol"`
}

func CmdAccount() *cobra.Command {
	return &cobra.Command{
		Use:   "account [user]",
		Short: "Show the bank account of a user.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			user, err := inputUserOrSigner(cfg, args)
			if err != nil {
				return err
			}
			rpcClient, err := setup.NewClient(cfg)
			if err != nil {
				return err
			}
			pda, _, err := program.FindUserAccountAddress(user, rpcClient.ProgramID)
			if err != nil {
				return err
			}
			account, err := rpcClient.FetchUserAccount(cmd.Context(), pda)
			if err != nil {
				return fmt.Errorf("could not fetch account %s: %w", pda, err)
			}
			balance := xc.NewAmountBlockchainFromUint64(account.Balance)
			fmt.Fprintln(cmd.OutOrStdout(), asJson(accountOutput{
				UserAccount: pda.String(),
				Authority:   account.Authority.String(),
				Balance:     balance,
				BalanceSol:  balance.ToSol(),
			}))
			return nil
		},
	}
}
