package commands

import (
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/spf13/cobra"
)

func CmdBalance() *cobra.Command {
	var decimal bool
	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Check the SOL balance of an address. Reported in lamports unless --decimal is set.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			address, err := inputUserOrSigner(cfg, args)
			if err != nil {
				return err
			}
			rpcClient, err := setup.NewClient(cfg)
			if err != nil {
				return err
			}
			balance, err := rpcClient.FetchNativeBalance(cmd.Context(), xc.Address(address.String()))
			if err != nil {
				return fmt.Errorf("could not fetch balance for address %s: %v", address, err)
			}
			if decimal {
				fmt.Fprintln(cmd.OutOrStdout(), balance.ToSol().String())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), balance.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&decimal, "decimal", false, "Report balance in SOL.")
	return cmd
}
