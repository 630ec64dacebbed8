package commands

import (
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/spf13/cobra"
)

func CmdTxInfo() *cobra.Command {
	return &cobra.Command{
		Use:     "tx-info <signature>",
		Aliases: []string{"tx"},
		Short:   "Check an existing transaction on chain.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			rpcClient, err := setup.NewClient(cfg)
			if err != nil {
				return err
			}
			txInfo, err := rpcClient.FetchTxInfo(cmd.Context(), xc.TxHash(args[0]))
			if err != nil {
				return fmt.Errorf("could not fetch tx info: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), asJson(txInfo))
			return nil
		},
	}
}

func CmdAirdrop() *cobra.Command {
	return &cobra.Command{
		Use:   "airdrop <amount> [address]",
		Short: "Request SOL from the cluster faucet. Not available on mainnet.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := xc.ParseSol(args[0])
			if err != nil {
				return err
			}
			cfg := setup.UnwrapConfig(cmd.Context())
			address, err := inputUserOrSigner(cfg, args[1:])
			if err != nil {
				return err
			}
			rpcClient, err := setup.NewClient(cfg)
			if err != nil {
				return err
			}
			timeout, err := cfg.ConfirmTimeoutDuration()
			if err != nil {
				return err
			}
			sig, err := rpcClient.RequestAirdrop(cmd.Context(), xc.Address(address.String()), amount)
			if err != nil {
				return err
			}
			if err := rpcClient.ConfirmTx(cmd.Context(), sig, timeout); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "airdrop tx = %s\n", sig)
			return nil
		},
	}
}
