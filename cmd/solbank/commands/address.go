package commands

import (
	"fmt"

	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/spf13/cobra"
)

func CmdAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the address of the configured keypair.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			s, err := setup.LoadSigner(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Address())
			return nil
		},
	}
}
