package commands

import (
	"fmt"
	"strings"

	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/cordialsys/solbank/config"
	"github.com/spf13/cobra"
)

func CmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the client configuration.",
	}
	cmd.AddCommand(CmdConfigInit())
	cmd.AddCommand(CmdConfigShow())
	return cmd
}

func CmdConfigInit() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a client configuration file (.yaml, .toml or .json).",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			if cfg.Keypair == "" {
				cfg.Keypair = config.Secret(config.DefaultKeypairPath)
			}
			if err := cfg.Write(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "client_config.yaml", "Path to write.")
	return cmd
}

func CmdConfigShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *setup.UnwrapConfig(cmd.Context())
			keypair := string(cfg.Keypair)
			if strings.HasPrefix(keypair, string(config.Raw)+":") || strings.HasPrefix(keypair, "[") {
				// never print key material
				cfg.Keypair = "***"
			}
			fmt.Fprintln(cmd.OutOrStdout(), asJson(cfg))
			fmt.Fprintf(cmd.OutOrStdout(), "rpc url: %s\n", setup.ClientURL(&cfg))
			return nil
		},
	}
}
