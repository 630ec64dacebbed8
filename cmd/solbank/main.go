package main

import (
	"os"

	"github.com/cordialsys/solbank/cmd/solbank/commands"
	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdSolbank() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "solbank",
		Short:        "Deposit and withdraw SOL with the sol_bank program",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			args, err := setup.RpcArgsFromCmd(cmd)
			if err != nil {
				return err
			}
			setup.ConfigureLogger(args)

			cfg, err := setup.LoadConfig(args)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"rpc":        setup.ClientURL(cfg),
				"network":    cfg.Network,
				"program_id": cfg.ProgramID,
			}).Info("config")
			cmd.SetContext(setup.CreateContext(cfg))
			return nil
		},
	}
	setup.AddRpcArgs(cmd)

	cmd.AddCommand(commands.CmdAddress())
	cmd.AddCommand(commands.CmdPda())
	cmd.AddCommand(commands.CmdAccount())
	cmd.AddCommand(commands.CmdBalance())
	cmd.AddCommand(commands.CmdInit())
	cmd.AddCommand(commands.CmdDeposit())
	cmd.AddCommand(commands.CmdWithdraw())
	cmd.AddCommand(commands.CmdRun())
	cmd.AddCommand(commands.CmdTxInfo())
	cmd.AddCommand(commands.CmdHistory())
	cmd.AddCommand(commands.CmdAirdrop())
	cmd.AddCommand(commands.CmdConfig())

	return cmd
}

func main() {
	rootCmd := CmdSolbank()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
