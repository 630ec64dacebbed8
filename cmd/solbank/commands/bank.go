package commands

import (
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdInit() *cobra.Command {
	var ifMissing bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the bank account of the configured keypair.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			b, closer, err := setup.NewBank(cfg)
			if err != nil {
				return err
			}
			defer closer()

			var sig xc.TxHash
			if ifMissing {
				var created bool
				sig, created, err = b.EnsureInitialized(cmd.Context())
				if err == nil && !created {
					fmt.Fprintf(cmd.OutOrStdout(), "Account %s already initialized\n", b.UserAccountAddress())
					return nil
				}
			} else {
				sig, err = b.Initialize(cmd.Context())
			}
			if err != nil {
				return err
			}
			logrus.WithField("user_account", b.UserAccountAddress().String()).Info("initialized")
			fmt.Fprintf(cmd.OutOrStdout(), "Your transaction signature %s\n", sig)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ifMissing, "if-missing", false, "Do nothing if the account already exists.")
	return cmd
}

func parseAmount(input string, lamports bool) (xc.AmountBlockchain, error) {
	if lamports {
		amount := xc.NewAmountBlockchainFromStr(input)
		// only plain non-negative integers; big.Int also accepts hex and octal
		if amount.String() != input || amount.Sign() < 0 {
			return amount, fmt.Errorf("invalid lamports amount: %s", input)
		}
		return amount, nil
	}
	return xc.ParseSol(input)
}

func CmdDeposit() *cobra.Command {
	var lamports bool
	cmd := &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit SOL into the bank account.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0], lamports)
			if err != nil {
				return err
			}
			cfg := setup.UnwrapConfig(cmd.Context())
			b, closer, err := setup.NewBank(cfg)
			if err != nil {
				return err
			}
			defer closer()

			sig, err := b.Deposit(cmd.Context(), amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deposit tx = %s\n", sig)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lamports, "lamports", false, "Amount is in lamports instead of SOL.")
	return cmd
}

func CmdWithdraw() *cobra.Command {
	var lamports bool
	cmd := &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw SOL from the bank account.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0], lamports)
			if err != nil {
				return err
			}
			cfg := setup.UnwrapConfig(cmd.Context())
			b, closer, err := setup.NewBank(cfg)
			if err != nil {
				return err
			}
			defer closer()

			sig, err := b.Withdraw(cmd.Context(), amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "withdraw tx = %s\n", sig)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lamports, "lamports", false, "Amount is in lamports instead of SOL.")
	return cmd
}

func CmdRun() *cobra.Command {
	var depositInput string
	var withdrawInput string
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Initialize if needed, deposit, withdraw and report balances.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposit, err := xc.ParseSol(depositInput)
			if err != nil {
				return fmt.Errorf("invalid --deposit: %v", err)
			}
			withdraw, err := xc.ParseSol(withdrawInput)
			if err != nil {
				return fmt.Errorf("invalid --withdraw: %v", err)
			}
			cfg := setup.UnwrapConfig(cmd.Context())
			b, closer, err := setup.NewBank(cfg)
			if err != nil {
				return err
			}
			defer closer()

			fmt.Fprintf(cmd.OutOrStdout(), "PDA = %s\n", b.UserAccountAddress())
			report, err := b.RunScenario(cmd.Context(), deposit, withdraw)
			if jsonOutput && report != nil {
				fmt.Fprintln(cmd.OutOrStdout(), asJson(report))
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return nil
			}
			if report.AlreadyInitialized {
				fmt.Fprintf(cmd.OutOrStdout(), "account already initialized; balance = %d\n", report.InitialBalance)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "initialize tx = %s\n", report.InitializeSignature)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deposit tx = %s\n", report.DepositSignature)
			fmt.Fprintf(cmd.OutOrStdout(), "balance now = %d lamports\n", report.BalanceAfterDeposit)
			fmt.Fprintf(cmd.OutOrStdout(), "withdraw tx = %s\n", report.WithdrawSignature)
			fmt.Fprintf(cmd.OutOrStdout(), "final balance = %d lamports\n", report.FinalBalance)
			return nil
		},
	}
	cmd.Flags().StringVar(&depositInput, "deposit", "0.05", "SOL to deposit.")
	cmd.Flags().StringVar(&withdrawInput, "withdraw", "0.02", "SOL to withdraw.")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON.")
	return cmd
}

func CmdHistory() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the operations recorded in the local journal, newest first.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			if cfg.JournalDir == "" {
				return fmt.Errorf("no journal configured, set journal_dir or pass --journal")
			}
			b, closer, err := setup.NewBank(cfg)
			if err != nil {
				return err
			}
			defer closer()

			entries, err := b.History(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), asJson(entries))
			return nil
		},
	}
}
