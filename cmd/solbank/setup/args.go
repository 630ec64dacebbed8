package setup

import (
	"fmt"
	"os"

	"github.com/cordialsys/solbank/config"
	"github.com/cordialsys/solbank/config/constants"
	"github.com/spf13/cobra"
)

type RpcArgs struct {
	ConfigPath     string
	Rpc            string
	Network        string
	ProgramID      string
	Keypair        string
	Commitment     string
	JournalDir     string
	UseProviderEnv bool
	VerbosityCount int
}

func AddRpcArgs(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", fmt.Sprintf("Path to client_config.yaml (may set %s).", constants.ConfigEnv))
	cmd.PersistentFlags().String("rpc", "", "RPC url to use. Optional, defaults to the network's public endpoint.")
	cmd.PersistentFlags().String("network", "", "Network to use: localnet, devnet, testnet or mainnet.")
	cmd.PersistentFlags().String("program-id", "", "sol_bank program id. Optional.")
	cmd.PersistentFlags().String("keypair", "", "Keypair file path or secret reference, e.g. env:SOLBANK_PRIVATE_KEY.")
	cmd.PersistentFlags().String("commitment", "", "Commitment to wait for: processed, confirmed or finalized.")
	cmd.PersistentFlags().String("journal", "", "Directory of the local transaction journal. Disabled when empty.")
	cmd.PersistentFlags().Bool("env", false, "Use the Anchor provider environment (ANCHOR_PROVIDER_URL, ANCHOR_WALLET).")
	cmd.PersistentFlags().CountP("verbose", "v", "Set verbosity.")
}

func RpcArgsFromCmd(cmd *cobra.Command) (*RpcArgs, error) {
	configPath, _ := cmd.Flags().GetString("config")
	rpc, _ := cmd.Flags().GetString("rpc")
	network, _ := cmd.Flags().GetString("network")
	programID, _ := cmd.Flags().GetString("program-id")
	keypair, _ := cmd.Flags().GetString("keypair")
	commitment, _ := cmd.Flags().GetString("commitment")
	journalDir, _ := cmd.Flags().GetString("journal")
	count, _ := cmd.Flags().GetCount("verbose")
	useEnv, err := cmd.Flags().GetBool("env")
	if err != nil {
		return nil, err
	}
	return &RpcArgs{
		ConfigPath:     configPath,
		Rpc:            rpc,
		Network:        network,
		ProgramID:      programID,
		Keypair:        keypair,
		Commitment:     commitment,
		JournalDir:     journalDir,
		UseProviderEnv: useEnv,
		VerbosityCount: count,
	}, nil
}

func ConfigureLogger(args *RpcArgs) {
	level := config.VerbosityLevel(args.VerbosityCount)
	if args.VerbosityCount == 0 && os.Getenv(config.LogLevelEnv) != "" {
		// let SOLBANK_LOG_LEVEL decide
		level = ""
	}
	config.ConfigureLogger(level)
}

// LoadConfig reads the config file, then applies the Anchor provider env and flags on top.
func LoadConfig(args *RpcArgs) (*config.ClientConfig, error) {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	if args.UseProviderEnv {
		provider, err := config.LoadProviderEnv(".env")
		if err != nil {
			return nil, err
		}
		provider.Apply(cfg)
	}
	if args.Rpc != "" {
		cfg.Rpc = args.Rpc
	}
	if args.Network != "" {
		cfg.Network = args.Network
	}
	if args.ProgramID != "" {
		cfg.ProgramID = args.ProgramID
	}
	if args.Keypair != "" {
		cfg.Keypair = config.Secret(args.Keypair)
	}
	if args.Commitment != "" {
		cfg.Commitment = args.Commitment
	}
	if args.JournalDir != "" {
		cfg.JournalDir = args.JournalDir
	}
	return cfg, nil
}
