package setup

import (
	"context"
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/bank"
	"github.com/cordialsys/solbank/client"
	"github.com/cordialsys/solbank/config"
	"github.com/cordialsys/solbank/journal"
	"github.com/cordialsys/solbank/signer"
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

type RpcContextKey string

const ContextConfig RpcContextKey = "config"

func WrapConfig(ctx context.Context, cfg *config.ClientConfig) context.Context {
	return context.WithValue(ctx, ContextConfig, cfg)
}

func UnwrapConfig(ctx context.Context) *config.ClientConfig {
	return ctx.Value(ContextConfig).(*config.ClientConfig)
}

func CreateContext(cfg *config.ClientConfig) context.Context {
	return WrapConfig(context.Background(), cfg)
}

func ProgramID(cfg *config.ClientConfig) (solana.PublicKey, error) {
	if cfg.ProgramID == "" {
		return solana.MustPublicKeyFromBase58(config.DefaultProgramID), nil
	}
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program id %s: %v", cfg.ProgramID, err)
	}
	return programID, nil
}

// ClientURL returns the configured rpc, or the public endpoint of the network.
func ClientURL(cfg *config.ClientConfig) string {
	if cfg.Rpc != "" {
		return cfg.Rpc
	}
	return xc.ParseNetwork(cfg.Network).URL()
}

func NewClient(cfg *config.ClientConfig) (*client.Client, error) {
	programID, err := ProgramID(cfg)
	if err != nil {
		return nil, err
	}
	return client.NewClient(ClientURL(cfg),
		client.WithNetwork(xc.ParseNetwork(cfg.Network)),
		client.WithProgramID(programID),
		client.WithCommitment(client.ParseCommitment(cfg.Commitment)),
	), nil
}

func LoadSigner(cfg *config.ClientConfig) (*signer.Signer, error) {
	keypair, err := config.ResolveKeypair(cfg.Keypair)
	if err != nil {
		return nil, err
	}
	if keypair == "" {
		return nil, fmt.Errorf("keypair is empty, set it in the config, with --keypair or with --env")
	}
	s, err := signer.New(keypair)
	if err != nil {
		return nil, fmt.Errorf("failed to decode keypair: %v", err)
	}
	return s, nil
}

// NewBank connects a bank for the configured keypair. The returned closer releases the journal.
func NewBank(cfg *config.ClientConfig) (*bank.Bank, func(), error) {
	rpcClient, err := NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := LoadSigner(cfg)
	if err != nil {
		return nil, nil, err
	}
	timeout, err := cfg.ConfirmTimeoutDuration()
	if err != nil {
		return nil, nil, err
	}
	options := []bank.Option{
		bank.WithConfirmTimeout(timeout),
		bank.WithPriorityFee(cfg.PriorityFee),
	}
	closer := func() {}
	if cfg.JournalDir != "" {
		store, err := journal.Open(cfg.JournalDir)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, bank.WithJournal(store))
		closer = func() {
			if err := store.Close(); err != nil {
				logrus.WithError(err).Warn("could not close journal")
			}
		}
	}
	b, err := bank.New(rpcClient, s, rpcClient.ProgramID, options...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return b, closer, nil
}
