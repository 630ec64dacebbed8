package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// ProviderEnv is the environment an Anchor provider is configured from.
type ProviderEnv struct {
	URL    string `env:"ANCHOR_PROVIDER_URL"`
	Wallet string `env:"ANCHOR_WALLET"`
}

// LoadProviderEnv reads ANCHOR_PROVIDER_URL and ANCHOR_WALLET. Any dotenv files
// given are loaded first and never override variables already set.
func LoadProviderEnv(dotenvFiles ...string) (*ProviderEnv, error) {
	for _, file := range dotenvFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, err
		}
	}
	provider := &ProviderEnv{}
	if err := env.Parse(provider); err != nil {
		return nil, err
	}
	if provider.URL == "" {
		return nil, errors.New("ANCHOR_PROVIDER_URL is not set")
	}
	if provider.Wallet == "" {
		return nil, errors.New("ANCHOR_WALLET is not set")
	}
	return provider, nil
}

// Apply points cfg at the provider's cluster and wallet.
func (provider *ProviderEnv) Apply(cfg *ClientConfig) {
	cfg.Rpc = provider.URL
	cfg.Keypair = Secret(provider.Wallet)
}
