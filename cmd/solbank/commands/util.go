package commands

import (
	"encoding/json"
	"fmt"

	"github.com/cordialsys/solbank/cmd/solbank/setup"
	"github.com/cordialsys/solbank/config"
	"github.com/gagliardetto/solana-go"
)

// inputUserOrSigner returns the user given as the first argument, or else the configured keypair's address.
func inputUserOrSigner(cfg *config.ClientConfig, args []string) (solana.PublicKey, error) {
	if len(args) > 0 {
		user, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("invalid address %s: %v", args[0], err)
		}
		return user, nil
	}
	s, err := setup.LoadSigner(cfg)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("must provide [address] as input, or configure a keypair: %v", err)
	}
	return s.SolanaPublicKey(), nil
}

func asJson(data any) string {
	bz, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(bz)
}
