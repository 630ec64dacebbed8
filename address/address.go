package address

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	xc "github.com/cordialsys/solbank"
	"github.com/gagliardetto/solana-go"
)

// AddressBuilder for Solana
type AddressBuilder struct {
}

var _ xc.AddressBuilder = AddressBuilder{}

// NewAddressBuilder creates a new Solana AddressBuilder
func NewAddressBuilder() AddressBuilder {
	return AddressBuilder{}
}

// GetAddressFromPublicKey returns an Address given a public key
func (ab AddressBuilder) GetAddressFromPublicKey(publicKeyBytes []byte) (xc.Address, error) {
	if len(publicKeyBytes) != 32 {
		return xc.Address(""), fmt.Errorf("expected address length 32, got address length %v", len(publicKeyBytes))
	}
	return xc.Address(base58.Encode(publicKeyBytes)), nil
}

// Validate checks that addr is a base58 encoded 32 byte key
func Validate(addr xc.Address) error {
	if _, err := solana.PublicKeyFromBase58(string(addr)); err != nil {
		return fmt.Errorf("invalid solana address %q: %v", addr, err)
	}
	return nil
}
