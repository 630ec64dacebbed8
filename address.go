package solbank

// Address is a base58 encoded Solana public key
type Address string

// PublicKey is a raw 32-byte ed25519 public key
type PublicKey []byte

// AddressBuilder is the interface for building addresses
type AddressBuilder interface {
	GetAddressFromPublicKey(publicKeyBytes []byte) (Address, error)
}
