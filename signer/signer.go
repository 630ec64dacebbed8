package signer

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/address"
	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/pbkdf2"
)

// Signer holds an ed25519 keypair. It is a reference implementation to sign
// transactions and is not meant to be used with production funds.
type Signer struct {
	privateKey ed25519.PrivateKey
}

// New creates a signer from any supported private key encoding.
func New(privateKeyInput string) (*Signer, error) {
	privateKey, err := ImportPrivateKey(privateKeyInput)
	if err != nil {
		return nil, err
	}
	return &Signer{privateKey}, nil
}

// FromBytes creates a signer from a 64-byte keypair or a 32-byte seed.
// The public half of a keypair must match the one derived from its seed.
func FromBytes(bz []byte) (*Signer, error) {
	switch len(bz) {
	case ed25519.PrivateKeySize:
		key := ed25519.NewKeyFromSeed(bz[:ed25519.SeedSize])
		if !bytes.Equal(key[ed25519.SeedSize:], bz[ed25519.SeedSize:]) {
			return nil, errors.New("failed to decode keypair bytes: public key does not match seed")
		}
		return &Signer{key}, nil
	case ed25519.SeedSize:
		return &Signer{ed25519.NewKeyFromSeed(bz)}, nil
	}
	return nil, fmt.Errorf("expected ed25519 key to be 64 or 32 bytes, got %d", len(bz))
}

// LoadKeypairFile reads a keypair file as written by solana-keygen.
func LoadKeypairFile(path string) (*Signer, error) {
	if len(path) > 1 && path[0] == '~' {
		path = strings.Replace(path, "~", os.Getenv("HOME"), 1)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read keypair file: %w", err)
	}
	return New(string(contents))
}

// ImportPrivateKey accepts, in order: a JSON byte array (solana-keygen format),
// a seed phrase, hex (32-byte seed or 64-byte keypair) or base58 (64-byte keypair).
func ImportPrivateKey(privateKey string) (ed25519.PrivateKey, error) {
	privateKey = strings.TrimSpace(privateKey)
	if privateKey == "" {
		return nil, errors.New("empty private key")
	}
	if strings.HasPrefix(privateKey, "[") {
		var numbers []int
		if err := json.Unmarshal([]byte(privateKey), &numbers); err != nil {
			return nil, fmt.Errorf("invalid keypair array: %v", err)
		}
		bz := make([]byte, len(numbers))
		for i, n := range numbers {
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("invalid keypair array: byte %d out of range", i)
			}
			bz[i] = byte(n)
		}
		signer, err := FromBytes(bz)
		if err != nil {
			return nil, err
		}
		return signer.privateKey, nil
	}
	if strings.Contains(privateKey, " ") {
		return FromMnemonic(privateKey, "")
	}
	// try hex first
	bz, err := hex.DecodeString(strings.TrimPrefix(privateKey, "0x"))
	if err == nil && (len(bz) == ed25519.SeedSize || len(bz) == ed25519.PrivateKeySize) {
		signer, err := FromBytes(bz)
		if err != nil {
			return nil, err
		}
		return signer.privateKey, nil
	}
	// use base58 directly
	base58bz := base58.Decode(privateKey)
	if len(base58bz) != ed25519.PrivateKeySize {
		return nil, errors.New("expected ed25519 key to be 64 or 32 bytes")
	}
	signer, err := FromBytes(base58bz)
	if err != nil {
		return nil, err
	}
	return signer.privateKey, nil
}

// FromMnemonic derives a keypair from a seed phrase the way `solana-keygen recover`
// does without a derivation path: the first 32 bytes of the BIP39 seed.
func FromMnemonic(mnemonic string, passphrase string) (ed25519.PrivateKey, error) {
	words := strings.Fields(mnemonic)
	if len(words) < 12 {
		return nil, errors.New("invalid mnemonic")
	}
	normalized := strings.Join(words, " ")
	seed := pbkdf2.Key([]byte(normalized), []byte("mnemonic"+passphrase), 2048, 64, sha512.New)
	return ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]), nil
}

func (s *Signer) PublicKey() xc.PublicKey {
	publicKey := s.privateKey.Public().(ed25519.PublicKey)
	return xc.PublicKey(publicKey)
}

func (s *Signer) SolanaPublicKey() solana.PublicKey {
	return solana.PublicKeyFromBytes(s.PublicKey())
}

func (s *Signer) Address() xc.Address {
	addr, _ := address.NewAddressBuilder().GetAddressFromPublicKey(s.PublicKey())
	return addr
}

// Keypair returns the 64 byte keypair in the solana-keygen JSON layout.
func (s *Signer) Keypair() []byte {
	return append([]byte{}, s.privateKey...)
}

func (s *Signer) Sign(req *xc.SignatureRequest) (*xc.SignatureResponse, error) {
	if req == nil {
		return nil, errors.New("nil signature request")
	}
	if req.Signer != "" && req.Signer != s.Address() {
		return nil, fmt.Errorf("signature requested for %s, but signer is %s", req.Signer, s.Address())
	}
	signatureRaw := ed25519.Sign(s.privateKey, req.Payload)
	return &xc.SignatureResponse{
		Signature: xc.TxSignature(signatureRaw),
		PublicKey: s.PublicKey(),
		Address:   s.Address(),
	}, nil
}

// SignTx signs every sighash of tx and attaches the signatures.
func (s *Signer) SignTx(tx xc.Tx) error {
	sighashes, err := tx.Sighashes()
	if err != nil {
		return fmt.Errorf("could not create payloads to sign: %w", err)
	}
	signatures := []*xc.SignatureResponse{}
	for _, sighash := range sighashes {
		signature, err := s.Sign(sighash)
		if err != nil {
			return err
		}
		signatures = append(signatures, signature)
	}
	return tx.SetSignatures(signatures...)
}
