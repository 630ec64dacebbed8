package program

import (
	"crypto/sha256"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Default deployment of the sol_bank program.
var ProgramID = solana.MustPublicKeyFromBase58("72p9csHh7VeF2yCgsYjcwNzujaQpPvLKJZ9c5v6nz9CV")

// Seed prefix of the per-user PDA.
const UserAccountSeed = "user-account"

// FindUserAccountAddress derives the PDA holding the bank account of user.
func FindUserAccountAddress(user solana.PublicKey, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	if programID.IsZero() {
		programID = ProgramID
	}
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			[]byte(UserAccountSeed),
			user[:],
		},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("could not derive user account for %s: %w", user, err)
	}
	return pda, bump, nil
}

const DiscriminatorLength = 8

type Discriminator [DiscriminatorLength]byte

func (d Discriminator) Equals(data []byte) bool {
	if len(data) < DiscriminatorLength {
		return false
	}
	return [DiscriminatorLength]byte(data[:DiscriminatorLength]) == d
}

func sighash(namespace string, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], sum[:DiscriminatorLength])
	return d
}

// InstructionDiscriminator is the anchor "global" namespace sighash of a method.
func InstructionDiscriminator(name string) Discriminator {
	return sighash("global", name)
}

// AccountDiscriminator is the anchor sighash prefixing serialized account data.
func AccountDiscriminator(name string) Discriminator {
	return sighash("account", name)
}
