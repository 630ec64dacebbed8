package program

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const UserAccountName = "UserAccount"

// discriminator + authority + balance
const UserAccountSpace = DiscriminatorLength + 32 + 8

var UserAccountDiscriminator = AccountDiscriminator(UserAccountName)

// UserAccount is the state stored in each user's PDA.
type UserAccount struct {
	Authority solana.PublicKey `json:"authority"`
	Balance   uint64           `json:"balance"`
}

// NewUserAccount is the state written by the initialize instruction.
func NewUserAccount(authority solana.PublicKey) *UserAccount {
	return &UserAccount{
		Authority: authority,
		Balance:   0,
	}
}

func DecodeUserAccount(data []byte) (*UserAccount, error) {
	if len(data) < UserAccountSpace {
		return nil, fmt.Errorf("invalid user account: expected at least %d bytes, got %d", UserAccountSpace, len(data))
	}
	if !UserAccountDiscriminator.Equals(data) {
		return nil, fmt.Errorf("invalid user account: discriminator mismatch")
	}
	account := &UserAccount{}
	if err := bin.NewBorshDecoder(data[DiscriminatorLength:]).Decode(account); err != nil {
		return nil, fmt.Errorf("could not decode user account: %w", err)
	}
	return account, nil
}

func (account *UserAccount) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(UserAccountDiscriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(account); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ApplyDeposit updates the tracked balance the way the program does.
func (account *UserAccount) ApplyDeposit(amount uint64) error {
	balance := account.Balance + amount
	if balance < account.Balance {
		return ErrOverflow
	}
	account.Balance = balance
	return nil
}

// ApplyWithdraw updates the tracked balance the way the program does.
func (account *UserAccount) ApplyWithdraw(amount uint64) error {
	if account.Balance < amount {
		return ErrInsufficientFunds
	}
	account.Balance -= amount
	return nil
}
