package program

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	InstructionInitialize = "initialize"
	InstructionDeposit    = "deposit"
	InstructionWithdraw   = "withdraw"
)

var (
	InitializeDiscriminator = InstructionDiscriminator(InstructionInitialize)
	DepositDiscriminator    = InstructionDiscriminator(InstructionDeposit)
	WithdrawDiscriminator   = InstructionDiscriminator(InstructionWithdraw)
)

// AmountArgs are the borsh arguments of deposit and withdraw.
type AmountArgs struct {
	Amount uint64
}

// Instruction is a sol_bank instruction. It implements solana.Instruction.
type Instruction struct {
	Name      string
	Program   solana.PublicKey
	User      solana.PublicKey
	UserPDA   solana.PublicKey
	Amount    uint64
	hasAmount bool
}

var _ solana.Instruction = &Instruction{}

func newInstruction(name string, programID solana.PublicKey, user solana.PublicKey) (*Instruction, error) {
	if programID.IsZero() {
		programID = ProgramID
	}
	pda, _, err := FindUserAccountAddress(user, programID)
	if err != nil {
		return nil, err
	}
	return &Instruction{
		Name:    name,
		Program: programID,
		User:    user,
		UserPDA: pda,
	}, nil
}

// NewInitializeInstruction creates the PDA of user with a zero balance.
func NewInitializeInstruction(programID solana.PublicKey, user solana.PublicKey) (*Instruction, error) {
	return newInstruction(InstructionInitialize, programID, user)
}

// NewDepositInstruction moves amount lamports from user into its PDA.
func NewDepositInstruction(programID solana.PublicKey, user solana.PublicKey, amount uint64) (*Instruction, error) {
	ix, err := newInstruction(InstructionDeposit, programID, user)
	if err != nil {
		return nil, err
	}
	ix.Amount = amount
	ix.hasAmount = true
	return ix, nil
}

// NewWithdrawInstruction moves amount lamports from the PDA back to user.
func NewWithdrawInstruction(programID solana.PublicKey, user solana.PublicKey, amount uint64) (*Instruction, error) {
	ix, err := newInstruction(InstructionWithdraw, programID, user)
	if err != nil {
		return nil, err
	}
	ix.Amount = amount
	ix.hasAmount = true
	return ix, nil
}

func (ix *Instruction) ProgramID() solana.PublicKey {
	return ix.Program
}

// All instructions share the same account layout.
func (ix *Instruction) Accounts() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.Meta(ix.UserPDA).WRITE(),
		solana.Meta(ix.User).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	}
}

func (ix *Instruction) Discriminator() Discriminator {
	return InstructionDiscriminator(ix.Name)
}

func (ix *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	discriminator := ix.Discriminator()
	buf.Write(discriminator[:])
	if ix.hasAmount {
		if err := bin.NewBorshEncoder(buf).Encode(&AmountArgs{Amount: ix.Amount}); err != nil {
			return nil, fmt.Errorf("could not encode %s args: %w", ix.Name, err)
		}
	}
	return buf.Bytes(), nil
}

// DecodeInstruction recognizes sol_bank instructions by their discriminator.
func DecodeInstruction(programID solana.PublicKey, accounts []*solana.AccountMeta, data []byte) (*Instruction, error) {
	if len(data) < DiscriminatorLength {
		return nil, fmt.Errorf("instruction data too short: %d bytes", len(data))
	}
	if len(accounts) < 3 {
		return nil, fmt.Errorf("expected 3 accounts, got %d", len(accounts))
	}
	ix := &Instruction{
		Program: programID,
		UserPDA: accounts[0].PublicKey,
		User:    accounts[1].PublicKey,
	}
	switch {
	case InitializeDiscriminator.Equals(data):
		ix.Name = InstructionInitialize
		return ix, nil
	case DepositDiscriminator.Equals(data):
		ix.Name = InstructionDeposit
	case WithdrawDiscriminator.Equals(data):
		ix.Name = InstructionWithdraw
	default:
		return nil, fmt.Errorf("unknown instruction discriminator %x", data[:DiscriminatorLength])
	}
	args := AmountArgs{}
	if err := bin.NewBorshDecoder(data[DiscriminatorLength:]).Decode(&args); err != nil {
		return nil, fmt.Errorf("could not decode %s args: %w", ix.Name, err)
	}
	ix.Amount = args.Amount
	ix.hasAmount = true
	return ix, nil
}
