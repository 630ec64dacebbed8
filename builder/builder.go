package builder

import (
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/program"
	"github.com/cordialsys/solbank/tx"
	"github.com/cordialsys/solbank/tx_input"
	"github.com/gagliardetto/solana-go"
	compute_budget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/sirupsen/logrus"
)

// TxBuilder for the sol_bank program
type TxBuilder struct {
	ProgramID solana.PublicKey
	// Upper bound of the compute unit price, in microlamports
	MaxPrioritizationFee uint64
}

type TxInput = tx_input.TxInput

// NewTxBuilder creates a new TxBuilder for a deployment of sol_bank
func NewTxBuilder(programID solana.PublicKey) TxBuilder {
	if programID.IsZero() {
		programID = program.ProgramID
	}
	return TxBuilder{
		ProgramID: programID,
	}
}

// Initialize creates a tx that creates the user's bank account
func (txBuilder TxBuilder) Initialize(user xc.Address, input *TxInput) (*tx.Tx, error) {
	userKey, err := solana.PublicKeyFromBase58(string(user))
	if err != nil {
		return nil, err
	}
	ix, err := program.NewInitializeInstruction(txBuilder.ProgramID, userKey)
	if err != nil {
		return nil, err
	}
	return txBuilder.buildSolanaTx(userKey, ix, input)
}

// Deposit creates a tx moving amount lamports from user into its bank account
func (txBuilder TxBuilder) Deposit(user xc.Address, amount xc.AmountBlockchain, input *TxInput) (*tx.Tx, error) {
	userKey, err := solana.PublicKeyFromBase58(string(user))
	if err != nil {
		return nil, err
	}
	if !amount.IsUint64() {
		return nil, fmt.Errorf("invalid deposit amount: %s", amount.String())
	}
	ix, err := program.NewDepositInstruction(txBuilder.ProgramID, userKey, amount.Uint64())
	if err != nil {
		return nil, err
	}
	return txBuilder.buildSolanaTx(userKey, ix, input)
}

// Withdraw creates a tx moving amount lamports from the user's bank account back to user
func (txBuilder TxBuilder) Withdraw(user xc.Address, amount xc.AmountBlockchain, input *TxInput) (*tx.Tx, error) {
	userKey, err := solana.PublicKeyFromBase58(string(user))
	if err != nil {
		return nil, err
	}
	if !amount.IsUint64() {
		return nil, fmt.Errorf("invalid withdraw amount: %s", amount.String())
	}
	ix, err := program.NewWithdrawInstruction(txBuilder.ProgramID, userKey, amount.Uint64())
	if err != nil {
		return nil, err
	}
	return txBuilder.buildSolanaTx(userKey, ix, input)
}

func (txBuilder TxBuilder) buildSolanaTx(feePayer solana.PublicKey, ix *program.Instruction, input *TxInput) (*tx.Tx, error) {
	if input == nil {
		return nil, fmt.Errorf("missing tx input")
	}
	instructions := []solana.Instruction{
		ix,
	}
	priorityFee := input.GetLimitedPrioritizationFee(txBuilder.MaxPrioritizationFee)
	if priorityFee > 0 {
		instructions = append(instructions,
			compute_budget.NewSetComputeUnitPriceInstruction(priorityFee).Build(),
		)
	}
	logrus.WithFields(logrus.Fields{
		"instruction":  ix.Name,
		"amount":       ix.Amount,
		"user_account": ix.UserPDA.String(),
		"priority_fee": priorityFee,
	}).Debug("building transaction")

	solTx, err := solana.NewTransaction(
		instructions,
		input.RecentBlockHash,
		solana.TransactionPayer(feePayer),
	)
	if err != nil {
		return nil, err
	}
	return tx.NewTxFrom(solTx, txBuilder.ProgramID), nil
}
