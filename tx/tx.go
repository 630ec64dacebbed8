package tx

import (
	"errors"
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/program"
	"github.com/gagliardetto/solana-go"
)

// Tx for Solana, encapsulating a solana.Transaction
type Tx struct {
	SolTx           *solana.Transaction
	ProgramID       solana.PublicKey
	inputSignatures []xc.TxSignature
}

var _ xc.Tx = &Tx{}

func NewTxFrom(solTx *solana.Transaction, programID solana.PublicKey) *Tx {
	return &Tx{
		SolTx:     solTx,
		ProgramID: programID,
	}
}

// Hash returns the tx hash or id, for Solana it's signature
func (tx Tx) Hash() xc.TxHash {
	if tx.SolTx != nil && len(tx.SolTx.Signatures) > 0 {
		sig := tx.SolTx.Signatures[0]
		return xc.TxHash(sig.String())
	}
	return xc.TxHash("")
}

// Sighashes returns the tx payload to sign, aka sighashes
func (tx Tx) Sighashes() ([]*xc.SignatureRequest, error) {
	if tx.SolTx == nil {
		return nil, errors.New("transaction not initialized")
	}
	messageContent, err := tx.SolTx.Message.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("unable to encode message for signing: %w", err)
	}
	// single signature from the user, who is also the fee payer
	return []*xc.SignatureRequest{
		xc.NewSignatureRequest(messageContent),
	}, nil
}

// SetSignatures adds a signature to Tx
func (tx *Tx) SetSignatures(signatures ...*xc.SignatureResponse) error {
	if tx.SolTx == nil {
		return errors.New("transaction not initialized")
	}
	tx.inputSignatures = []xc.TxSignature{}
	solSignatures := make([]solana.Signature, len(signatures))
	for i, signature := range signatures {
		if len(signature.Signature) != solana.SignatureLength {
			return fmt.Errorf("invalid signature (%d): %x", len(signature.Signature), signature.Signature)
		}
		copy(solSignatures[i][:], signature.Signature)
		tx.inputSignatures = append(tx.inputSignatures, xc.TxSignature(signature.Signature))
	}
	tx.SolTx.Signatures = solSignatures
	return nil
}

func (tx Tx) GetSignatures() []xc.TxSignature {
	return tx.inputSignatures
}

// Serialize returns the serialized tx
func (tx Tx) Serialize() ([]byte, error) {
	if tx.SolTx == nil {
		return []byte{}, errors.New("transaction not initialized")
	}
	return tx.SolTx.MarshalBinary()
}

// Instructions decodes the sol_bank instructions of the transaction, skipping
// instructions of other programs (e.g. compute budget).
func (tx Tx) Instructions() []*program.Instruction {
	return DecodeInstructions(tx.SolTx, tx.ProgramID)
}

func DecodeInstructions(solTx *solana.Transaction, programID solana.PublicKey) []*program.Instruction {
	results := []*program.Instruction{}
	if solTx == nil {
		return results
	}
	if programID.IsZero() {
		programID = program.ProgramID
	}
	message := solTx.Message
	for _, instruction := range message.Instructions {
		programKey, err := message.ResolveProgramIDIndex(instruction.ProgramIDIndex)
		if err != nil {
			continue
		}
		if !programKey.Equals(programID) {
			continue
		}
		accounts, err := instruction.ResolveInstructionAccounts(&message)
		if err != nil {
			continue
		}
		ix, err := program.DecodeInstruction(programKey, accounts, instruction.Data)
		if err != nil {
			continue
		}
		results = append(results, ix)
	}
	return results
}
