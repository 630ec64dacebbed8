package tx_input

import (
	xc "github.com/cordialsys/solbank"
	"github.com/gagliardetto/solana-go"
)

// TxInput for a sol_bank transaction
type TxInput struct {
	RecentBlockHash   solana.Hash         `json:"recent_block_hash,omitempty"`
	PrioritizationFee xc.AmountBlockchain `json:"prioritization_fee,omitempty"`
	Timestamp         int64               `json:"timestamp,omitempty"`
}

// Default max price, to spend at most 1 SOL on a transaction:
// 1 SOL = (1 * 10 ** 9) * 10 ** 6 microlamports / 200_000 compute units
const DefaultMaxPrioritizationFee = 5_000_000_000

// Returns the microlamports to set the compute budget unit price.
// It will not go above the max price for safety concerns.
func (input *TxInput) GetLimitedPrioritizationFee(max uint64) uint64 {
	fee := input.PrioritizationFee.Uint64()
	if max == 0 {
		max = DefaultMaxPrioritizationFee
	}
	if fee > max {
		fee = max
	}
	return fee
}

func (input *TxInput) SetUnix(unix int64) {
	input.Timestamp = unix
}

// NewTxInput returns a new Solana TxInput
func NewTxInput() *TxInput {
	return &TxInput{}
}
