package client

import (
	"context"
	"errors"
	"fmt"

	xc "github.com/cordialsys/solbank"
	xcerrors "github.com/cordialsys/solbank/client/errors"
	"github.com/cordialsys/solbank/program"
	"github.com/cordialsys/solbank/tx"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// InstructionInfo is a decoded sol_bank instruction of a transaction.
type InstructionInfo struct {
	Name        string                 `json:"name"`
	User        xc.Address             `json:"user"`
	UserAccount xc.Address             `json:"user_account"`
	Amount      xc.AmountBlockchain    `json:"amount"`
	AmountSol   xc.AmountHumanReadable `json:"amount_sol"`
}

// TxInfo is a summary of a sol_bank transaction on chain.
type TxInfo struct {
	Hash         xc.TxHash           `json:"hash"`
	Slot         uint64              `json:"slot"`
	BlockTime    int64               `json:"block_time,omitempty"`
	Fee          xc.AmountBlockchain `json:"fee"`
	Status       xc.TxStatus         `json:"status"`
	Error        string              `json:"error,omitempty"`
	Instructions []*InstructionInfo  `json:"instructions"`
	Logs         []string            `json:"logs,omitempty"`
}

// FetchTxInfo returns the sol_bank view of a transaction
func (client *Client) FetchTxInfo(ctx context.Context, txHash xc.TxHash) (*TxInfo, error) {
	txSig, err := solana.SignatureFromBase58(string(txHash))
	if err != nil {
		return nil, err
	}
	// confusingly, '0' is the latest version, which comes after 'legacy' (no version).
	maxVersion := uint64(0)
	commitment := client.Commitment
	if commitment == rpc.CommitmentProcessed {
		// getTransaction does not support processed
		commitment = rpc.CommitmentConfirmed
	}
	res, err := client.SolClient.GetTransaction(
		ctx,
		txSig,
		&rpc.GetTransactionOpts{
			Encoding:                       solana.EncodingBase64,
			Commitment:                     commitment,
			MaxSupportedTransactionVersion: &maxVersion,
		},
	)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, xcerrors.TransactionNotFoundf("%v", err)
		}
		return nil, err
	}
	if res == nil || res.Transaction == nil {
		return nil, fmt.Errorf("invalid transaction in response")
	}

	solTx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(res.Transaction.GetBinary()))
	if err != nil {
		return nil, fmt.Errorf("error decoding transaction: %w", err)
	}

	info := &TxInfo{
		Hash:         txHash,
		Slot:         res.Slot,
		Fee:          xc.NewAmountBlockchainFromUint64(0),
		Status:       xc.TxStatusSuccess,
		Instructions: []*InstructionInfo{},
	}
	if res.BlockTime != nil {
		info.BlockTime = res.BlockTime.Time().Unix()
	}
	if meta := res.Meta; meta != nil {
		info.Fee = xc.NewAmountBlockchainFromUint64(meta.Fee)
		info.Logs = meta.LogMessages
		if meta.Err != nil {
			info.Status = xc.TxStatusFailure
			txErr := TransactionError(meta.Err, client.ProgramID, solTx)
			if programErr := program.ParseError(client.ProgramID, txErr, meta.LogMessages...); programErr != nil {
				info.Error = programErr.Error()
			} else {
				info.Error = txErr.Error()
			}
		}
	}

	for _, ix := range tx.DecodeInstructions(solTx, client.ProgramID) {
		amount := xc.NewAmountBlockchainFromUint64(ix.Amount)
		info.Instructions = append(info.Instructions, &InstructionInfo{
			Name:        ix.Name,
			User:        xc.Address(ix.User.String()),
			UserAccount: xc.Address(ix.UserPDA.String()),
			Amount:      amount,
			AmountSol:   amount.ToSol(),
		})
	}
	return info, nil
}
