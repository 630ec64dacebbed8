package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	xc "github.com/cordialsys/solbank"
	xcerrors "github.com/cordialsys/solbank/client/errors"
	"github.com/cordialsys/solbank/program"
	"github.com/cordialsys/solbank/tx_input"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

const DefaultConfirmTimeout = 60 * time.Second
const DefaultPollInterval = 500 * time.Millisecond

// Client for the sol_bank program over Solana JSON-RPC
type Client struct {
	SolClient    *rpc.Client
	URL          string
	Network      xc.Network
	ProgramID    solana.PublicKey
	Commitment   rpc.CommitmentType
	PollInterval time.Duration
}

type Option func(*Client)

func WithNetwork(network xc.Network) Option {
	return func(c *Client) {
		c.Network = network
	}
}

func WithProgramID(programID solana.PublicKey) Option {
	return func(c *Client) {
		if !programID.IsZero() {
			c.ProgramID = programID
		}
	}
}

func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(c *Client) {
		if commitment != "" {
			c.Commitment = commitment
		}
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.PollInterval = interval
		}
	}
}

// NewClient returns a new JSON-RPC Client to the Solana node
func NewClient(url string, options ...Option) *Client {
	client := &Client{
		URL:          url,
		Network:      xc.Localnet,
		ProgramID:    program.ProgramID,
		Commitment:   rpc.CommitmentConfirmed,
		PollInterval: DefaultPollInterval,
	}
	for _, option := range options {
		option(client)
	}
	client.SolClient = rpc.New(url)
	return client
}

// ParseCommitment maps a config value to a commitment level, defaulting to confirmed.
func ParseCommitment(commitment string) rpc.CommitmentType {
	switch rpc.CommitmentType(commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return rpc.CommitmentType(commitment)
	}
	return rpc.CommitmentConfirmed
}

// FetchTxInput returns the recent block hash and a priority fee for a new transaction.
// accounts are the writable accounts the transaction will lock.
func (client *Client) FetchTxInput(ctx context.Context, accounts ...solana.PublicKey) (*tx_input.TxInput, error) {
	txInput := tx_input.NewTxInput()

	// get recent block hash (i.e. nonce)
	recent, err := client.SolClient.GetLatestBlockhash(ctx, client.Commitment)
	if err != nil {
		return nil, fmt.Errorf("could not get latest blockhash: %v", err)
	}
	if recent == nil || recent.Value == nil {
		return nil, fmt.Errorf("error fetching latest blockhash")
	}
	txInput.RecentBlockHash = recent.Value.Blockhash

	// fetch priority fee info
	fees, err := client.SolClient.GetRecentPrioritizationFees(ctx, accounts)
	if err != nil {
		return txInput, fmt.Errorf("could not lookup priority fees: %v", err)
	}
	priority_fee_count := uint64(0)
	// start with 100 min priority fee, then average in the recent priority fees paid.
	priority_fee_sum := uint64(100)
	for _, fee := range fees {
		if fee.PrioritizationFee > 0 {
			priority_fee_sum += fee.PrioritizationFee
			priority_fee_count += 1
		}
	}
	if priority_fee_count > 0 {
		txInput.PrioritizationFee = xc.NewAmountBlockchainFromUint64(
			priority_fee_sum / priority_fee_count,
		)
	} else {
		// default 100
		txInput.PrioritizationFee = xc.NewAmountBlockchainFromUint64(
			100,
		)
	}
	txInput.SetUnix(time.Now().Unix())
	return txInput, nil
}

// FetchUserAccount reads and decodes a sol_bank user account.
func (client *Client) FetchUserAccount(ctx context.Context, userAccount solana.PublicKey) (*program.UserAccount, error) {
	info, err := client.SolClient.GetAccountInfoWithOpts(ctx, userAccount, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: client.Commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, xcerrors.AccountNotFoundf("user account %s does not exist", userAccount)
		}
		return nil, fmt.Errorf("failed to fetch account info: %w", err)
	}
	if info == nil || info.Value == nil {
		return nil, xcerrors.AccountNotFoundf("user account %s does not exist", userAccount)
	}
	if !info.Value.Owner.Equals(client.ProgramID) {
		return nil, fmt.Errorf("account %s is owned by %s, not %s", userAccount, info.Value.Owner, client.ProgramID)
	}
	account, err := program.DecodeUserAccount(info.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_account": userAccount.String(),
		"authority":    account.Authority.String(),
		"balance":      account.Balance,
		"lamports":     info.Value.Lamports,
	}).Debug("fetched user account")
	return account, nil
}

// FetchNativeBalance returns the lamports held by an address.
func (client *Client) FetchNativeBalance(ctx context.Context, address xc.Address) (xc.AmountBlockchain, error) {
	balance := xc.NewAmountBlockchainFromUint64(0)
	addr, err := solana.PublicKeyFromBase58(string(address))
	if err != nil {
		return balance, fmt.Errorf("invalid address %s: %v", address, err)
	}
	out, err := client.SolClient.GetBalance(ctx, addr, client.Commitment)
	if err != nil {
		return balance, fmt.Errorf("failed to get balance for '%v': %v", address, err)
	}
	if out == nil {
		return balance, nil
	}
	return xc.NewAmountBlockchainFromUint64(out.Value), nil
}

// SubmitTx broadcasts a signed transaction and returns its signature.
func (client *Client) SubmitTx(ctx context.Context, tx xc.Tx) (xc.TxHash, error) {
	txData, err := tx.Serialize()
	if err != nil {
		return "", fmt.Errorf("send transaction: encode transaction: %w", err)
	}

	signature, err := client.SolClient.SendEncodedTransactionWithOpts(
		ctx,
		base64.StdEncoding.EncodeToString(txData),
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: client.Commitment,
		},
	)
	if err != nil {
		return "", ClassifyError(client.ProgramID, err)
	}
	return xc.TxHash(signature.String()), nil
}

// ConfirmTx waits until the transaction reaches the client's commitment level.
func (client *Client) ConfirmTx(ctx context.Context, txHash xc.TxHash, timeout time.Duration) error {
	sig, err := solana.SignatureFromBase58(string(txHash))
	if err != nil {
		return fmt.Errorf("invalid signature %s: %v", txHash, err)
	}
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(client.PollInterval)
	defer ticker.Stop()
	// the last rpc failure, reported instead of a timeout when the node never answered
	var lastRPCErr error
	answered := false
	for {
		out, err := client.SolClient.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			if ctx.Err() == nil {
				lastRPCErr = err
				logrus.WithError(err).WithField("signature", sig.String()).Debug("could not get signature status")
			}
		} else {
			answered = true
			confirmed, err := client.checkSignatureStatus(sig, out)
			if err != nil {
				return err
			}
			if confirmed {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if !answered && lastRPCErr != nil {
				return xcerrors.Errorf(xcerrors.NetworkError, "could not get status of transaction %s after %v: %v", txHash, timeout, lastRPCErr)
			}
			return xcerrors.TransactionTimedOutf("transaction %s not confirmed after %v", txHash, timeout)
		case <-ticker.C:
		}
	}
}

func (client *Client) checkSignatureStatus(sig solana.Signature, out *rpc.GetSignatureStatusesResult) (bool, error) {
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil
	}
	status := out.Value[0]
	if status.Err != nil {
		return false, TransactionError(status.Err, client.ProgramID, nil)
	}
	logrus.WithFields(logrus.Fields{
		"signature": sig.String(),
		"status":    status.ConfirmationStatus,
		"slot":      status.Slot,
	}).Trace("signature status")
	return reachedCommitment(status.ConfirmationStatus, client.Commitment), nil
}

func commitmentRank(status string) int {
	switch status {
	case string(rpc.ConfirmationStatusProcessed):
		return 1
	case string(rpc.ConfirmationStatusConfirmed):
		return 2
	case string(rpc.ConfirmationStatusFinalized):
		return 3
	}
	return 0
}

func reachedCommitment(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	rank := commitmentRank(string(status))
	return rank > 0 && rank >= commitmentRank(string(commitment))
}

// RequestAirdrop asks the cluster faucet for lamports.
func (client *Client) RequestAirdrop(ctx context.Context, address xc.Address, lamports xc.AmountBlockchain) (xc.TxHash, error) {
	if !client.Network.SupportsAirdrop() {
		return "", xcerrors.FailedPreconditionf("airdrops are not available on %s", client.Network)
	}
	addr, err := solana.PublicKeyFromBase58(string(address))
	if err != nil {
		return "", fmt.Errorf("invalid address %s: %v", address, err)
	}
	sig, err := client.SolClient.RequestAirdrop(ctx, addr, lamports.Uint64(), client.Commitment)
	if err != nil {
		return "", ClassifyError(client.ProgramID, err)
	}
	return xc.TxHash(sig.String()), nil
}
