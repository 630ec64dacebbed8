package bank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/builder"
	"github.com/cordialsys/solbank/client"
	xcerrors "github.com/cordialsys/solbank/client/errors"
	"github.com/cordialsys/solbank/journal"
	"github.com/cordialsys/solbank/program"
	"github.com/cordialsys/solbank/signer"
	"github.com/cordialsys/solbank/tx"
	"github.com/cordialsys/solbank/tx_input"
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=../internal/mocks/bank/mocks.go -package=mock_bank github.com/cordialsys/solbank/bank Client,Journal

// Client is the RPC surface the bank needs. *client.Client implements it.
type Client interface {
	FetchTxInput(ctx context.Context, accounts ...solana.PublicKey) (*tx_input.TxInput, error)
	FetchUserAccount(ctx context.Context, userAccount solana.PublicKey) (*program.UserAccount, error)
	FetchNativeBalance(ctx context.Context, address xc.Address) (xc.AmountBlockchain, error)
	SubmitTx(ctx context.Context, tx xc.Tx) (xc.TxHash, error)
	ConfirmTx(ctx context.Context, txHash xc.TxHash, timeout time.Duration) error
}

var _ Client = &client.Client{}

// Journal records the operations sent by the bank. *journal.Store implements it.
type Journal interface {
	Record(ctx context.Context, entry *journal.Entry) (string, error)
	Update(ctx context.Context, id string, status journal.Status, signature string, errMsg string) error
	List(ctx context.Context, user string) ([]*journal.Entry, error)
}

var _ Journal = &journal.Store{}

// Bank is a handle on the sol_bank program for a single user.
type Bank struct {
	client         Client
	signer         *signer.Signer
	builder        builder.TxBuilder
	journal        Journal
	confirmTimeout time.Duration
	priorityFee    uint64
	userAccount    solana.PublicKey
	bump           uint8
}

type Option func(*Bank)

func WithJournal(j Journal) Option {
	return func(b *Bank) {
		b.journal = j
	}
}

func WithConfirmTimeout(timeout time.Duration) Option {
	return func(b *Bank) {
		if timeout > 0 {
			b.confirmTimeout = timeout
		}
	}
}

// WithPriorityFee fixes the compute unit price instead of using recent fees.
func WithPriorityFee(microlamports uint64) Option {
	return func(b *Bank) {
		b.priorityFee = microlamports
	}
}

func WithMaxPriorityFee(microlamports uint64) Option {
	return func(b *Bank) {
		b.builder.MaxPrioritizationFee = microlamports
	}
}

func New(rpcClient Client, s *signer.Signer, programID solana.PublicKey, options ...Option) (*Bank, error) {
	if rpcClient == nil {
		return nil, errors.New("missing client")
	}
	if s == nil {
		return nil, errors.New("missing signer")
	}
	b := &Bank{
		client:         rpcClient,
		signer:         s,
		builder:        builder.NewTxBuilder(programID),
		confirmTimeout: client.DefaultConfirmTimeout,
	}
	for _, option := range options {
		option(b)
	}
	pda, bump, err := program.FindUserAccountAddress(s.SolanaPublicKey(), b.builder.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("could not derive user account: %v", err)
	}
	b.userAccount = pda
	b.bump = bump
	return b, nil
}

func (b *Bank) ProgramID() solana.PublicKey {
	return b.builder.ProgramID
}

func (b *Bank) User() xc.Address {
	return b.signer.Address()
}

// UserAccountAddress is the PDA holding the user's deposits.
func (b *Bank) UserAccountAddress() solana.PublicKey {
	return b.userAccount
}

func (b *Bank) Bump() uint8 {
	return b.bump
}

// Account returns the user's account, or an AccountNotFound error before initialize.
func (b *Bank) Account(ctx context.Context) (*program.UserAccount, error) {
	return b.client.FetchUserAccount(ctx, b.userAccount)
}

// Exists reports whether the user's account has been initialized.
func (b *Bank) Exists(ctx context.Context) (bool, *program.UserAccount, error) {
	account, err := b.Account(ctx)
	if err != nil {
		if xcerrors.Is(err, xcerrors.AccountNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, account, nil
}

// Initialize creates the user's account. It fails if the account already exists.
func (b *Bank) Initialize(ctx context.Context) (xc.TxHash, error) {
	exists, _, err := b.Exists(ctx)
	if err != nil {
		return "", err
	}
	if exists {
		return "", xcerrors.AccountAlreadyInitializedf("user account %s already exists", b.userAccount)
	}
	return b.send(ctx, program.InstructionInitialize, 0, func(input *tx_input.TxInput) (*tx.Tx, error) {
		return b.builder.Initialize(b.User(), input)
	})
}

// EnsureInitialized initializes the user's account unless it already exists.
func (b *Bank) EnsureInitialized(ctx context.Context) (xc.TxHash, bool, error) {
	exists, account, err := b.Exists(ctx)
	if err != nil {
		return "", false, err
	}
	if exists {
		logrus.WithFields(logrus.Fields{
			"user_account": b.userAccount.String(),
			"balance":      account.Balance,
		}).Info("account already initialized")
		return "", false, nil
	}
	sig, err := b.send(ctx, program.InstructionInitialize, 0, func(input *tx_input.TxInput) (*tx.Tx, error) {
		return b.builder.Initialize(b.User(), input)
	})
	if err != nil {
		return "", false, err
	}
	return sig, true, nil
}

func lamportsArg(amount xc.AmountBlockchain) (uint64, error) {
	if amount.Sign() < 0 || !amount.IsUint64() {
		return 0, fmt.Errorf("amount must be between 0 and %d lamports, got %s", uint64(math.MaxUint64), amount.String())
	}
	return amount.Uint64(), nil
}

// Deposit moves lamports from the user into the user's account.
func (b *Bank) Deposit(ctx context.Context, amount xc.AmountBlockchain) (xc.TxHash, error) {
	lamports, err := lamportsArg(amount)
	if err != nil {
		return "", err
	}
	account, err := b.Account(ctx)
	if err != nil {
		return "", err
	}
	if err := account.ApplyDeposit(lamports); err != nil {
		return "", err
	}
	return b.send(ctx, program.InstructionDeposit, lamports, func(input *tx_input.TxInput) (*tx.Tx, error) {
		return b.builder.Deposit(b.User(), amount, input)
	})
}

// Withdraw moves lamports from the user's account back to the user.
// It fails with InsufficientFunds before sending anything when the balance is too low.
func (b *Bank) Withdraw(ctx context.Context, amount xc.AmountBlockchain) (xc.TxHash, error) {
	lamports, err := lamportsArg(amount)
	if err != nil {
		return "", err
	}
	account, err := b.Account(ctx)
	if err != nil {
		return "", err
	}
	if err := account.ApplyWithdraw(lamports); err != nil {
		return "", fmt.Errorf("%w: balance %d, requested %d", err, account.Balance, lamports)
	}
	return b.send(ctx, program.InstructionWithdraw, lamports, func(input *tx_input.TxInput) (*tx.Tx, error) {
		return b.builder.Withdraw(b.User(), amount, input)
	})
}

// History lists the journaled operations of the user, newest first.
func (b *Bank) History(ctx context.Context) ([]*journal.Entry, error) {
	if b.journal == nil {
		return nil, errors.New("journal is not configured")
	}
	return b.journal.List(ctx, string(b.User()))
}

type buildFunc func(input *tx_input.TxInput) (*tx.Tx, error)

// send fetches input, builds, signs, submits and confirms a transaction, journaling the outcome.
func (b *Bank) send(ctx context.Context, instruction string, lamports uint64, build buildFunc) (xc.TxHash, error) {
	log := logrus.WithFields(logrus.Fields{
		"instruction":  instruction,
		"user":         b.User(),
		"user_account": b.userAccount.String(),
		"amount":       lamports,
	})
	input, err := b.client.FetchTxInput(ctx, b.userAccount, b.signer.SolanaPublicKey())
	if err != nil {
		return "", fmt.Errorf("could not fetch tx input: %w", err)
	}
	if b.priorityFee > 0 {
		input.PrioritizationFee = xc.NewAmountBlockchainFromUint64(b.priorityFee)
	}
	solTx, err := build(input)
	if err != nil {
		return "", err
	}
	if err := b.signer.SignTx(solTx); err != nil {
		return "", fmt.Errorf("could not sign: %w", err)
	}
	hash := solTx.Hash()
	log = log.WithField("signature", hash)

	entryID := b.record(ctx, &journal.Entry{
		Instruction: instruction,
		User:        string(b.User()),
		PDA:         b.userAccount.String(),
		Amount:      lamports,
		Signature:   string(hash),
		Status:      journal.StatusPending,
	})

	log.Info("submitting transaction")
	sig, err := b.client.SubmitTx(ctx, solTx)
	if err != nil {
		b.update(ctx, entryID, journal.StatusFailed, "", err)
		return "", err
	}
	if err := b.client.ConfirmTx(ctx, sig, b.confirmTimeout); err != nil {
		b.update(ctx, entryID, journal.StatusFailed, string(sig), err)
		return sig, err
	}
	b.update(ctx, entryID, journal.StatusConfirmed, string(sig), nil)
	log.Info("transaction confirmed")
	return sig, nil
}

// journal failures never fail the operation itself
func (b *Bank) record(ctx context.Context, entry *journal.Entry) string {
	if b.journal == nil {
		return ""
	}
	id, err := b.journal.Record(ctx, entry)
	if err != nil {
		logrus.WithError(err).Warn("could not record journal entry")
		return ""
	}
	return id
}

func (b *Bank) update(ctx context.Context, id string, status journal.Status, sig string, opErr error) {
	if b.journal == nil || id == "" {
		return
	}
	msg := ""
	if opErr != nil {
		msg = opErr.Error()
	}
	if err := b.journal.Update(ctx, id, status, sig, msg); err != nil {
		logrus.WithError(err).WithField("id", id).Warn("could not update journal entry")
	}
}
