package bank

import (
	"context"
	"fmt"

	xc "github.com/cordialsys/solbank"
	"github.com/sirupsen/logrus"
)

// Amounts used by the scenario when none are given: 0.05 and 0.02 SOL.
var DefaultScenarioDeposit = xc.NewAmountBlockchainFromUint64(50_000_000)
var DefaultScenarioWithdraw = xc.NewAmountBlockchainFromUint64(20_000_000)

// ScenarioReport is the outcome of RunScenario.
type ScenarioReport struct {
	User                xc.Address `json:"user"`
	UserAccount         xc.Address `json:"user_account"`
	Bump                uint8      `json:"bump"`
	AlreadyInitialized  bool       `json:"already_initialized"`
	InitialBalance      uint64     `json:"initial_balance"`
	InitializeSignature xc.TxHash  `json:"initialize_signature,omitempty"`
	DepositSignature    xc.TxHash  `json:"deposit_signature"`
	BalanceAfterDeposit uint64     `json:"balance_after_deposit"`
	WithdrawSignature   xc.TxHash  `json:"withdraw_signature"`
	FinalBalance        uint64     `json:"final_balance"`
}

// RunScenario initializes the account when missing, deposits, reads the balance,
// withdraws and reads the final balance.
func (b *Bank) RunScenario(ctx context.Context, deposit xc.AmountBlockchain, withdraw xc.AmountBlockchain) (*ScenarioReport, error) {
	report := &ScenarioReport{
		User:        b.User(),
		UserAccount: xc.Address(b.userAccount.String()),
		Bump:        b.bump,
	}
	log := logrus.WithField("user_account", report.UserAccount)

	exists, account, err := b.Exists(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch account info: %w", err)
	}
	if exists {
		report.AlreadyInitialized = true
		report.InitialBalance = account.Balance
		log.WithField("balance", account.Balance).Info("account already initialized")
	} else {
		sig, err := b.Initialize(ctx)
		if err != nil {
			return report, fmt.Errorf("initialize failed: %w", err)
		}
		report.InitializeSignature = sig
		log.WithField("signature", sig).Info("initialized")
	}

	report.DepositSignature, err = b.Deposit(ctx, deposit)
	if err != nil {
		return report, fmt.Errorf("deposit failed: %w", err)
	}
	account, err = b.Account(ctx)
	if err != nil {
		return report, err
	}
	report.BalanceAfterDeposit = account.Balance

	report.WithdrawSignature, err = b.Withdraw(ctx, withdraw)
	if err != nil {
		return report, fmt.Errorf("withdraw failed: %w", err)
	}
	account, err = b.Account(ctx)
	if err != nil {
		return report, err
	}
	report.FinalBalance = account.Balance
	return report, nil
}
