package errors

import (
	"errors"
	"fmt"
)

type Status string

// A transaction terminally failed due to no balance
const NoBalance Status = "NoBalance"

// A transaction terminally failed due to no balance after accounting for fees and rent
const NoBalanceForGas Status = "NoBalanceForGas"

// A transaction terminally failed due to another reason
const TransactionFailure Status = "TransactionFailure"

// A transaction failed to submit because it already exists
const TransactionExists Status = "TransactionExists"

// The transaction could not be found on chain
const TransactionNotFound Status = "TransactionNotFound"

// deadline exceeded and transaction can no longer be accepted
const TransactionTimedOut Status = "TransactionTimedOut"

// A network error occured -- there may be nothing wrong with the transaction
const NetworkError Status = "NetworkError"

// No outcome for this error known
const UnknownError Status = "UnknownError"

// Failed to due to an on-chain condition that could resolve in time.
const FailedPrecondition Status = "FailedPrecondition"

// The user account PDA does not exist yet
const AccountNotFound Status = "AccountNotFound"

// The user account PDA was already created
const AccountAlreadyInitialized Status = "AccountAlreadyInitialized"

type Error struct {
	Status  Status
	Message string
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func Errorf(status Status, format string, args ...interface{}) error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

// Used to indicate that the transaction already exists on chain,
// when attempting to submit.
func TransactionExistsf(format string, args ...interface{}) error {
	return Errorf(TransactionExists, format, args...)
}

// Used when a transaction is not found on chain.
func TransactionNotFoundf(format string, args ...interface{}) error {
	return Errorf(TransactionNotFound, format, args...)
}

func TransactionTimedOutf(format string, args ...interface{}) error {
	return Errorf(TransactionTimedOut, format, args...)
}

func FailedPreconditionf(format string, args ...interface{}) error {
	return Errorf(FailedPrecondition, format, args...)
}

func AccountNotFoundf(format string, args ...interface{}) error {
	return Errorf(AccountNotFound, format, args...)
}

func AccountAlreadyInitializedf(format string, args ...interface{}) error {
	return Errorf(AccountAlreadyInitialized, format, args...)
}

func Unknownf(format string, args ...interface{}) error {
	return Errorf(UnknownError, format, args...)
}

// StatusOf returns the status of the first *Error in err's chain.
func StatusOf(err error) (Status, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, true
	}
	return "", false
}

func Is(err error, status Status) bool {
	s, ok := StatusOf(err)
	return ok && s == status
}
