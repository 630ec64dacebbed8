package program

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Anchor numbers custom program errors from 6000.
const ErrorCodeOffset = 6000

type ErrorCode uint32

const (
	InsufficientFunds ErrorCode = ErrorCodeOffset + iota
	Overflow
)

// Error is a sol_bank program error
type Error struct {
	Code    ErrorCode
	Name    string
	Message string
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

var ErrInsufficientFunds = &Error{
	Code:    InsufficientFunds,
	Name:    "InsufficientFunds",
	Message: "Insufficient funds for withdrawal",
}

var ErrOverflow = &Error{
	Code:    Overflow,
	Name:    "Overflow",
	Message: "Balance overflow",
}

var knownErrors = []*Error{
	ErrInsufficientFunds,
	ErrOverflow,
}

func LookupError(code ErrorCode) (*Error, bool) {
	for _, known := range knownErrors {
		if known.Code == code {
			return known, true
		}
	}
	return nil, false
}

var customErrorRegex = regexp.MustCompile(`custom program error: (0x[0-9a-fA-F]+|\d+)`)
var anchorErrorRegex = regexp.MustCompile(`Error Number: (\d+)`)
var invokeRegex = regexp.MustCompile(`^Program (\w+) invoke \[\d+\]`)
var exitRegex = regexp.MustCompile(`^Program (\w+) (?:success|failed: (.*))$`)

// ParseError finds a sol_bank error code in an RPC error or transaction logs.
// A code only counts when programID raised it: either on the line reporting that
// programID failed, or in an AnchorError logged while programID was executing.
// It returns nil if none is present.
func ParseError(programID solana.PublicKey, err error, logs ...string) *Error {
	var programErr *Error
	if err != nil && errors.As(err, &programErr) {
		return programErr
	}
	id := programID.String()
	// programs on the invoke stack, innermost last
	stack := []string{}
	for _, line := range logs {
		if match := invokeRegex.FindStringSubmatch(line); match != nil {
			stack = append(stack, match[1])
			continue
		}
		if match := exitRegex.FindStringSubmatch(line); match != nil {
			if match[1] == id {
				if known := matchCustomError(match[2]); known != nil {
					return known
				}
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		if len(stack) > 0 && stack[len(stack)-1] == id && strings.Contains(line, "AnchorError") {
			if known := matchAnchorError(line); known != nil {
				return known
			}
		}
	}
	return nil
}

func matchAnchorError(line string) *Error {
	match := anchorErrorRegex.FindStringSubmatch(line)
	if match == nil {
		return nil
	}
	code, err := strconv.ParseUint(match[1], 10, 32)
	if err != nil {
		return nil
	}
	known, _ := LookupError(ErrorCode(code))
	return known
}

func matchCustomError(line string) *Error {
	match := customErrorRegex.FindStringSubmatch(line)
	if match == nil {
		return nil
	}
	raw := match[1]
	base := 10
	if strings.HasPrefix(raw, "0x") {
		raw = raw[2:]
		base = 16
	}
	code, err := strconv.ParseUint(raw, base, 32)
	if err != nil {
		return nil
	}
	known, _ := LookupError(ErrorCode(code))
	return known
}
