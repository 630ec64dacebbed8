package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	xcerrors "github.com/cordialsys/solbank/client/errors"
	"github.com/cordialsys/solbank/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

func CheckError(err error) xcerrors.Status {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction underpriced") {
		return xcerrors.TransactionFailure
	}
	if strings.Contains(msg, "insufficient funds for fee") ||
		strings.Contains(msg, "insufficient funds for rent") ||
		strings.Contains(msg, "insufficientfundsforfee") {
		return xcerrors.NoBalanceForGas
	}
	if strings.Contains(msg, "insufficient lamports") ||
		strings.Contains(msg, "attempt to debit an account but found no record of a prior credit") {
		return xcerrors.NoBalance
	}
	if strings.Contains(msg, "blockhash not found") {
		return xcerrors.TransactionTimedOut
	}
	if strings.Contains(msg, "already in use") {
		return xcerrors.AccountAlreadyInitialized
	}
	if strings.Contains(msg, "transaction already in block chain") ||
		strings.Contains(msg, "transaction has already been processed") {
		return xcerrors.TransactionExists
	}
	if strings.Contains(msg, "response body closed") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "eof") {
		return xcerrors.NetworkError
	}

	return xcerrors.UnknownError
}

// simulationLogs extracts the program logs a failed preflight attaches to the RPC error.
func simulationLogs(err error) []string {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Data == nil {
		return nil
	}
	data, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return nil
	}
	rawLogs, ok := data["logs"].([]interface{})
	if !ok {
		return nil
	}
	logs := []string{}
	for _, line := range rawLogs {
		if s, ok := line.(string); ok {
			logs = append(logs, s)
		}
	}
	return logs
}

// ClassifyError converts an RPC error into a sol_bank program error when the
// simulation logs show programID raising one, or otherwise a typed client error.
func ClassifyError(programID solana.PublicKey, err error) error {
	if err == nil {
		return nil
	}
	logs := simulationLogs(err)
	if programErr := program.ParseError(programID, err, logs...); programErr != nil {
		return fmt.Errorf("%w: %v", programErr, err)
	}
	status := CheckError(err)
	if status == xcerrors.AccountAlreadyInitialized {
		return xcerrors.AccountAlreadyInitializedf("%v", err)
	}
	for _, line := range logs {
		if strings.Contains(line, "already in use") {
			return xcerrors.AccountAlreadyInitializedf("%v", err)
		}
	}
	return xcerrors.Errorf(status, "%v", err)
}

// TransactionError converts the `err` field of a transaction status or meta, e.g.
// {"InstructionError":[0,{"Custom":6000}]}, into an error.
// When solTx is known, a custom code is only a sol_bank error if the failing
// instruction calls programID. A nil solTx trusts the instruction index.
func TransactionError(errValue interface{}, programID solana.PublicKey, solTx *solana.Transaction) error {
	if errValue == nil {
		return nil
	}
	bz, _ := json.Marshal(errValue)
	if index, code, ok := customErrorCode(errValue); ok && invokesProgram(solTx, index, programID) {
		if known, ok := program.LookupError(program.ErrorCode(code)); ok {
			return fmt.Errorf("%w: %s", known, string(bz))
		}
	}
	return xcerrors.Errorf(xcerrors.TransactionFailure, "%s", string(bz))
}

func invokesProgram(solTx *solana.Transaction, index int, programID solana.PublicKey) bool {
	if solTx == nil {
		return true
	}
	instructions := solTx.Message.Instructions
	if index < 0 || index >= len(instructions) {
		return false
	}
	invoked, err := solTx.Message.ResolveProgramIDIndex(instructions[index].ProgramIDIndex)
	return err == nil && invoked.Equals(programID)
}

// customErrorCode returns the instruction index and code of a custom instruction error.
func customErrorCode(errValue interface{}) (int, uint32, bool) {
	asMap, ok := errValue.(map[string]interface{})
	if !ok {
		return 0, 0, false
	}
	instructionErr, ok := asMap["InstructionError"].([]interface{})
	if !ok || len(instructionErr) != 2 {
		return 0, 0, false
	}
	index, ok := jsonInt(instructionErr[0])
	if !ok {
		return 0, 0, false
	}
	detail, ok := instructionErr[1].(map[string]interface{})
	if !ok {
		return 0, 0, false
	}
	code, ok := jsonInt(detail["Custom"])
	return int(index), uint32(code), ok
}

func jsonInt(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case json.Number:
		parsed, err := v.Int64()
		return parsed, err == nil
	}
	return 0, false
}
