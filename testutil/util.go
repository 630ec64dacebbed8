package testutil

import (
	"encoding/base64"
	"fmt"
	"testing"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func Lamports(amount string) xc.AmountBlockchain {
	lamports, err := xc.ParseSol(amount)
	if err != nil {
		panic(err)
	}
	return lamports
}

// AccountInfoResponse renders a getAccountInfo result holding data owned by owner.
func AccountInfoResponse(data []byte, lamports uint64, owner solana.PublicKey) string {
	return fmt.Sprintf(
		`{"context":{"slot":274176079},"value":{"data":["%s","base64"],"executable":false,"lamports":%d,"owner":"%s","rentEpoch":18446744073709551615,"space":%d}}`,
		base64.StdEncoding.EncodeToString(data), lamports, owner.String(), len(data),
	)
}

// UserAccountResponse renders a getAccountInfo result for a sol_bank user account.
func UserAccountResponse(t *testing.T, authority solana.PublicKey, balance uint64) string {
	account := &program.UserAccount{
		Authority: authority,
		Balance:   balance,
	}
	data, err := account.Encode()
	require.NoError(t, err)
	// rent exempt minimum for 48 bytes plus the tracked deposits
	return AccountInfoResponse(data, 1_224_960+balance, program.ProgramID)
}

const AccountNotFoundResponse = `{"context":{"slot":274176079},"value":null}`

const BlockhashResponse = `{"context":{"slot":83986105},"value":{"blockhash":"DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK","lastValidBlockHeight":308641695}}`

const PriorityFeesResponse = `[{"prioritizationFee": 50,"slot": 252519673},{"prioritizationFee": 100,"slot": 252519674}]`

func SignatureStatusResponse(status string) string {
	return fmt.Sprintf(`{"context":{"slot":82},"value":[{"slot":72,"confirmations":null,"err":null,"status":{"Ok":null},"confirmationStatus":"%s"}]}`, status)
}

const SignatureStatusPendingResponse = `{"context":{"slot":82},"value":[null]}`
