package client_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	xc "github.com/cordialsys/solbank"
	"github.com/cordialsys/solbank/builder"
	"github.com/cordialsys/solbank/client"
	xcerrors "github.com/cordialsys/solbank/client/errors"
	"github.com/cordialsys/solbank/program"
	"github.com/cordialsys/solbank/signer"
	"github.com/cordialsys/solbank/testutil"
	"github.com/cordialsys/solbank/tx_input"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

var user = solana.MustPublicKeyFromBase58("Hzn3n914JaSpnxo5mBbmuCDmGL6mxWN9Ac2HzEXFSGtb")
var userAccount = solana.MustPublicKeyFromBase58("2vrq5j5todLePqB7vBVbqPNkLyhSmbiDSCJoB8ADgy2v")

func TestNewClient(t *testing.T) {
	cli := client.NewClient("http://127.0.0.1:8899")
	require.NotNil(t, cli.SolClient)
	require.Equal(t, program.ProgramID, cli.ProgramID)
	require.Equal(t, rpc.CommitmentConfirmed, cli.Commitment)
	require.Equal(t, xc.Localnet, cli.Network)
	require.Equal(t, client.DefaultPollInterval, cli.PollInterval)

	other := solana.MustPublicKeyFromBase58("BWbmXj5ckAaWCAtzMZ97qnJhBAKegoXtgNrv9BUpAB11")
	cli = client.NewClient("http://127.0.0.1:8899",
		client.WithProgramID(other),
		client.WithCommitment(rpc.CommitmentFinalized),
		client.WithNetwork(xc.Devnet),
		client.WithPollInterval(time.Second),
	)
	require.Equal(t, other, cli.ProgramID)
	require.Equal(t, rpc.CommitmentFinalized, cli.Commitment)
	require.Equal(t, xc.Devnet, cli.Network)
	require.Equal(t, time.Second, cli.PollInterval)
}

func TestParseCommitment(t *testing.T) {
	require.Equal(t, rpc.CommitmentFinalized, client.ParseCommitment("finalized"))
	require.Equal(t, rpc.CommitmentProcessed, client.ParseCommitment("processed"))
	require.Equal(t, rpc.CommitmentConfirmed, client.ParseCommitment(""))
	require.Equal(t, rpc.CommitmentConfirmed, client.ParseCommitment("max"))
}

func TestFetchTxInput(t *testing.T) {
	vectors := []struct {
		resp        interface{}
		blockHash   string
		priorityFee uint64
		err         string
	}{
		{
			resp: []string{
				testutil.BlockhashResponse,
				testutil.PriorityFeesResponse,
			},
			blockHash: "DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK",
			// (100 + 50 + 100) / 2
			priorityFee: 125,
		},
		{
			resp: []string{
				testutil.BlockhashResponse,
				`[{"prioritizationFee": 0,"slot": 252519673}]`,
			},
			blockHash:   "DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK",
			priorityFee: 100,
		},
		{
			resp: []string{
				`{"jsonrpc":"2.0","result":{"context":{"apiVersion":"2.0.5","slot":83986105},"value":{"blockhash":"DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK","lastValidBlockHeight":308641695}},"id":"6acad392-db4b-4728-9385-2b2f7dd105b1"}`,
				`[]`,
			},
			blockHash:   "DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK",
			priorityFee: 100,
		},
		{
			resp: `{}`,
			err:  "error fetching latest blockhash",
		},
		{
			resp: fmt.Errorf(`{"message": "custom RPC error", "code": 123}`),
			err:  "custom RPC error",
		},
	}

	for i, v := range vectors {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			server, close := testutil.MockJSONRPC(t, v.resp)
			defer close()

			cli := client.NewClient(server.URL)
			input, err := cli.FetchTxInput(context.Background(), userAccount)
			if v.err != "" {
				require.Nil(t, input)
				require.ErrorContains(t, err, v.err)
			} else {
				require.NoError(t, err)
				require.Equal(t, v.blockHash, input.RecentBlockHash.String())
				require.EqualValues(t, v.priorityFee, input.PrioritizationFee.Uint64())
				require.NotZero(t, input.Timestamp)
				require.Equal(t, []string{"getLatestBlockhash", "getRecentPrioritizationFees"}, server.Methods())
			}
		})
	}
}

func TestFetchUserAccount(t *testing.T) {
	vectors := []struct {
		name    string
		resp    interface{}
		balance uint64
		status  xcerrors.Status
		err     string
	}{
		{
			name:    "initialized",
			resp:    testutil.UserAccountResponse(t, user, 30_000_000),
			balance: 30_000_000,
		},
		{
			name:   "missing",
			resp:   testutil.AccountNotFoundResponse,
			status: xcerrors.AccountNotFound,
			err:    "does not exist",
		},
		{
			name: "wrong owner",
			resp: testutil.AccountInfoResponse(make([]byte, 48), 100, solana.SystemProgramID),
			err:  "is owned by 11111111111111111111111111111111",
		},
		{
			name: "wrong discriminator",
			resp: testutil.AccountInfoResponse(make([]byte, 48), 100, program.ProgramID),
			err:  "discriminator mismatch",
		},
		{
			name: "rpc error",
			resp: fmt.Errorf(`{"message": "custom RPC error", "code": 123}`),
			err:  "custom RPC error",
		},
	}
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			server, close := testutil.MockJSONRPC(t, v.resp)
			defer close()

			cli := client.NewClient(server.URL)
			account, err := cli.FetchUserAccount(context.Background(), userAccount)
			if v.err != "" {
				require.Nil(t, account)
				require.ErrorContains(t, err, v.err)
				if v.status != "" {
					require.True(t, xcerrors.Is(err, v.status))
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, user, account.Authority)
				require.Equal(t, v.balance, account.Balance)
			}
		})
	}
}

func TestFetchNativeBalance(t *testing.T) {
	vectors := []struct {
		resp interface{}
		val  string
		err  string
	}{
		{`{"context":{"slot":1},"value": 123}`, "123", ""},
		{`{}`, "0", ""},
		{fmt.Errorf(`{"message": "custom RPC error", "code": 123}`), "0", "custom RPC error"},
	}
	for i, v := range vectors {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			server, close := testutil.MockJSONRPC(t, v.resp)
			defer close()

			cli := client.NewClient(server.URL)
			balance, err := cli.FetchNativeBalance(context.Background(), xc.Address(user.String()))
			require.Equal(t, v.val, balance.String())
			if v.err != "" {
				require.ErrorContains(t, err, v.err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	cli := client.NewClient("http://127.0.0.1:1")
	_, err := cli.FetchNativeBalance(context.Background(), "bad")
	require.ErrorContains(t, err, "invalid address")
}

func signedInitializeTx(t *testing.T) (*signer.Signer, []byte, xc.TxHash) {
	s, err := signer.FromBytes(make([]byte, 32))
	require.NoError(t, err)
	input := tx_input.NewTxInput()
	input.RecentBlockHash = solana.MustHashFromBase58("DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK")
	tx, err := builder.NewTxBuilder(program.ProgramID).Initialize(s.Address(), input)
	require.NoError(t, err)
	require.NoError(t, s.SignTx(tx))
	bz, err := tx.Serialize()
	require.NoError(t, err)
	return s, bz, tx.Hash()
}

type serializedTx struct {
	bz []byte
}

func (tx serializedTx) Hash() xc.TxHash { return "" }
func (tx serializedTx) Sighashes() ([]*xc.SignatureRequest, error) { return nil, nil }
func (tx serializedTx) SetSignatures(...*xc.SignatureResponse) error { return nil }
func (tx serializedTx) GetSignatures() []xc.TxSignature { return nil }
func (tx serializedTx) Serialize() ([]byte, error) { return tx.bz, nil }

func TestSubmitTx(t *testing.T) {
	_, bz, hash := signedInitializeTx(t)

	vectors := []struct {
		name       string
		resp       interface{}
		programErr error
		status     xcerrors.Status
	}{
		{
			name: "success",
			resp: fmt.Sprintf(`"%s"`, hash),
		},
		{
			name: "insufficient funds",
			resp: fmt.Errorf(`{"code":-32002,"message":"Transaction simulation failed: Error processing Instruction 0: custom program error: 0x1770","data":{"err":{"InstructionError":[0,{"Custom":6000}]},"logs":["Program 72p9csHh7VeF2yCgsYjcwNzujaQpPvLKJZ9c5v6nz9CV invoke [1]","Program log: AnchorError occurred. Error Code: InsufficientFunds. Error Number: 6000. Error Message: Insufficient funds for withdrawal."]}}`),
			programErr: program.ErrInsufficientFunds,
		},
		{
			name:   "same code raised by another program",
			resp:   fmt.Errorf(`{"code":-32002,"message":"Transaction simulation failed: Error processing Instruction 0: custom program error: 0x1770","data":{"logs":["Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA invoke [1]","Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA failed: custom program error: 0x1770"]}}`),
			status: xcerrors.UnknownError,
		},
		{
			name:   "already initialized",
			resp:   fmt.Errorf(`{"code":-32002,"message":"Transaction simulation failed: Error processing Instruction 0: custom program error: 0x0","data":{"logs":["Allocate: account Address { address: 2vrq5j5todLePqB7vBVbqPNkLyhSmbiDSCJoB8ADgy2v, base: None } already in use"]}}`),
			status: xcerrors.AccountAlreadyInitialized,
		},
		{
			name:   "expired",
			resp:   fmt.Errorf(`{"code":-32002,"message":"Transaction simulation failed: Blockhash not found"}`),
			status: xcerrors.TransactionTimedOut,
		},
	}
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			server, close := testutil.MockJSONRPC(t, v.resp)
			defer close()

			cli := client.NewClient(server.URL)
			sig, err := cli.SubmitTx(context.Background(), serializedTx{bz})
			switch {
			case v.programErr != nil:
				require.True(t, errors.Is(err, v.programErr), "%v", err)
			case v.status != "":
				require.True(t, xcerrors.Is(err, v.status), "%v", err)
			default:
				require.NoError(t, err)
				require.Equal(t, hash, sig)
				require.Equal(t, []string{"sendTransaction"}, server.Methods())
				// the tx is sent base64 encoded
				require.Contains(t, string(server.Requests[0].Params[0]), base64.StdEncoding.EncodeToString(bz))
			}
		})
	}
}

func TestSubmitTxErr(t *testing.T) {
	cli := client.NewClient("")
	_, err := cli.SubmitTx(context.Background(), serializedTx{[]byte{1, 2, 3}})
	require.ErrorContains(t, err, "unsupported protocol scheme")
}

func TestConfirmTx(t *testing.T) {
	sig := xc.TxHash(solana.Signature{1, 2, 3}.String())

	vectors := []struct {
		name       string
		resp       interface{}
		commitment rpc.CommitmentType
		httpStatus int
		programErr error
		status     xcerrors.Status
	}{
		{
			name: "confirmed after polling",
			resp: []string{
				testutil.SignatureStatusPendingResponse,
				testutil.SignatureStatusResponse("processed"),
				testutil.SignatureStatusResponse("confirmed"),
			},
			commitment: rpc.CommitmentConfirmed,
		},
		{
			name: "finalized satisfies confirmed",
			resp: []string{
				testutil.SignatureStatusResponse("finalized"),
			},
			commitment: rpc.CommitmentConfirmed,
		},
		{
			name: "program failure",
			resp: []string{
				`{"context":{"slot":82},"value":[{"slot":72,"confirmations":0,"err":{"InstructionError":[0,{"Custom":6000}]},"status":{"Err":{"InstructionError":[0,{"Custom":6000}]}},"confirmationStatus":"confirmed"}]}`,
			},
			commitment: rpc.CommitmentConfirmed,
			programErr: program.ErrInsufficientFunds,
		},
		{
			name: "other failure",
			resp: []string{
				`{"context":{"slot":82},"value":[{"slot":72,"confirmations":0,"err":"AccountNotFound","status":{"Err":"AccountNotFound"},"confirmationStatus":"confirmed"}]}`,
			},
			commitment: rpc.CommitmentConfirmed,
			status:     xcerrors.TransactionFailure,
		},
		{
			name: "timeout",
			resp: []string{
				testutil.SignatureStatusResponse("confirmed"),
			},
			commitment: rpc.CommitmentFinalized,
			status:     xcerrors.TransactionTimedOut,
		},
		{
			name:       "node unavailable",
			resp:       testutil.SignatureStatusPendingResponse,
			commitment: rpc.CommitmentConfirmed,
			httpStatus: http.StatusServiceUnavailable,
			status:     xcerrors.NetworkError,
		},
		{
			name:       "node keeps returning rpc errors",
			resp:       errors.New(`{"message": "custom RPC error", "code": 123}`),
			commitment: rpc.CommitmentConfirmed,
			status:     xcerrors.NetworkError,
		},
		{
			name: "rpc errors after the node answered",
			resp: []interface{}{
				testutil.SignatureStatusPendingResponse,
				errors.New(`{"message": "custom RPC error", "code": 123}`),
			},
			commitment: rpc.CommitmentConfirmed,
			status:     xcerrors.TransactionTimedOut,
		},
	}
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			server, close := testutil.MockJSONRPC(t, v.resp)
			defer close()
			if v.httpStatus != 0 {
				server.ForceError(v.httpStatus)
			}

			cli := client.NewClient(server.URL,
				client.WithCommitment(v.commitment),
				client.WithPollInterval(5*time.Millisecond),
			)
			err := cli.ConfirmTx(context.Background(), sig, 200*time.Millisecond)
			switch {
			case v.programErr != nil:
				require.True(t, errors.Is(err, v.programErr), "%v", err)
			case v.status != "":
				require.True(t, xcerrors.Is(err, v.status), "%v", err)
			default:
				require.NoError(t, err)
			}
		})
	}

	cli := client.NewClient("")
	require.ErrorContains(t, cli.ConfirmTx(context.Background(), "bad", time.Second), "invalid signature")
}

func TestFetchTxInfo(t *testing.T) {
	s, bz, hash := signedInitializeTx(t)
	pda, _, err := program.FindUserAccountAddress(s.SolanaPublicKey(), program.ProgramID)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(bz)

	vectors := []struct {
		name   string
		resp   interface{}
		status xc.TxStatus
		txErr  string
		err    string
	}{
		{
			name: "success",
			resp: fmt.Sprintf(`{"slot":430,"blockTime":1700000000,"meta":{"err":null,"fee":5000,"preBalances":[],"postBalances":[],"logMessages":["Program 72p9csHh7VeF2yCgsYjcwNzujaQpPvLKJZ9c5v6nz9CV success"],"innerInstructions":[],"status":{"Ok":null}},"transaction":["%s","base64"]}`, encoded),
			status: xc.TxStatusSuccess,
		},
		{
			name: "failure",
			resp: fmt.Sprintf(`{"slot":430,"blockTime":1700000000,"meta":{"err":{"InstructionError":[0,{"Custom":6001}]},"fee":5000,"preBalances":[],"postBalances":[],"logMessages":[],"innerInstructions":[],"status":{"Err":{"InstructionError":[0,{"Custom":6001}]}}},"transaction":["%s","base64"]}`, encoded),
			status: xc.TxStatusFailure,
			txErr:  "Overflow (6001): Balance overflow",
		},
		{
			name:   "custom code from an instruction that is not sol_bank",
			resp:   fmt.Sprintf(`{"slot":430,"blockTime":1700000000,"meta":{"err":{"InstructionError":[1,{"Custom":6001}]},"fee":5000,"preBalances":[],"postBalances":[],"logMessages":[],"innerInstructions":[],"status":{"Err":{"InstructionError":[1,{"Custom":6001}]}}},"transaction":["%s","base64"]}`, encoded),
			status: xc.TxStatusFailure,
			txErr:  `TransactionFailure: {"InstructionError":[1,{"Custom":6001}]}`,
		},
		{
			name: "not found",
			resp: `null`,
			err:  "TransactionNotFound",
		},
	}
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			server, close := testutil.MockJSONRPC(t, v.resp)
			defer close()

			cli := client.NewClient(server.URL)
			info, err := cli.FetchTxInfo(context.Background(), hash)
			if v.err != "" {
				require.ErrorContains(t, err, v.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, hash, info.Hash)
			require.EqualValues(t, 430, info.Slot)
			require.EqualValues(t, 1700000000, info.BlockTime)
			require.EqualValues(t, 5000, info.Fee.Uint64())
			require.Equal(t, v.status, info.Status)
			require.Equal(t, v.txErr, info.Error)
			require.Len(t, info.Instructions, 1)
			require.Equal(t, program.InstructionInitialize, info.Instructions[0].Name)
			require.Equal(t, s.Address(), info.Instructions[0].User)
			require.Equal(t, xc.Address(pda.String()), info.Instructions[0].UserAccount)
		})
	}
}

func TestRequestAirdrop(t *testing.T) {
	sig := solana.Signature{9, 9, 9}
	server, close := testutil.MockJSONRPC(t, fmt.Sprintf(`"%s"`, sig.String()))
	defer close()

	cli := client.NewClient(server.URL, client.WithNetwork(xc.Devnet))
	hash, err := cli.RequestAirdrop(context.Background(), xc.Address(user.String()), xc.NewAmountBlockchainFromUint64(xc.LamportsPerSol))
	require.NoError(t, err)
	require.Equal(t, xc.TxHash(sig.String()), hash)
	require.Equal(t, []string{"requestAirdrop"}, server.Methods())

	cli = client.NewClient(server.URL, client.WithNetwork(xc.Mainnet))
	_, err = cli.RequestAirdrop(context.Background(), xc.Address(user.String()), xc.NewAmountBlockchainFromUint64(1))
	require.True(t, xcerrors.Is(err, xcerrors.FailedPrecondition))
}
