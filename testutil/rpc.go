package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type JSONRPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

// MockJSONRPCServer replays canned JSON-RPC responses in order.
// Once exhausted, the last response is repeated.
type MockJSONRPCServer struct {
	*httptest.Server
	t         *testing.T
	mu        sync.Mutex
	Counter   int
	Responses []interface{}
	Requests  []*JSONRPCRequest
	// when non-zero, every request fails with this HTTP status code
	forceError int
}

// MockJSONRPC starts a server. response may be a JSON string (a bare result or a
// full JSON-RPC envelope), an error whose message is the JSON-RPC error object,
// or a []string / []interface{} of those to be returned in sequence.
func MockJSONRPC(t *testing.T, response interface{}) (mock *MockJSONRPCServer, close func()) {
	mock = &MockJSONRPCServer{
		t: t,
	}
	switch r := response.(type) {
	case []string:
		for _, s := range r {
			mock.Responses = append(mock.Responses, s)
		}
	case []interface{}:
		mock.Responses = r
	default:
		mock.Responses = []interface{}{r}
	}
	mock.Server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock, func() {
		mock.Server.Close()
	}
}

func (mock *MockJSONRPCServer) handle(w http.ResponseWriter, r *http.Request) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	body, err := io.ReadAll(r.Body)
	require.NoError(mock.t, err)
	req := &JSONRPCRequest{}
	require.NoError(mock.t, json.Unmarshal(body, req), "invalid json-rpc request: %s", string(body))
	mock.Requests = append(mock.Requests, req)

	if mock.forceError != 0 {
		w.WriteHeader(mock.forceError)
		return
	}
	if len(mock.Responses) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	idx := mock.Counter
	if idx >= len(mock.Responses) {
		idx = len(mock.Responses) - 1
	}
	mock.Counter++

	id := req.ID
	if len(id) == 0 {
		id = json.RawMessage("1")
	}
	var envelope map[string]json.RawMessage
	switch resp := mock.Responses[idx].(type) {
	case error:
		envelope = map[string]json.RawMessage{
			"jsonrpc": json.RawMessage(`"2.0"`),
			"error":   json.RawMessage(resp.Error()),
		}
	case string:
		parsed := map[string]json.RawMessage{}
		if err := json.Unmarshal([]byte(resp), &parsed); err == nil && parsed["jsonrpc"] != nil {
			envelope = parsed
		} else {
			envelope = map[string]json.RawMessage{
				"jsonrpc": json.RawMessage(`"2.0"`),
				"result":  json.RawMessage(resp),
			}
		}
	default:
		panic(fmt.Sprintf("unsupported mock response type %T", resp))
	}
	envelope["id"] = id

	bz, err := json.Marshal(envelope)
	require.NoError(mock.t, err)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(bz)
}

// ForceError makes every following request fail with the given HTTP status code.
func (mock *MockJSONRPCServer) ForceError(status int) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.forceError = status
}

// Methods lists the JSON-RPC methods called so far.
func (mock *MockJSONRPCServer) Methods() []string {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	methods := make([]string, len(mock.Requests))
	for i, req := range mock.Requests {
		methods[i] = req.Method
	}
	return methods
}
