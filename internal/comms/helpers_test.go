package comms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/block"
	"github.com/mintex-network/mintex-daemon/pkg/rpc"
	"github.com/mintex-network/mintex-daemon/pkg/signed"
)

const testTimeout = 2 * time.Second

// fakeCaller counts calls without touching the network.
type fakeCaller struct {
	calls int
	err   error
}

func (f *fakeCaller) Call(ctx context.Context, method string, params, reply interface{}) error {
	f.calls++
	return f.err
}

func newRoleServer(t *testing.T, handler func(method string, params json.RawMessage) interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     string          `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		result := handler(req.Method, req.Params)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"result": result,
		}))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newCaller(srv *httptest.Server) rpc.Caller {
	return rpc.NewClient(srv.URL, testTimeout)
}

func addressFromPub(pub *btcec.PublicKey) address.Address {
	return address.FromPubKey(pub)
}

func blockNewPeriodData() block.NewPeriodData {
	return block.NewPeriodData{PeriodID: 4}
}

func splitHostPort(t *testing.T, srv *httptest.Server) (string, int) {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func signedResult(t *testing.T, prv *btcec.PrivateKey, payload interface{}) *signed.Envelope {
	t.Helper()
	env, err := signed.Sign(prv, payload)
	require.NoError(t, err)
	return env
}

func rightResult(t *testing.T, value interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	return map[string]interface{}{"right": json.RawMessage(raw)}
}

func leftResult(reason string) map[string]interface{} {
	return map[string]interface{}{"left": reason}
}
