package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCallSuccess(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "bank.getBlockchainHeight", req.Method)
		require.NotEmpty(t, req.ID)

		json.NewEncoder(w).Encode(map[string]interface{}{"result": 42})
	})

	c := NewClient(srv.URL, time.Second)
	var height int
	require.NoError(t, c.Call(context.Background(), "bank.getBlockchainHeight", nil, &height))
	require.Equal(t, 42, height)
}

func TestCallMethodFault(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "no such period"},
		})
	})

	c := NewClient(srv.URL, time.Second)
	err := c.Call(context.Background(), "bank.getHBlock", nil, &struct{}{})

	var mf *MethodFault
	require.ErrorAs(t, err, &mf)
	require.Equal(t, "no such period", mf.Message)
	require.Equal(t, "bank.getHBlock", mf.Method)
}

func TestCallUndecodableBodyIsProtocolError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	c := NewClient(srv.URL, time.Second)
	err := c.Call(context.Background(), "bank.getMintettes", nil, &struct{}{})
	require.ErrorIs(t, err, ErrProtocol)
}

func TestCallResultShapeMismatchIsProtocolError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": "a string"})
	})

	c := NewClient(srv.URL, time.Second)
	var height int
	err := c.Call(context.Background(), "bank.getBlockchainHeight", nil, &height)
	require.ErrorIs(t, err, ErrProtocol)
}

func TestCallUnexpectedStatusIsProtocolError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := NewClient(srv.URL, time.Second)
	err := c.Call(context.Background(), "bank.getMintettes", nil, nil)
	require.ErrorIs(t, err, ErrProtocol)
}

func TestCallTimeout(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	c := NewClient(srv.URL, 20*time.Millisecond)
	err := c.Call(context.Background(), "mintette.commitTx", nil, nil)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestCallContextDeadline(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	c := NewClient(srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.Call(ctx, "mintette.commitTx", nil, nil)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestCallUnreachableEndpoint(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	err := c.Call(context.Background(), "bank.getMintettes", nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrProtocol) || errors.Is(err, ErrTimeout))
}
