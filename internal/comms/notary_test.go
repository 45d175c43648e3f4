package comms

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/strategy"
	"github.com/mintex-network/mintex-daemon/pkg/crypto"
)

func TestNotaryGetPeriod(t *testing.T) {
	notaryPrv, notaryPub, err := crypto.NewKeyPair()
	require.NoError(t, err)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		require.Equal(t, "notary.getPeriod", method)
		return signedResult(t, notaryPrv, 5)
	})

	c := NewNotaryClient(newCaller(srv), notaryPub)
	pid, err := c.GetNotaryPeriod(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, pid)
}

func TestNotaryForgedResponseFailsWithBadSignature(t *testing.T) {
	_, notaryPub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	forgerPrv, _, err := crypto.NewKeyPair()
	require.NoError(t, err)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		return signedResult(t, forgerPrv, 5)
	})

	c := NewNotaryClient(newCaller(srv), notaryPub)
	_, err = c.GetNotaryPeriod(context.Background())
	require.Equal(t, KindBadSignature, KindOf(err))

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "notary", cerr.Role)
}

func TestAllocateMultisigAddressRequestShape(t *testing.T) {
	_, notaryPub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	_, partyPub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	partyAddr := addressFromPub(partyPub)

	strat, err := strategy.NewAllocationStrategy(1, []strategy.AllocationAddress{
		strategy.UserAlloc(partyAddr),
	})
	require.NoError(t, err)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		require.Equal(t, "notary.allocateMultisig", method)

		var req AllocationRequest
		require.NoError(t, json.Unmarshal(params, &req))
		require.Len(t, req.ID, 16, "hex request id of 8 random bytes")
		require.Equal(t, strategy.TagUser, req.Party.Tag)
		require.Equal(t, 1, req.Strategy.SigNumber)
		return rightResult(t, struct{}{})
	})

	c := NewNotaryClient(newCaller(srv), notaryPub)
	err = c.AllocateMultisigAddress(
		context.Background(),
		partyAddr,
		strategy.UserParty(partyAddr),
		strat,
		[]byte{1, 2, 3},
		nil,
	)
	require.NoError(t, err)
}

func TestQueryCompleteMSAddresses(t *testing.T) {
	notaryPrv, notaryPub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	_, pub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	addr := addressFromPub(pub)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		return signedResult(t, notaryPrv, []CompleteAllocation{{
			Address:  addr,
			Strategy: strategy.TxStrategy{Type: strategy.TypeDefault},
		}})
	})

	c := NewNotaryClient(newCaller(srv), notaryPub)
	got, err := c.QueryCompleteMSAddresses(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, addr, got[0].Address)
	require.Equal(t, strategy.TypeDefault, got[0].Strategy.Type)
}

func TestRemoveCompleteMSAddresses(t *testing.T) {
	_, notaryPub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	_, pub, err := crypto.NewKeyPair()
	require.NoError(t, err)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		var p struct {
			Addresses []string `json:"addresses"`
			Signature []byte   `json:"signature"`
		}
		require.NoError(t, json.Unmarshal(params, &p))
		require.Len(t, p.Addresses, 1)
		require.NotEmpty(t, p.Signature)
		return rightResult(t, struct{}{})
	})

	c := NewNotaryClient(newCaller(srv), notaryPub)
	err = c.RemoveCompleteMSAddresses(
		context.Background(),
		[]address.MSAddress{addressFromPub(pub)},
		[]byte{7},
	)
	require.NoError(t, err)
}
