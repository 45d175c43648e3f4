package comms

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintex-network/mintex-daemon/internal/domain/block"
	"github.com/mintex-network/mintex-daemon/internal/domain/node"
	"github.com/mintex-network/mintex-daemon/pkg/crypto"
	"github.com/mintex-network/mintex-daemon/pkg/rpc"
)

func TestBankGetBlockchainHeight(t *testing.T) {
	bankPrv, bankPub, err := crypto.NewKeyPair()
	require.NoError(t, err)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		require.Equal(t, "bank.getBlockchainHeight", method)
		return signedResult(t, bankPrv, 17)
	})

	c := NewBankClient(newCaller(srv), bankPub)
	height, err := c.GetBlockchainHeight(context.Background())
	require.NoError(t, err)
	require.Equal(t, 17, height)
}

func TestBankGetMintettes(t *testing.T) {
	bankPrv, bankPub, err := crypto.NewKeyPair()
	require.NoError(t, err)

	roster := []node.Mintette{{Host: "m0", Port: 9100}, {Host: "m1", Port: 9100}}
	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		return signedResult(t, bankPrv, roster)
	})

	c := NewBankClient(newCaller(srv), bankPub)
	got, err := c.GetMintettes(context.Background())
	require.NoError(t, err)
	require.Equal(t, roster, got)
}

func TestBankTamperedBlockFailsWithBadSignature(t *testing.T) {
	bankPrv, bankPub, err := crypto.NewKeyPair()
	require.NoError(t, err)

	hb := block.HBlock{Hash: "aa", PrevHash: "bb", PeriodID: 3}
	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		env := signedResult(t, bankPrv, rightResult(t, hb))
		// flip a payload byte after signing, as a corrupting intermediary would
		env.Payload[2] ^= 0x01
		return env
	})

	c := NewBankClient(newCaller(srv), bankPub)
	got, err := c.GetHBlock(context.Background(), 3)
	require.Nil(t, got)
	require.Equal(t, KindBadSignature, KindOf(err))

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "bank", cerr.Role)
}

func TestBankForeignKeyFailsWithBadSignature(t *testing.T) {
	_, bankPub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	otherPrv, _, err := crypto.NewKeyPair()
	require.NoError(t, err)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		return signedResult(t, otherPrv, 17)
	})

	c := NewBankClient(newCaller(srv), bankPub)
	_, err = c.GetBlockchainHeight(context.Background())
	require.Equal(t, KindBadSignature, KindOf(err))
}

func TestBankGetBlocksShortResult(t *testing.T) {
	bankPrv, bankPub, err := crypto.NewKeyPair()
	require.NoError(t, err)

	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		// out-of-range request: short result, not an error
		return signedResult(t, bankPrv, []block.HBlock{})
	})

	c := NewBankClient(newCaller(srv), bankPub)
	blocks, err := c.GetBlocks(context.Background(), 100, 200)
	require.NoError(t, err)
	require.Empty(t, blocks)
}

func TestGetMintetteLogsOutOfBoundsIsLocal(t *testing.T) {
	roster := []node.Mintette{{Host: "m0"}, {Host: "m1"}, {Host: "m2"}}

	caller := &fakeCaller{}
	dial := func(endpoint string) rpc.Caller { return caller }

	_, err := GetMintetteLogs(context.Background(), dial, roster, 5, 0, 10)
	require.Equal(t, KindMethod, KindOf(err))
	require.Zero(t, caller.calls, "no network call may be attempted")

	_, err = GetMintetteUtxo(context.Background(), dial, roster, -1)
	require.Equal(t, KindMethod, KindOf(err))
	require.Zero(t, caller.calls)
}

func TestGetMintetteLogsInBounds(t *testing.T) {
	srv := newRoleServer(t, func(method string, params json.RawMessage) interface{} {
		require.Equal(t, "dump.getLogs", method)
		return rightResult(t, []block.ActionLogEntry{{Kind: block.ActionQuery, Value: "q"}})
	})

	host, port := splitHostPort(t, srv)
	roster := []node.Mintette{{Host: host, Port: port}}
	logs, err := GetMintetteLogs(context.Background(), NewHTTPDialer(testTimeout), roster, 0, 0, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, block.ActionQuery, logs[0].Kind)
}
