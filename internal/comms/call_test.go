package comms

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintex-network/mintex-daemon/pkg/rpc"
)

func TestTranslateTimeout(t *testing.T) {
	caller := &fakeCaller{err: fmt.Errorf("%w: mintette.commitTx", rpc.ErrTimeout)}
	err := call(context.Background(), caller, "mintette.commitTx", nil, nil, callOpts{})
	require.Equal(t, KindTimeout, KindOf(err))
}

func TestTranslateProtocol(t *testing.T) {
	caller := &fakeCaller{err: fmt.Errorf("%w: garbage body", rpc.ErrProtocol)}
	err := call(context.Background(), caller, "bank.getMintettes", nil, nil, callOpts{})
	require.Equal(t, KindProtocol, KindOf(err))
}

func TestTranslateMethodFault(t *testing.T) {
	caller := &fakeCaller{err: &rpc.MethodFault{Method: "bank.getHBlock", Message: "no such block"}}
	err := call(context.Background(), caller, "bank.getHBlock", nil, nil, callOpts{})
	require.Equal(t, KindMethod, KindOf(err))

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "no such block", cerr.Msg)
}

func TestKindOfForeignError(t *testing.T) {
	require.Equal(t, Kind(0), KindOf(fmt.Errorf("plain error")))
	require.Equal(t, Kind(0), KindOf(nil))
}

func TestErrorStrings(t *testing.T) {
	require.Contains(t, badSignature("bank").Error(), `"bank"`)
	require.Contains(t, timeoutError("m").Error(), "timeout")
	require.Contains(t, methodError("m").Error(), "method")
	require.Contains(t, protocolError("m").Error(), "protocol")
}
