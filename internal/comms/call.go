package comms

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/sirupsen/logrus"

	"github.com/mintex-network/mintex-daemon/pkg/rpc"
	"github.com/mintex-network/mintex-daemon/pkg/signed"
)

// callerSidePrefix prefixes application-level failures unwrapped from an
// either result.
const callerSidePrefix = "Error on caller side has occurred: "

// Dialer builds a caller for an endpoint. Role clients that address nodes
// out of a roster snapshot (mintettes, explorers) take one instead of a
// fixed caller.
type Dialer func(endpoint string) rpc.Caller

// NewHTTPDialer returns a Dialer producing HTTP callers with the given
// per-request timeout.
func NewHTTPDialer(timeout time.Duration) Dialer {
	return func(endpoint string) rpc.Caller {
		return rpc.NewClient(endpoint, timeout)
	}
}

// callOpts selects which wrapping layers apply to a remote call.
type callOpts struct {
	// role names the authority whose key signs the response; used for
	// logging and bad-signature reporting.
	role string
	// verifyKey, when set, requires the response to be a signed envelope
	// verified against it before the payload is released.
	verifyKey *btcec.PublicKey
	// either unwraps an application-level left/right result.
	either bool
}

// eitherResult is the wire shape of an application-level result that can
// fail per-call without being a transport failure.
type eitherResult struct {
	Left  *string         `json:"left,omitempty"`
	Right json.RawMessage `json:"right,omitempty"`
}

// call is the single combinator every remote operation goes through.
// Checks are ordered from most to least fundamental: transport fault,
// envelope decode and signature verification, inner either unwrapping.
func call(ctx context.Context, c rpc.Caller, method string, params, reply interface{}, opts callOpts) error {
	log.WithField("method", method).Debug("issuing remote call")

	if opts.verifyKey == nil {
		if opts.either {
			var res eitherResult
			if err := c.Call(ctx, method, params, &res); err != nil {
				return translate(method, err)
			}
			return unwrapEither(method, res, reply)
		}
		if err := c.Call(ctx, method, params, reply); err != nil {
			return translate(method, err)
		}
		return nil
	}

	var env signed.Envelope
	if err := c.Call(ctx, method, params, &env); err != nil {
		return translate(method, err)
	}
	if !env.Verify(opts.verifyKey) {
		cerr := badSignature(opts.role)
		log.WithField("method", method).WithField("role", opts.role).
			Error("response failed signature verification")
		return cerr
	}
	if opts.either {
		var res eitherResult
		if err := json.Unmarshal(env.Payload, &res); err != nil {
			return logged(method, protocolError("undecodable either payload: "+err.Error()))
		}
		return unwrapEither(method, res, reply)
	}
	if reply == nil {
		return nil
	}
	if err := json.Unmarshal(env.Payload, reply); err != nil {
		return logged(method, protocolError("payload shape mismatch: "+err.Error()))
	}
	return nil
}

func unwrapEither(method string, res eitherResult, reply interface{}) error {
	if res.Left != nil {
		return logged(method, methodError(callerSidePrefix+*res.Left))
	}
	if reply == nil {
		return nil
	}
	if err := json.Unmarshal(res.Right, reply); err != nil {
		return logged(method, protocolError("right value shape mismatch: "+err.Error()))
	}
	return nil
}

// translate maps a raw transport failure into the closed taxonomy, logging
// it at the point of detection. Failures are never swallowed or downgraded.
func translate(method string, err error) error {
	var cerr *Error
	var mf *rpc.MethodFault
	switch {
	case errors.Is(err, rpc.ErrTimeout):
		cerr = timeoutError(err.Error())
	case errors.As(err, &mf):
		cerr = methodError(mf.Message)
	default:
		cerr = protocolError(err.Error())
	}
	return logged(method, cerr)
}

func logged(method string, cerr *Error) *Error {
	log.WithField("method", method).Error(cerr.Error())
	return cerr
}
