// Package rpc provides the generic call primitive the role clients are
// built on: a method-addressed JSON-over-HTTP exchange with a per-endpoint
// circuit breaker. The package only classifies raw transport outcomes; the
// caller-facing error taxonomy lives one layer up.
package rpc

import (
	"context"
	"errors"
	"fmt"
)

// Caller issues a single remote call. Implementations must honor the
// context's deadline and cancellation.
type Caller interface {
	Call(ctx context.Context, method string, params, reply interface{}) error
}

var (
	// ErrTimeout marks calls that produced no response within the
	// transport's deadline, including calls short-circuited by an open
	// circuit breaker.
	ErrTimeout = errors.New(
		"request timed out",
	)
	// ErrProtocol marks malformed or undecodable exchanges: unreachable
	// endpoint, unexpected HTTP status, undecodable body, or a result that
	// does not match the expected shape.
	ErrProtocol = errors.New(
		"protocol failure",
	)
)

// MethodFault is a failure reported by the remote method itself: the
// exchange succeeded but the server answered with an error object.
type MethodFault struct {
	Method  string
	Message string
}

func (f *MethodFault) Error() string {
	return fmt.Sprintf("method %s failed: %s", f.Method, f.Message)
}
