package comms

import (
	"errors"
	"fmt"
)

// Kind enumerates the closed set of remote-call failure classes.
type Kind int

const (
	// KindProtocol marks a malformed or undecodable exchange at the
	// transport boundary. Not retryable without a protocol fix.
	KindProtocol Kind = iota + 1
	// KindTimeout marks calls that received no response within the
	// transport deadline. The caller may retry with backoff.
	KindTimeout
	// KindMethod marks an application-level failure reported by the remote
	// method, or a local precondition that failed before any network
	// attempt.
	KindMethod
	// KindBadSignature marks a response that decoded but failed
	// authenticity verification against the named authority. Always fatal,
	// never retried: it may indicate an active attack.
	KindBadSignature
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol error"
	case KindTimeout:
		return "timeout error"
	case KindMethod:
		return "method error"
	case KindBadSignature:
		return "bad signature"
	default:
		return "unknown error"
	}
}

// Error is a classified remote-call failure. Role is set for bad-signature
// failures to name the authority the verification ran against.
type Error struct {
	Kind Kind
	Role string
	Msg  string
}

func (e *Error) Error() string {
	if e.Kind == KindBadSignature {
		return fmt.Sprintf("%s: response failed verification against %q authority key", e.Kind, e.Role)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// KindOf returns the kind of a classified error, or zero for any other
// error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func protocolError(msg string) *Error {
	return &Error{Kind: KindProtocol, Msg: msg}
}

func timeoutError(msg string) *Error {
	return &Error{Kind: KindTimeout, Msg: msg}
}

func methodError(msg string) *Error {
	return &Error{Kind: KindMethod, Msg: msg}
}

func badSignature(role string) *Error {
	return &Error{Kind: KindBadSignature, Role: role}
}
