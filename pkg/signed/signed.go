// Package signed implements the envelope protocol used to authenticate
// payloads exchanged with the bank and the notary: a value paired with a
// signature over its canonical serialization, verified against a statically
// known authority key before the payload is released.
package signed

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/mintex-network/mintex-daemon/pkg/crypto"
)

// ErrBadSignature ...
var ErrBadSignature = errors.New(
	"envelope signature verification failed",
)

// Envelope pairs a serialized payload with a signature over its exact bytes.
// It is constructed once at the signer and consumed once at the verifier.
type Envelope struct {
	Payload   json.RawMessage `json:"payload"`
	Signature string          `json:"signature"`
}

// Sign canonically serializes value and signs the resulting bytes with prv.
func Sign(prv *btcec.PrivateKey, value interface{}) (*Envelope, error) {
	payload, err := crypto.CanonicalBytes(value)
	if err != nil {
		return nil, err
	}
	sig := crypto.Sign(prv, payload)
	return &Envelope{
		Payload:   payload,
		Signature: hex.EncodeToString(sig),
	}, nil
}

// Verify reports whether the envelope's signature is valid over its payload
// bytes for the given authority key.
func (e *Envelope) Verify(pub *btcec.PublicKey) bool {
	sig, err := hex.DecodeString(e.Signature)
	if err != nil {
		return false
	}
	return crypto.Verify(pub, e.Payload, sig)
}

// Open verifies the envelope against pub and, only on success, unmarshals
// the payload into out. A forged or corrupted envelope never releases its
// payload.
func (e *Envelope) Open(pub *btcec.PublicKey, out interface{}) error {
	if !e.Verify(pub) {
		return ErrBadSignature
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(e.Payload, out); err != nil {
		return fmt.Errorf("decode envelope payload: %w", err)
	}
	return nil
}
