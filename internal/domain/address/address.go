package address

import (
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/mintex-network/mintex-daemon/pkg/crypto"
)

// Size is the length in bytes of an address.
const Size = 20

var (
	// ErrInvalidLength ...
	ErrInvalidLength = errors.New(
		"address must be exactly 20 bytes",
	)
	// ErrInvalidHex ...
	ErrInvalidHex = errors.New(
		"address must be hex encoded",
	)
)

// Address is the public identifier of a fund-holding entity, derived from
// the compressed form of its public key. It is a value type and is used as a
// map key throughout the system.
type Address [Size]byte

// MSAddress is an Address that denotes a multisignature target. The alias
// exists for readability of the notary call surfaces only.
type MSAddress = Address

// FromPubKey derives the address of a public key.
func FromPubKey(pub *btcec.PublicKey) Address {
	digest := crypto.Hash(pub.SerializeCompressed())
	var addr Address
	copy(addr[:], digest[:Size])
	return addr
}

// Parse decodes an address from its hex string form.
func Parse(s string) (Address, error) {
	var addr Address
	buf, err := hex.DecodeString(s)
	if err != nil {
		return addr, ErrInvalidHex
	}
	if len(buf) != Size {
		return addr, ErrInvalidLength
	}
	copy(addr[:], buf)
	return addr, nil
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler so addresses can be used as
// JSON object keys.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
