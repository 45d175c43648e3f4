package strategy

import (
	"errors"
	"sort"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/transaction"
	"github.com/mintex-network/mintex-daemon/pkg/crypto"
)

// Type tags the closed set of transaction authorization strategies.
type Type string

const (
	// TypeDefault requires exactly one valid signature from the owner
	// address itself.
	TypeDefault Type = "default"
	// TypeMOfN requires at least M distinct addresses out of a fixed set to
	// have signed the transaction.
	TypeMOfN Type = "m-of-n"
)

var (
	// ErrNoParties ...
	ErrNoParties = errors.New(
		"strategy must name at least one address",
	)
	// ErrZeroThreshold ...
	ErrZeroThreshold = errors.New(
		"signature threshold must be greater than zero",
	)
	// ErrThresholdTooHigh ...
	ErrThresholdTooHigh = errors.New(
		"signature threshold exceeds the number of distinct addresses",
	)
)

// TxStrategy is the spending policy attached to an address. M and Addresses
// are only meaningful for the m-of-n type. Values decoded from the wire are
// not re-validated; use the constructors when building one locally.
type TxStrategy struct {
	Type      Type              `json:"type"`
	M         int               `json:"m,omitempty"`
	Addresses []address.Address `json:"addresses,omitempty"`
}

// Default returns the single-signer strategy.
func Default() TxStrategy {
	return TxStrategy{Type: TypeDefault}
}

// NewMOfN builds a validated m-of-n strategy. The address set is deduplicated
// and stored sorted so that equal inputs always produce equal values.
func NewMOfN(m int, addrs []address.Address) (TxStrategy, error) {
	distinct := dedupeSorted(addrs)
	switch {
	case len(distinct) == 0:
		return TxStrategy{}, ErrNoParties
	case m <= 0:
		return TxStrategy{}, ErrZeroThreshold
	case m > len(distinct):
		return TxStrategy{}, ErrThresholdTooHigh
	}
	return TxStrategy{Type: TypeMOfN, M: m, Addresses: distinct}, nil
}

// SignaturePair is one collected signature over a transaction, together with
// the address that claims to have produced it. The public key is carried so
// the claim can be checked: it must both derive the claimed address and
// verify the signature.
type SignaturePair struct {
	Address   address.Address `json:"address"`
	PublicKey string          `json:"public_key"`
	Signature []byte          `json:"signature"`
}

func (p SignaturePair) validFor(tx *transaction.Transaction) bool {
	pub, err := crypto.ParsePublicKey(p.PublicKey)
	if err != nil {
		return false
	}
	if address.FromPubKey(pub) != p.Address {
		return false
	}
	return crypto.VerifyValue(pub, tx, p.Signature)
}

// IsCompleted reports whether the collected signatures authorize spending
// from owner under the given strategy. Pure predicate; duplicate or
// extraneous signatures never change the outcome.
func IsCompleted(s TxStrategy, owner address.Address, sigs []SignaturePair, tx *transaction.Transaction) bool {
	switch s.Type {
	case TypeDefault:
		for _, pair := range sigs {
			if pair.Address == owner && pair.validFor(tx) {
				return true
			}
		}
		return false
	case TypeMOfN:
		members := make(map[address.Address]bool, len(s.Addresses))
		for _, a := range s.Addresses {
			members[a] = true
		}
		counted := make(map[address.Address]bool)
		for _, pair := range sigs {
			if !members[pair.Address] || counted[pair.Address] {
				continue
			}
			if pair.validFor(tx) {
				counted[pair.Address] = true
			}
		}
		return len(counted) >= s.M
	default:
		return false
	}
}

func dedupeSorted(addrs []address.Address) []address.Address {
	seen := make(map[address.Address]bool, len(addrs))
	out := make([]address.Address, 0, len(addrs))
	for _, a := range addrs {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
