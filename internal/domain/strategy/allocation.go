package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
)

// PartyTag distinguishes trusted-infrastructure parties from ordinary user
// parties in a multisignature allocation.
type PartyTag string

const (
	// TagTrust marks a trusted-infrastructure party.
	TagTrust PartyTag = "trust"
	// TagUser marks an ordinary user party.
	TagUser PartyTag = "user"
)

var (
	// ErrUnknownParty ...
	ErrUnknownParty = errors.New(
		"party is not listed in the allocation strategy",
	)
	// ErrInvalidPartyTag ...
	ErrInvalidPartyTag = errors.New(
		"party tag must be either trust or user",
	)
)

// AllocationAddress identifies one candidate signer of a pending
// multisignature allocation. Equality is by (tag, address); the value is
// comparable and used as a map key.
type AllocationAddress struct {
	Tag     PartyTag        `json:"tag"`
	Address address.Address `json:"address"`
}

// TrustAlloc returns the trust-tagged allocation address of addr.
func TrustAlloc(addr address.Address) AllocationAddress {
	return AllocationAddress{Tag: TagTrust, Address: addr}
}

// UserAlloc returns the user-tagged allocation address of addr.
func UserAlloc(addr address.Address) AllocationAddress {
	return AllocationAddress{Tag: TagUser, Address: addr}
}

func (a AllocationAddress) String() string {
	return fmt.Sprintf("%s:%s", a.Tag, a.Address)
}

// MarshalText implements encoding.TextMarshaler so allocation addresses can
// key JSON confirmation maps.
func (a AllocationAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AllocationAddress) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("malformed allocation address %q", text)
	}
	tag := PartyTag(parts[0])
	if tag != TagTrust && tag != TagUser {
		return ErrInvalidPartyTag
	}
	addr, err := address.Parse(parts[1])
	if err != nil {
		return err
	}
	a.Tag = tag
	a.Address = addr
	return nil
}

// PartyAddress is the request-time identity of an allocation party. Trust
// parties additionally carry a hot public key, used to sign allocation
// requests in place of their cold master key.
type PartyAddress struct {
	Tag     PartyTag        `json:"tag"`
	Address address.Address `json:"address"`
	HotKey  string          `json:"hot_key,omitempty"`
}

// TrustParty builds the request identity of a trusted party with its hot key.
func TrustParty(addr address.Address, hotKey string) PartyAddress {
	return PartyAddress{Tag: TagTrust, Address: addr, HotKey: hotKey}
}

// UserParty builds the request identity of an ordinary user party.
func UserParty(addr address.Address) PartyAddress {
	return PartyAddress{Tag: TagUser, Address: addr}
}

// Allocation projects the party to its allocation form, discarding any hot
// key material. Total and structure preserving.
func (p PartyAddress) Allocation() AllocationAddress {
	return AllocationAddress{Tag: p.Tag, Address: p.Address}
}

// AllocationStrategy is the negotiated policy of a pending multisignature
// address: SigNumber signatures required out of AllParties candidates.
type AllocationStrategy struct {
	SigNumber  int                 `json:"sig_number"`
	AllParties []AllocationAddress `json:"all_parties"`
}

// NewAllocationStrategy builds a validated allocation strategy. The
// threshold is checked against the number of distinct parties.
func NewAllocationStrategy(sigNumber int, parties []AllocationAddress) (AllocationStrategy, error) {
	distinct := dedupeParties(parties)
	switch {
	case len(distinct) == 0:
		return AllocationStrategy{}, ErrNoParties
	case sigNumber <= 0:
		return AllocationStrategy{}, ErrZeroThreshold
	case sigNumber > len(distinct):
		return AllocationStrategy{}, ErrThresholdTooHigh
	}
	return AllocationStrategy{SigNumber: sigNumber, AllParties: distinct}, nil
}

// TxStrategy derives the spending policy of the completed allocation. The
// trust/user tags are projected away; a trust party and a user party sharing
// one underlying address deliberately collapse into a single quorum member.
func (s AllocationStrategy) TxStrategy() TxStrategy {
	addrs := make([]address.Address, 0, len(s.AllParties))
	for _, p := range s.AllParties {
		addrs = append(addrs, p.Address)
	}
	return TxStrategy{Type: TypeMOfN, M: s.SigNumber, Addresses: dedupeSorted(addrs)}
}

// AllocationInfo tracks which parties of a pending allocation have confirmed
// and with which concrete address each confirmed.
type AllocationInfo struct {
	Strategy      AllocationStrategy                    `json:"strategy"`
	Confirmations map[AllocationAddress]address.Address `json:"confirmations"`
}

// NewAllocationInfo starts tracking a fresh allocation with no
// confirmations.
func NewAllocationInfo(s AllocationStrategy) *AllocationInfo {
	return &AllocationInfo{
		Strategy:      s,
		Confirmations: make(map[AllocationAddress]address.Address),
	}
}

// Confirm records that party confirmed the allocation with the given
// address. Re-confirming overwrites the previous entry for the party.
func (i *AllocationInfo) Confirm(party AllocationAddress, addr address.Address) error {
	for _, p := range i.Strategy.AllParties {
		if p == party {
			if i.Confirmations == nil {
				i.Confirmations = make(map[AllocationAddress]address.Address)
			}
			i.Confirmations[party] = addr
			return nil
		}
	}
	return ErrUnknownParty
}

// IsComplete reports whether enough listed parties have confirmed.
func (i *AllocationInfo) IsComplete() bool {
	count := 0
	for _, p := range i.Strategy.AllParties {
		if _, ok := i.Confirmations[p]; ok {
			count++
		}
	}
	return count >= i.Strategy.SigNumber
}

func dedupeParties(parties []AllocationAddress) []AllocationAddress {
	seen := make(map[AllocationAddress]bool, len(parties))
	out := make([]AllocationAddress, 0, len(parties))
	for _, p := range parties {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
