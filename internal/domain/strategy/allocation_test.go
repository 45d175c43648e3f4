package strategy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/pkg/crypto"
)

func newAddr(t *testing.T) address.Address {
	t.Helper()
	_, pub, err := crypto.NewKeyPair()
	require.NoError(t, err)
	return address.FromPubKey(pub)
}

func TestPartyToAllocationRoundTripsAddress(t *testing.T) {
	addr := newAddr(t)

	trust := TrustParty(addr, "deadbeef")
	require.Equal(t, TrustAlloc(addr), trust.Allocation())
	require.Equal(t, addr, trust.Allocation().Address)

	user := UserParty(addr)
	require.Equal(t, UserAlloc(addr), user.Allocation())
	require.Equal(t, addr, user.Allocation().Address)
}

func TestAllocationDistinguishesTags(t *testing.T) {
	addr := newAddr(t)
	require.NotEqual(t, TrustAlloc(addr), UserAlloc(addr))
}

func TestTxStrategyProjectionIsDeterministic(t *testing.T) {
	a, b := newAddr(t), newAddr(t)

	s, err := NewAllocationStrategy(2, []AllocationAddress{
		TrustAlloc(a), UserAlloc(b),
	})
	require.NoError(t, err)

	first := s.TxStrategy()
	second := s.TxStrategy()
	require.Equal(t, first, second)
	require.Equal(t, TypeMOfN, first.Type)
	require.Equal(t, 2, first.M)
	require.ElementsMatch(t, []address.Address{a, b}, first.Addresses)
}

func TestTxStrategyProjectionCollapsesSharedAddresses(t *testing.T) {
	a, b := newAddr(t), newAddr(t)

	// a appears both as trust and user party; the quorum set keeps it once
	s := AllocationStrategy{
		SigNumber:  2,
		AllParties: []AllocationAddress{TrustAlloc(a), UserAlloc(a), UserAlloc(b)},
	}
	derived := s.TxStrategy()
	require.Len(t, derived.Addresses, 2)
	require.ElementsMatch(t, []address.Address{a, b}, derived.Addresses)
}

func TestNewAllocationStrategyValidation(t *testing.T) {
	a := newAddr(t)

	_, err := NewAllocationStrategy(1, nil)
	require.ErrorIs(t, err, ErrNoParties)

	_, err = NewAllocationStrategy(0, []AllocationAddress{UserAlloc(a)})
	require.ErrorIs(t, err, ErrZeroThreshold)

	_, err = NewAllocationStrategy(2, []AllocationAddress{UserAlloc(a)})
	require.ErrorIs(t, err, ErrThresholdTooHigh)
}

func TestAllocationInfoConfirmations(t *testing.T) {
	a, b, c := newAddr(t), newAddr(t), newAddr(t)

	s, err := NewAllocationStrategy(2, []AllocationAddress{
		TrustAlloc(a), UserAlloc(b), UserAlloc(c),
	})
	require.NoError(t, err)

	info := NewAllocationInfo(s)
	require.False(t, info.IsComplete())

	require.NoError(t, info.Confirm(TrustAlloc(a), a))
	require.False(t, info.IsComplete())

	// confirming twice for the same party does not double count
	require.NoError(t, info.Confirm(TrustAlloc(a), a))
	require.False(t, info.IsComplete())

	require.ErrorIs(t, info.Confirm(UserAlloc(newAddr(t)), a), ErrUnknownParty)

	require.NoError(t, info.Confirm(UserAlloc(b), b))
	require.True(t, info.IsComplete())
}

func TestAllocationAddressJSONMapKey(t *testing.T) {
	a := newAddr(t)
	in := map[AllocationAddress]address.Address{
		TrustAlloc(a): a,
		UserAlloc(a):  a,
	}
	buf, err := json.Marshal(in)
	require.NoError(t, err)

	out := map[AllocationAddress]address.Address{}
	require.NoError(t, json.Unmarshal(buf, &out))
	require.Equal(t, in, out)
}
