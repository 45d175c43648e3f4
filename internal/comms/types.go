package comms

import (
	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/strategy"
	"github.com/mintex-network/mintex-daemon/internal/domain/transaction"
)

// CheckConfirmation is a mintette's attestation that an addrid is not
// double-spent: its public key and a signature over (tx, addrid).
type CheckConfirmation struct {
	MintetteKey string `json:"mintette_key"`
	Signature   []byte `json:"signature"`
}

// CheckResult is the per-addrid outcome of a batch double-spend check.
// Exactly one of Left (rejection reason) or Right is set; a failing entry
// never aborts the batch.
type CheckResult struct {
	Left  *string            `json:"left,omitempty"`
	Right *CheckConfirmation `json:"right,omitempty"`
}

// CommitAck is a mintette's acknowledgment of a committed transaction.
type CommitAck struct {
	MintetteKey string `json:"mintette_key"`
	Signature   []byte `json:"signature"`
	LogHead     string `json:"log_head,omitempty"`
}

// Utxo is a mintette's view of unspent outputs, keyed by addrid key form,
// mapping to the owning address. Diagnostic payload only.
type Utxo map[string]address.Address

// MasterCertificate optionally accompanies a trust party's allocation
// request: the party's cold master key and its signature over the hot key.
type MasterCertificate struct {
	MasterKey string `json:"master_key"`
	Signature []byte `json:"signature"`
}

// AllocationRequest is the notary-bound request to allocate a multisignature
// address.
type AllocationRequest struct {
	ID         string                      `json:"id"`
	MSAddress  address.MSAddress           `json:"ms_address"`
	Party      strategy.PartyAddress       `json:"party"`
	Strategy   strategy.AllocationStrategy `json:"strategy"`
	Signature  []byte                      `json:"signature"`
	MasterCert *MasterCertificate          `json:"master_cert,omitempty"`
}

// CompleteAllocation is one fully confirmed multisignature address together
// with its derived spending strategy.
type CompleteAllocation struct {
	Address  address.MSAddress   `json:"address"`
	Strategy strategy.TxStrategy `json:"strategy"`
}

// PendingAllocation is one of a party's not yet complete allocations.
type PendingAllocation struct {
	Address address.MSAddress       `json:"address"`
	Info    strategy.AllocationInfo `json:"info"`
}

// TxSignaturePair couples a transaction with one collected signature, used
// when publishing partially signed transactions to the notary.
type TxSignaturePair struct {
	Tx        transaction.Transaction `json:"tx"`
	Signature strategy.SignaturePair  `json:"signature"`
}
