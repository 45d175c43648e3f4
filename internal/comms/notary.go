package comms

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/thanhpk/randstr"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/block"
	"github.com/mintex-network/mintex-daemon/internal/domain/strategy"
	"github.com/mintex-network/mintex-daemon/internal/domain/transaction"
	"github.com/mintex-network/mintex-daemon/pkg/rpc"
	"github.com/mintex-network/mintex-daemon/pkg/signed"
)

const roleNotary = "notary"

// NotaryClient calls the notary's allocation and signature-collection
// surface. Query responses are signed envelopes verified against the
// notary's authority key.
type NotaryClient struct {
	caller rpc.Caller
	key    *btcec.PublicKey
}

// NewNotaryClient builds a client around a caller addressing the notary and
// the notary's public key from node configuration.
func NewNotaryClient(caller rpc.Caller, notaryKey *btcec.PublicKey) *NotaryClient {
	return &NotaryClient{caller: caller, key: notaryKey}
}

func (c *NotaryClient) signedOpts() callOpts {
	return callOpts{role: roleNotary, verifyKey: c.key}
}

// AllocateMultisigAddress submits a party's half of a multisignature address
// allocation. Fire and forget: the notary's acknowledgment carries no
// payload. The caller supplies its own signature over (msAddr, strat) and,
// for trust parties, an optional master-key certificate.
func (c *NotaryClient) AllocateMultisigAddress(
	ctx context.Context,
	msAddr address.MSAddress,
	party strategy.PartyAddress,
	strat strategy.AllocationStrategy,
	sig []byte,
	masterCert *MasterCertificate,
) error {
	req := AllocationRequest{
		ID:         randstr.Hex(8),
		MSAddress:  msAddr,
		Party:      party,
		Strategy:   strat,
		Signature:  sig,
		MasterCert: masterCert,
	}
	return call(ctx, c.caller, "notary.allocateMultisig", req, nil, callOpts{either: true})
}

// AnnounceNewPeriods pushes the bank's recent higher-level blocks to the
// notary. The request must originate from the bank, so it is wrapped in an
// envelope signed with the bank's key.
func (c *NotaryClient) AnnounceNewPeriods(ctx context.Context, bankPrv *btcec.PrivateKey, periodID int, hblocks []block.HBlock) error {
	env, err := signed.Sign(bankPrv, struct {
		PeriodID int            `json:"period_id"`
		HBlocks  []block.HBlock `json:"hblocks"`
	}{PeriodID: periodID, HBlocks: hblocks})
	if err != nil {
		return logged("notary.announceNewPeriods", protocolError(err.Error()))
	}
	return call(ctx, c.caller, "notary.announceNewPeriods", env, nil, callOpts{either: true})
}

// GetNotaryPeriod fetches the period the notary currently operates in.
func (c *NotaryClient) GetNotaryPeriod(ctx context.Context) (int, error) {
	var out int
	if err := call(ctx, c.caller, "notary.getPeriod", nil, &out, c.signedOpts()); err != nil {
		return 0, err
	}
	return out, nil
}

// PollPendingTxs fetches the transactions awaiting more signatures from the
// given party.
func (c *NotaryClient) PollPendingTxs(ctx context.Context, party strategy.PartyAddress) ([]transaction.Transaction, error) {
	var out []transaction.Transaction
	params := struct {
		Party strategy.PartyAddress `json:"party"`
	}{Party: party}
	if err := call(ctx, c.caller, "notary.pollPendingTxs", params, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTxSignatures fetches the signatures collected so far for a transaction
// spending from addr.
func (c *NotaryClient) GetTxSignatures(ctx context.Context, tx *transaction.Transaction, addr address.Address) ([]strategy.SignaturePair, error) {
	var out []strategy.SignaturePair
	params := struct {
		Tx      *transaction.Transaction `json:"tx"`
		Address address.Address          `json:"address"`
	}{Tx: tx, Address: addr}
	if err := call(ctx, c.caller, "notary.getTxSignatures", params, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// PublishTx hands a partially signed transaction to the notary and returns
// the updated signature set.
func (c *NotaryClient) PublishTx(ctx context.Context, pair TxSignaturePair, addr address.Address) ([]strategy.SignaturePair, error) {
	var out []strategy.SignaturePair
	params := struct {
		Pair    TxSignaturePair `json:"pair"`
		Address address.Address `json:"address"`
	}{Pair: pair, Address: addr}
	if err := call(ctx, c.caller, "notary.publishTx", params, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryCompleteMSAddresses fetches the multisignature addresses whose
// allocation has completed, with their derived strategies.
func (c *NotaryClient) QueryCompleteMSAddresses(ctx context.Context) ([]CompleteAllocation, error) {
	var out []CompleteAllocation
	if err := call(ctx, c.caller, "notary.queryCompleteMS", nil, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryMyMSAllocations fetches the party's pending allocations.
func (c *NotaryClient) QueryMyMSAllocations(ctx context.Context, party strategy.PartyAddress) ([]PendingAllocation, error) {
	var out []PendingAllocation
	params := struct {
		Party strategy.PartyAddress `json:"party"`
	}{Party: party}
	if err := call(ctx, c.caller, "notary.queryMyAllocations", params, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveCompleteMSAddresses asks the notary to drop completed allocations.
// The address list is signed by the caller; fire and forget.
func (c *NotaryClient) RemoveCompleteMSAddresses(ctx context.Context, addrs []address.MSAddress, sig []byte) error {
	params := struct {
		Addresses []address.MSAddress `json:"addresses"`
		Signature []byte              `json:"signature"`
	}{Addresses: addrs, Signature: sig}
	return call(ctx, c.caller, "notary.removeCompleteMS", params, nil, callOpts{either: true})
}
