package comms

import (
	"context"

	"github.com/mintex-network/mintex-daemon/internal/domain/block"
	"github.com/mintex-network/mintex-daemon/internal/domain/node"
	"github.com/mintex-network/mintex-daemon/internal/domain/strategy"
	"github.com/mintex-network/mintex-daemon/internal/domain/transaction"
	"github.com/mintex-network/mintex-daemon/pkg/rpc"
)

// MintetteClient calls a single mintette. Mintette responses ride the
// transport-authenticated channel and are not envelope-signed; application
// failures come back as either results.
type MintetteClient struct {
	caller rpc.Caller
}

// NewMintetteClient builds a client around a caller addressing one mintette.
func NewMintetteClient(caller rpc.Caller) *MintetteClient {
	return &MintetteClient{caller: caller}
}

// DialMintette builds a client for a roster entry.
func DialMintette(dial Dialer, m node.Mintette) *MintetteClient {
	return NewMintetteClient(dial(m.Endpoint()))
}

// AnnounceNewPeriod delivers the bank's new-period data to the mintette.
func (c *MintetteClient) AnnounceNewPeriod(ctx context.Context, data block.NewPeriodData) error {
	return call(ctx, c.caller, "mintette.announceNewPeriod", data, nil, callOpts{either: true})
}

// CheckNotDoubleSpent asks the mintette to confirm that addrID is not spent
// by another transaction. A rejection is an application-level failure.
func (c *MintetteClient) CheckNotDoubleSpent(
	ctx context.Context,
	tx *transaction.Transaction,
	addrID transaction.AddrID,
	ownerSig strategy.SignaturePair,
) (*CheckConfirmation, error) {
	params := struct {
		Tx        *transaction.Transaction `json:"tx"`
		AddrID    transaction.AddrID       `json:"addrid"`
		Signature strategy.SignaturePair   `json:"signature"`
	}{Tx: tx, AddrID: addrID, Signature: ownerSig}

	var out CheckConfirmation
	if err := call(ctx, c.caller, "mintette.checkNotDoubleSpent", params, &out, callOpts{either: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckNotDoubleSpentBatch checks several addrids in one exchange. Each
// entry of the returned mapping independently carries either a confirmation
// or a rejection reason; one bad input does not abort the batch.
func (c *MintetteClient) CheckNotDoubleSpentBatch(
	ctx context.Context,
	tx *transaction.Transaction,
	addrIDs []transaction.AddrID,
	ownerSigs map[string]strategy.SignaturePair,
) (map[string]CheckResult, error) {
	params := struct {
		Tx         *transaction.Transaction          `json:"tx"`
		AddrIDs    []transaction.AddrID              `json:"addrids"`
		Signatures map[string]strategy.SignaturePair `json:"signatures"`
	}{Tx: tx, AddrIDs: addrIDs, Signatures: ownerSigs}

	out := make(map[string]CheckResult)
	if err := call(ctx, c.caller, "mintette.checkNotDoubleSpentBatch", params, &out, callOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

// CommitTx submits a fully checked transaction together with the
// confirmations collected from the owning mintettes.
func (c *MintetteClient) CommitTx(
	ctx context.Context,
	tx *transaction.Transaction,
	confirmations map[string]CheckConfirmation,
) (*CommitAck, error) {
	params := struct {
		Tx            *transaction.Transaction     `json:"tx"`
		Confirmations map[string]CheckConfirmation `json:"confirmations"`
	}{Tx: tx, Confirmations: confirmations}

	var out CommitAck
	if err := call(ctx, c.caller, "mintette.commitTx", params, &out, callOpts{either: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendPeriodFinished closes the mintette's period and returns its
// accumulated blocks and action log.
func (c *MintetteClient) SendPeriodFinished(ctx context.Context, periodID int) (*block.PeriodResult, error) {
	params := map[string]int{"period_id": periodID}
	var out block.PeriodResult
	if err := call(ctx, c.caller, "mintette.periodFinished", params, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}
