package comms

import (
	"context"
	"math/rand"

	"github.com/btcsuite/btcd/btcec/v2"
	"go.uber.org/ratelimit"

	"github.com/mintex-network/mintex-daemon/internal/domain/block"
	"github.com/mintex-network/mintex-daemon/internal/domain/node"
	"github.com/mintex-network/mintex-daemon/internal/domain/transaction"
	"github.com/mintex-network/mintex-daemon/pkg/rpc"
	"github.com/mintex-network/mintex-daemon/pkg/signed"
)

// errNoExplorers is the message surfaced when a query is attempted against
// an empty explorer roster.
const errNoExplorers = "There are no active explorers"

// explorerRequestsPerSecond paces queries against a single explorer.
const explorerRequestsPerSecond = 10

// ExplorerClient calls a single explorer node.
type ExplorerClient struct {
	caller  rpc.Caller
	limiter ratelimit.Limiter
}

// NewExplorerClient builds a rate-limited client around a caller addressing
// one explorer.
func NewExplorerClient(caller rpc.Caller) *ExplorerClient {
	return &ExplorerClient{
		caller:  caller,
		limiter: ratelimit.New(explorerRequestsPerSecond),
	}
}

// DialExplorer builds a client for a roster entry.
func DialExplorer(dial Dialer, e node.Explorer) *ExplorerClient {
	return NewExplorerClient(dial(e.Endpoint()))
}

// AnnounceNewBlock delivers a freshly minted higher-level block. The request
// is wrapped in an envelope signed with the bank's key; the reply is the
// period id the explorer now reports.
func (c *ExplorerClient) AnnounceNewBlock(ctx context.Context, bankPrv *btcec.PrivateKey, periodID int, hb block.HBlock) (int, error) {
	env, err := signed.Sign(bankPrv, struct {
		PeriodID int          `json:"period_id"`
		HBlock   block.HBlock `json:"hblock"`
	}{PeriodID: periodID, HBlock: hb})
	if err != nil {
		return 0, logged("explorer.announceNewBlock", protocolError(err.Error()))
	}
	c.limiter.Take()
	var out int
	if err := call(ctx, c.caller, "explorer.announceNewBlock", env, &out, callOpts{either: true}); err != nil {
		return 0, err
	}
	return out, nil
}

// GetTransactionByID fetches a committed transaction. An unknown id is an
// application-level failure reported by the explorer.
func (c *ExplorerClient) GetTransactionByID(ctx context.Context, id transaction.ID) (*transaction.Transaction, error) {
	c.limiter.Take()
	params := struct {
		ID transaction.ID `json:"id"`
	}{ID: id}
	var out transaction.Transaction
	if err := call(ctx, c.caller, "explorer.getTransaction", params, &out, callOpts{either: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// AskExplorer runs fn against one explorer chosen uniformly at random from
// the roster, for load distribution. An empty roster fails immediately with
// a method error and no network call.
// TODO: retry a failed call against a different explorer from the roster.
func AskExplorer(dial Dialer, explorers []node.Explorer, fn func(*ExplorerClient) error) error {
	if len(explorers) == 0 {
		return logged("explorer.ask", methodError(errNoExplorers))
	}
	picked := explorers[rand.Intn(len(explorers))]
	return fn(DialExplorer(dial, picked))
}

// GetTransactionFromAny asks a random explorer for a transaction by id.
func GetTransactionFromAny(ctx context.Context, dial Dialer, explorers []node.Explorer, id transaction.ID) (*transaction.Transaction, error) {
	var out *transaction.Transaction
	err := AskExplorer(dial, explorers, func(c *ExplorerClient) error {
		tx, err := c.GetTransactionByID(ctx, id)
		if err != nil {
			return err
		}
		out = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
