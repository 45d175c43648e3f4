package comms

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/sirupsen/logrus"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/block"
	"github.com/mintex-network/mintex-daemon/internal/domain/node"
	"github.com/mintex-network/mintex-daemon/internal/domain/strategy"
	"github.com/mintex-network/mintex-daemon/pkg/rpc"
	"github.com/mintex-network/mintex-daemon/pkg/signed"
)

const roleBank = "bank"

// BankClient calls the bank's query surface. Every response is a signed
// envelope verified against the bank's authority key before the payload is
// released.
type BankClient struct {
	caller rpc.Caller
	key    *btcec.PublicKey
}

// NewBankClient builds a client around a caller addressing the bank and the
// bank's public key from node configuration.
func NewBankClient(caller rpc.Caller, bankKey *btcec.PublicKey) *BankClient {
	return &BankClient{caller: caller, key: bankKey}
}

func (c *BankClient) signedOpts() callOpts {
	return callOpts{role: roleBank, verifyKey: c.key}
}

// GetAddresses fetches the registered addresses and their spending
// strategies.
func (c *BankClient) GetAddresses(ctx context.Context) (map[address.Address]strategy.TxStrategy, error) {
	out := make(map[address.Address]strategy.TxStrategy)
	if err := call(ctx, c.caller, "bank.getAddresses", nil, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMintettes fetches the current mintette roster snapshot.
func (c *BankClient) GetMintettes(ctx context.Context) ([]node.Mintette, error) {
	var out []node.Mintette
	if err := call(ctx, c.caller, "bank.getMintettes", nil, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExplorers fetches the current explorer roster snapshot.
func (c *BankClient) GetExplorers(ctx context.Context) ([]node.Explorer, error) {
	var out []node.Explorer
	if err := call(ctx, c.caller, "bank.getExplorers", nil, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBlockchainHeight fetches the current period height.
func (c *BankClient) GetBlockchainHeight(ctx context.Context) (int, error) {
	var out int
	if err := call(ctx, c.caller, "bank.getBlockchainHeight", nil, &out, c.signedOpts()); err != nil {
		return 0, err
	}
	return out, nil
}

// GetStatisticsID fetches the bank's statistics counter.
func (c *BankClient) GetStatisticsID(ctx context.Context) (int, error) {
	var out int
	if err := call(ctx, c.caller, "bank.getStatisticsId", nil, &out, c.signedOpts()); err != nil {
		return 0, err
	}
	return out, nil
}

// GetHBlock fetches the higher-level block at the given height. A missing
// height is an application-level failure reported by the bank.
func (c *BankClient) GetHBlock(ctx context.Context, height int) (*block.HBlock, error) {
	var out block.HBlock
	opts := c.signedOpts()
	opts.either = true
	params := map[string]int{"height": height}
	if err := call(ctx, c.caller, "bank.getHBlock", params, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBlocks fetches the higher-level blocks in [from, to]. An out-of-range
// request yields a short or empty result, not an error.
func (c *BankClient) GetBlocks(ctx context.Context, from, to int) ([]block.HBlock, error) {
	var out []block.HBlock
	params := map[string]int{"from": from, "to": to}
	if err := call(ctx, c.caller, "bank.getBlocks", params, &out, c.signedOpts()); err != nil {
		return nil, err
	}
	return out, nil
}

// AddMintetteAdhoc registers a mintette for the next period. The request is
// authenticated with the bank's own key; only bank tooling holds it.
func (c *BankClient) AddMintetteAdhoc(ctx context.Context, bankPrv *btcec.PrivateKey, m node.Mintette, mintetteKey string) error {
	env, err := signed.Sign(bankPrv, struct {
		Mintette node.Mintette `json:"mintette"`
		Key      string        `json:"key"`
	}{Mintette: m, Key: mintetteKey})
	if err != nil {
		return logged("bank.addMintetteAdhoc", protocolError(err.Error()))
	}
	return call(ctx, c.caller, "bank.addMintetteAdhoc", env, nil, callOpts{role: roleBank, either: true})
}

// AddExplorerAdhoc registers an explorer for the next period, authenticated
// with the bank's key.
func (c *BankClient) AddExplorerAdhoc(ctx context.Context, bankPrv *btcec.PrivateKey, e node.Explorer, fromHeight int) error {
	env, err := signed.Sign(bankPrv, struct {
		Explorer   node.Explorer `json:"explorer"`
		FromHeight int           `json:"from_height"`
	}{Explorer: e, FromHeight: fromHeight})
	if err != nil {
		return logged("bank.addExplorerAdhoc", protocolError(err.Error()))
	}
	return call(ctx, c.caller, "bank.addExplorerAdhoc", env, nil, callOpts{role: roleBank, either: true})
}

// GetMintetteLogs fetches the action log slice [from, to) of the mintette at
// the given roster index. An out-of-bounds index fails locally with a method
// error; no network call is attempted.
func GetMintetteLogs(ctx context.Context, dial Dialer, mintettes []node.Mintette, idx, from, to int) ([]block.ActionLogEntry, error) {
	m, err := mintetteAt(mintettes, idx)
	if err != nil {
		return nil, err
	}
	var out []block.ActionLogEntry
	params := map[string]int{"from": from, "to": to}
	if err := call(ctx, dial(m.Endpoint()), "dump.getLogs", params, &out, callOpts{either: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMintetteUtxo fetches the current utxo view of the mintette at the given
// roster index. Same local bounds check as GetMintetteLogs.
func GetMintetteUtxo(ctx context.Context, dial Dialer, mintettes []node.Mintette, idx int) (Utxo, error) {
	m, err := mintetteAt(mintettes, idx)
	if err != nil {
		return nil, err
	}
	out := make(Utxo)
	if err := call(ctx, dial(m.Endpoint()), "dump.getUtxo", nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func mintetteAt(mintettes []node.Mintette, idx int) (node.Mintette, error) {
	if idx < 0 || idx >= len(mintettes) {
		cerr := methodError(fmt.Sprintf("mintette with index %d doesn't exist", idx))
		log.WithField("index", idx).WithField("known", len(mintettes)).
			Warn(cerr.Error())
		return node.Mintette{}, cerr
	}
	return mintettes[idx], nil
}
