package transaction

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/pkg/crypto"
)

var (
	// ErrNoInputs ...
	ErrNoInputs = errors.New(
		"transaction must spend at least one input",
	)
	// ErrNoOutputs ...
	ErrNoOutputs = errors.New(
		"transaction must produce at least one output",
	)
	// ErrNonPositiveAmount ...
	ErrNonPositiveAmount = errors.New(
		"coin amount must be greater than zero",
	)
)

// Coin is an amount of colored currency. Color zero is the base currency.
type Coin struct {
	Color  int32           `json:"color"`
	Amount decimal.Decimal `json:"amount"`
}

// NewCoin returns a base-color coin of the given amount.
func NewCoin(color int32, amount decimal.Decimal) Coin {
	return Coin{Color: color, Amount: amount}
}

func (c Coin) Validate() error {
	if !c.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}

// Add returns the sum of two coins of the same color.
func (c Coin) Add(other Coin) (Coin, error) {
	if c.Color != other.Color {
		return Coin{}, fmt.Errorf("cannot add coins of color %d and %d", c.Color, other.Color)
	}
	return Coin{Color: c.Color, Amount: c.Amount.Add(other.Amount)}, nil
}

func (c Coin) String() string {
	return fmt.Sprintf("%s{%d}", c.Amount.String(), c.Color)
}

// ID is a transaction identifier, the double-SHA256 digest of the
// transaction's canonical serialization.
type ID [32]byte

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	buf, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("invalid transaction id: %w", err)
	}
	if len(buf) != len(id) {
		return fmt.Errorf("invalid transaction id length %d", len(buf))
	}
	copy(id[:], buf)
	return nil
}

// AddrID points at a spendable transaction output.
type AddrID struct {
	TxID  ID     `json:"txid"`
	Index uint32 `json:"index"`
	Value Coin   `json:"value"`
}

// Key returns the canonical map-key form of the addrid, used to key batch
// check results.
func (a AddrID) Key() string {
	return fmt.Sprintf("%s:%d", a.TxID, a.Index)
}

// Output is a coin assigned to an address.
type Output struct {
	Address address.Address `json:"address"`
	Value   Coin            `json:"value"`
}

// Transaction moves coins from spent outputs to new outputs. It is immutable
// once constructed; its identity is a deterministic hash of its content.
type Transaction struct {
	Inputs  []AddrID `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// New builds and validates a transaction.
func New(inputs []AddrID, outputs []Output) (*Transaction, error) {
	tx := &Transaction{Inputs: inputs, Outputs: outputs}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

func (t *Transaction) Validate() error {
	if len(t.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(t.Outputs) == 0 {
		return ErrNoOutputs
	}
	for _, in := range t.Inputs {
		if err := in.Value.Validate(); err != nil {
			return fmt.Errorf("input %s: %w", in.Key(), err)
		}
	}
	for i, out := range t.Outputs {
		if err := out.Value.Validate(); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	return nil
}

// ID returns the transaction identifier.
func (t *Transaction) ID() (ID, error) {
	buf, err := crypto.CanonicalBytes(t)
	if err != nil {
		return ID{}, err
	}
	return ID(crypto.Hash(buf)), nil
}
