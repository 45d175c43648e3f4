package block

import (
	"time"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/node"
	"github.com/mintex-network/mintex-daemon/internal/domain/strategy"
	"github.com/mintex-network/mintex-daemon/internal/domain/transaction"
)

// HBlock is a higher-level block emitted by the bank at the end of a period.
// Alongside the transactions it carries the spending strategies of the
// addresses registered during the period.
type HBlock struct {
	Hash         string                                  `json:"hash"`
	PrevHash     string                                  `json:"prev_hash"`
	Transactions []transaction.Transaction               `json:"transactions"`
	Addresses    map[address.Address]strategy.TxStrategy `json:"addresses,omitempty"`
	PeriodID     int                                     `json:"period_id"`
}

// LBlock is a lower-level block produced by a single mintette within a
// period.
type LBlock struct {
	Hash         string                    `json:"hash"`
	PrevHash     string                    `json:"prev_hash"`
	Heads        []string                  `json:"heads"`
	Transactions []transaction.Transaction `json:"transactions"`
}

// ActionKind tags entries of a mintette's action log.
type ActionKind string

const (
	ActionQuery  ActionKind = "query"
	ActionCommit ActionKind = "commit"
	ActionClose  ActionKind = "close"
)

// ActionLogEntry is one recorded mintette action.
type ActionLogEntry struct {
	Kind  ActionKind `json:"kind"`
	Value string     `json:"value"`
	Time  time.Time  `json:"time"`
}

// PeriodResult is what a mintette hands back to the bank when a period is
// closed: the blocks it minted and its action log.
type PeriodResult struct {
	PeriodID int              `json:"period_id"`
	Blocks   []LBlock         `json:"blocks"`
	Log      []ActionLogEntry `json:"log"`
}

// NewPeriodData is the bank's announcement of a fresh period to a mintette.
type NewPeriodData struct {
	PeriodID  int             `json:"period_id"`
	Mintettes []node.Mintette `json:"mintettes"`
	HBlock    HBlock          `json:"hblock"`
	DPK       string          `json:"dpk,omitempty"`
}
