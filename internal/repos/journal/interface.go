package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateRecord = errors.New("duplicate journal record")

// RoundRecord is one settled round as stored in the journal.
type RoundRecord struct {
	ID           uuid.UUID
	BatchID      uuid.UUID
	Mode         string
	Wager        float64
	Winnings     float64
	Grid         string
	BalanceAfter float64
	PlayedAt     time.Time
}

// MovementRecord is one deposit or withdrawal as stored in the journal.
type MovementRecord struct {
	ID      uuid.UUID
	Kind    string
	Amount  float64
	Balance float64
	At      time.Time
}

// Totals summarises the recorded rounds.
type Totals struct {
	Rounds       int64
	TotalWagered float64
	TotalPaidOut float64
}

// Journal is a write-mostly audit trail. Nothing in it is ever loaded back
// into the ledger.
type Journal interface {
	InsertRounds(ctx context.Context, rounds []RoundRecord) error
	InsertMovement(ctx context.Context, m MovementRecord) error
	Totals(ctx context.Context) (Totals, error)
	Close() error
}

// Nop discards everything.
type Nop struct{}

var _ Journal = Nop{}

func (Nop) InsertRounds(context.Context, []RoundRecord) error { return nil }
func (Nop) InsertMovement(context.Context, MovementRecord) error { return nil }
func (Nop) Totals(context.Context) (Totals, error) { return Totals{}, nil }
func (Nop) Close() error { return nil }
