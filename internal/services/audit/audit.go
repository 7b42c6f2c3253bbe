// Package audit copies settled rounds and wallet movements into a journal.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/fastprodman/slotledger/internal/repos/journal"
	"github.com/fastprodman/slotledger/internal/services/game"
	"github.com/fastprodman/slotledger/internal/services/wallet"
	"github.com/fastprodman/slotledger/internal/slot"
)

const writeTimeout = 5 * time.Second

var (
	_ game.Observer   = (*Recorder)(nil)
	_ wallet.Observer = (*Recorder)(nil)
)

// Recorder writes to the journal. Write failures are logged and swallowed:
// the ledger has already committed and the journal is never read back.
type Recorder struct {
	journal journal.Journal
	log     *slog.Logger
}

func NewRecorder(j journal.Journal, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}

	return &Recorder{journal: j, log: log}
}

func (r *Recorder) RoundsSettled(ctx context.Context, batch game.Batch) {
	if len(batch.Rounds) == 0 {
		return
	}

	records := make([]journal.RoundRecord, 0, len(batch.Rounds))
	for _, rd := range batch.Rounds {
		records = append(records, journal.RoundRecord{
			ID:           rd.ID,
			BatchID:      batch.ID,
			Mode:         string(batch.Mode),
			Wager:        rd.Wager,
			Winnings:     rd.Winnings,
			Grid:         slot.Render(rd.Grid),
			BalanceAfter: rd.BalanceAfter,
			PlayedAt:     rd.PlayedAt,
		})
	}

	wctx, cancel := detached(ctx)
	defer cancel()

	err := r.journal.InsertRounds(wctx, records)
	if err != nil {
		r.log.Error("journal rounds",
			"batch_id", batch.ID,
			"mode", batch.Mode,
			"rounds", len(records),
			"error", err,
		)
	}
}

func (r *Recorder) BalanceMoved(ctx context.Context, m wallet.Movement) {
	wctx, cancel := detached(ctx)
	defer cancel()

	err := r.journal.InsertMovement(wctx, journal.MovementRecord{
		ID:      m.ID,
		Kind:    string(m.Kind),
		Amount:  m.Amount,
		Balance: m.Balance,
		At:      m.At,
	})
	if err != nil {
		r.log.Error("journal movement", "movement_id", m.ID, "kind", m.Kind, "error", err)
	}
}

// the request may already be gone by the time the journal is written
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
}
