package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/slotledger/internal/infra/pgutils"
	"github.com/fastprodman/slotledger/internal/repos/journal"
)

// InsertRounds stores a batch atomically: either every round lands or none.
func (r *journalRepo) InsertRounds(ctx context.Context, rounds []journal.RoundRecord) error {
	if len(rounds) == 0 {
		return nil
	}

	err := pgutils.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO rounds (id, batch_id, mode, wager, winnings, grid, balance_after, played_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		defer stmt.Close()

		for _, rr := range rounds {
			_, err = stmt.ExecContext(ctx,
				rr.ID, rr.BatchID, rr.Mode, rr.Wager, rr.Winnings, rr.Grid, rr.BalanceAfter, rr.PlayedAt,
			)
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("round %s: %w", rr.ID, journal.ErrDuplicateRecord)
				}

				return fmt.Errorf("insert round %s: %w", rr.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("insert rounds: %w", err)
	}

	return nil
}
