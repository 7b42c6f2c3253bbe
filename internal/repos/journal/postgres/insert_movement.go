package journal

import (
	"context"
	"fmt"

	"github.com/fastprodman/slotledger/internal/repos/journal"
)

func (r *journalRepo) InsertMovement(ctx context.Context, m journal.MovementRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallet_movements (id, kind, amount, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.Kind, m.Amount, m.Balance, m.At)
	if err != nil {
		if isUniqueViolation(err) {
			return journal.ErrDuplicateRecord
		}

		return fmt.Errorf("insert movement: %w", err)
	}

	return nil
}
