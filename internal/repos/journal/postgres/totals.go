package journal

import (
	"context"
	"fmt"

	"github.com/fastprodman/slotledger/internal/repos/journal"
)

func (r *journalRepo) Totals(ctx context.Context) (journal.Totals, error) {
	var t journal.Totals

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(wager), 0), COALESCE(SUM(winnings), 0)
		FROM rounds
	`).Scan(&t.Rounds, &t.TotalWagered, &t.TotalPaidOut)
	if err != nil {
		return journal.Totals{}, fmt.Errorf("totals: %w", err)
	}

	return t, nil
}
