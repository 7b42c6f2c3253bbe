// Package journal stores the journal in a single SQLite file.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/fastprodman/slotledger/internal/infra/pgutils"
	"github.com/fastprodman/slotledger/internal/repos/journal"
)

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
	id TEXT PRIMARY KEY,
	batch_id TEXT NOT NULL,
	mode TEXT NOT NULL,
	wager REAL NOT NULL,
	winnings REAL NOT NULL,
	grid TEXT NOT NULL,
	balance_after REAL NOT NULL,
	played_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rounds_batch_id ON rounds(batch_id);

CREATE TABLE IF NOT EXISTS wallet_movements (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	amount REAL NOT NULL,
	balance REAL NOT NULL,
	created_at DATETIME NOT NULL
);
`

var _ journal.Journal = (*SQLite)(nil)

type SQLite struct {
	db *sql.DB
}

// Open creates (or reuses) the journal file at path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// one writer at a time; SQLite serialises writes anyway
	db.SetMaxOpenConns(1)

	_, err = db.Exec(schema)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) InsertRounds(ctx context.Context, rounds []journal.RoundRecord) error {
	if len(rounds) == 0 {
		return nil
	}

	err := pgutils.WithTx(ctx, j.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO rounds
			(id, batch_id, mode, wager, winnings, grid, balance_after, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		defer stmt.Close()

		for _, r := range rounds {
			_, err = stmt.ExecContext(ctx,
				r.ID.String(), r.BatchID.String(), r.Mode, r.Wager, r.Winnings, r.Grid, r.BalanceAfter, r.PlayedAt,
			)
			if err != nil {
				if isConstraint(err) {
					return fmt.Errorf("round %s: %w", r.ID, journal.ErrDuplicateRecord)
				}

				return fmt.Errorf("insert round %s: %w", r.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("insert rounds: %w", err)
	}

	return nil
}

func (j *SQLite) InsertMovement(ctx context.Context, m journal.MovementRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO wallet_movements
		(id, kind, amount, balance, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID.String(), m.Kind, m.Amount, m.Balance, m.At,
	)
	if err != nil {
		if isConstraint(err) {
			return journal.ErrDuplicateRecord
		}

		return fmt.Errorf("insert movement: %w", err)
	}

	return nil
}

func (j *SQLite) Totals(ctx context.Context) (journal.Totals, error) {
	var t journal.Totals

	err := j.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(wager), 0), COALESCE(SUM(winnings), 0)
		FROM rounds`).Scan(&t.Rounds, &t.TotalWagered, &t.TotalPaidOut)
	if err != nil {
		return journal.Totals{}, fmt.Errorf("totals: %w", err)
	}

	return t, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func isConstraint(err error) bool {
	var sqErr sqlite3.Error
	return errors.As(err, &sqErr) && sqErr.Code == sqlite3.ErrConstraint
}
