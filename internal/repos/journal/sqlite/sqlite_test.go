package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/slotledger/internal/repos/journal"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('rounds','wallet_movements')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["rounds"])
	assert.True(t, found["wallet_movements"])
}

func TestSQLiteInsertRoundsAndTotals(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := t.Context()

	batch := uuid.New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	err := j.InsertRounds(ctx, []journal.RoundRecord{
		{ID: uuid.New(), BatchID: batch, Mode: "sim", Wager: 50, Winnings: 250, Grid: "[a a a]", BalanceAfter: 1200, PlayedAt: now},
		{ID: uuid.New(), BatchID: batch, Mode: "sim", Wager: 50, Winnings: 0, Grid: "[a b a]", BalanceAfter: 1150, PlayedAt: now},
	})
	require.NoError(t, err)

	got, err := j.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, journal.Totals{Rounds: 2, TotalWagered: 100, TotalPaidOut: 250}, got)
}

func TestSQLiteInsertRoundsRollsBackOnDuplicate(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := t.Context()

	dup := journal.RoundRecord{ID: uuid.New(), BatchID: uuid.New(), Mode: "play", Wager: 10, Grid: "[a b c]", BalanceAfter: 90, PlayedAt: time.Now()}
	require.NoError(t, j.InsertRounds(ctx, []journal.RoundRecord{dup}))

	fresh := dup
	fresh.ID = uuid.New()

	err := j.InsertRounds(ctx, []journal.RoundRecord{fresh, dup})
	require.ErrorIs(t, err, journal.ErrDuplicateRecord)

	got, err := j.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Rounds)
}

func TestSQLiteInsertMovement(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	ctx := t.Context()

	m := journal.MovementRecord{ID: uuid.New(), Kind: "withdraw", Amount: 25, Balance: 975, At: time.Now()}
	require.NoError(t, j.InsertMovement(ctx, m))
	require.ErrorIs(t, j.InsertMovement(ctx, m), journal.ErrDuplicateRecord)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		kind   string
		amount float64
	)
	require.NoError(t, db.QueryRow(`SELECT kind, amount FROM wallet_movements WHERE id = ?`, m.ID.String()).Scan(&kind, &amount))
	assert.Equal(t, "withdraw", kind)
	assert.InDelta(t, 25.0, amount, 1e-9)
}

func TestSQLiteInsertRoundsCanceledContext(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := j.InsertRounds(ctx, []journal.RoundRecord{
		{ID: uuid.New(), BatchID: uuid.New(), Mode: "play", Wager: 1, Grid: "[a]", PlayedAt: time.Now()},
	})
	require.Error(t, err)

	got, err := j.Totals(t.Context())
	require.NoError(t, err)
	assert.Zero(t, got.Rounds)
}
