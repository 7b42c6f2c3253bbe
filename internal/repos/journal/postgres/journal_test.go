package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/slotledger/internal/infra/pgtestutil"
	"github.com/fastprodman/slotledger/internal/repos/journal"
)

func round(batch uuid.UUID, wager, winnings, balance float64) journal.RoundRecord {
	return journal.RoundRecord{
		ID:           uuid.New(),
		BatchID:      batch,
		Mode:         "sim",
		Wager:        wager,
		Winnings:     winnings,
		Grid:         "[🍒 🍒 🍒][🍋 🍉 🍇][⭐ ⭐ 🍋]",
		BalanceAfter: balance,
		PlayedAt:     time.Now().UTC(),
	}
}

func TestJournal_InsertRoundsAndTotals(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	batch := uuid.New()

	err := repo.InsertRounds(ctx, []journal.RoundRecord{
		round(batch, 100, 500, 1400),
		round(batch, 100, 0, 1300),
		round(batch, 100, 0, 1200),
	})
	if err != nil {
		t.Fatalf("insert rounds: %v", err)
	}

	got, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}

	want := journal.Totals{Rounds: 3, TotalWagered: 300, TotalPaidOut: 500}
	if got != want {
		t.Fatalf("totals: want %+v, got %+v", want, got)
	}
}

func TestJournal_InsertRoundsIsAtomic(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	ctx := t.Context()

	first := round(uuid.New(), 10, 0, 90)

	err := repo.InsertRounds(ctx, []journal.RoundRecord{first})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// second batch repeats an id halfway through: nothing of it may land
	err = repo.InsertRounds(ctx, []journal.RoundRecord{round(uuid.New(), 10, 0, 80), first})
	if !errors.Is(err, journal.ErrDuplicateRecord) {
		t.Fatalf("want ErrDuplicateRecord, got %v", err)
	}

	got, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}

	if got.Rounds != 1 {
		t.Fatalf("partial batch persisted: %+v", got)
	}
}

func TestJournal_InsertMovement(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	ctx := t.Context()

	m := journal.MovementRecord{ID: uuid.New(), Kind: "deposit", Amount: 50, Balance: 1050, At: time.Now().UTC()}

	err := repo.InsertMovement(ctx, m)
	if err != nil {
		t.Fatalf("insert movement: %v", err)
	}

	err = repo.InsertMovement(ctx, m)
	if !errors.Is(err, journal.ErrDuplicateRecord) {
		t.Fatalf("duplicate: want ErrDuplicateRecord, got %v", err)
	}

	var count int

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wallet_movements WHERE kind = 'deposit'`).Scan(&count)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if count != 1 {
		t.Fatalf("want 1 movement, got %d", count)
	}
}
