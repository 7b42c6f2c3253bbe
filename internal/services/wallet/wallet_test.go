package wallet

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/fastprodman/slotledger/internal/ledger"
)

type recorder struct{ moves []Movement }

func (r *recorder) BalanceMoved(_ context.Context, m Movement) { r.moves = append(r.moves, m) }

func newWallet(t *testing.T, balance float64) (*Service, *recorder) {
	t.Helper()

	l, err := ledger.New(balance)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}

	rec := &recorder{}

	return New(l, rec), rec
}

func TestDepositWithdraw(t *testing.T) {
	t.Parallel()

	svc, rec := newWallet(t, 100)

	rcpt, err := svc.Deposit(t.Context(), 50)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	if rcpt.Message != "Balance updated." || rcpt.Balance != 150 {
		t.Fatalf("deposit receipt: %+v", rcpt)
	}

	rcpt, err = svc.Withdraw(t.Context(), 120)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	if rcpt.Balance != 30 || svc.Balance() != 30 {
		t.Fatalf("withdraw receipt: %+v, balance %v", rcpt, svc.Balance())
	}

	if len(rec.moves) != 2 || rec.moves[0].Kind != KindDeposit || rec.moves[1].Kind != KindWithdraw {
		t.Fatalf("movements: %+v", rec.moves)
	}

	if rec.moves[1].Amount != 120 || rec.moves[1].Balance != 30 {
		t.Fatalf("withdraw movement: %+v", rec.moves[1])
	}
}

func TestWithdraw_Overdraw(t *testing.T) {
	t.Parallel()

	svc, rec := newWallet(t, 100)

	_, err := svc.Withdraw(t.Context(), 150)

	var lerr *ledger.Error
	if !errors.As(err, &lerr) || lerr.Code != ledger.CodeInsufficientFunds {
		t.Fatalf("want insufficient funds ledger error, got %v", err)
	}

	if lerr.Message != "Insufficient funds." {
		t.Fatalf("message: %q", lerr.Message)
	}

	if svc.Balance() != 100 {
		t.Fatalf("balance changed: %v", svc.Balance())
	}

	if len(rec.moves) != 0 {
		t.Fatalf("observer notified on rejection")
	}
}

func TestMove_InvalidAmount(t *testing.T) {
	t.Parallel()

	svc, _ := newWallet(t, 100)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, err := svc.Deposit(t.Context(), amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("deposit(%v): want ErrInvalidAmount, got %v", amount, err)
		}

		if _, err := svc.Withdraw(t.Context(), amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("withdraw(%v): want ErrInvalidAmount, got %v", amount, err)
		}
	}
}
