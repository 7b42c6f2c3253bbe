package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/slotledger/internal/ledger"
)

type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
)

// MessageBalanceRetrieved confirms a balance read.
const MessageBalanceRetrieved = "Balance retrieved."

var ErrInvalidAmount = errors.New("Invalid amount.") //nolint:stylecheck // wire message

// Movement is a committed deposit or withdrawal.
type Movement struct {
	ID      uuid.UUID
	Kind    Kind
	Amount  float64
	Balance float64
	At      time.Time
}

// Observer is notified after a movement has been applied.
type Observer interface {
	BalanceMoved(ctx context.Context, m Movement)
}

// Service moves money in and out of the ledger outside of gameplay, so these
// movements never count towards RTP.
type Service struct {
	ledger    *ledger.Ledger
	observers []Observer
	now       func() time.Time
}

func New(l *ledger.Ledger, observers ...Observer) *Service {
	return &Service{ledger: l, observers: observers, now: time.Now}
}

// Deposit adds amount, which must be a positive number.
func (s *Service) Deposit(ctx context.Context, amount float64) (ledger.Receipt, error) {
	return s.move(ctx, KindDeposit, amount)
}

// Withdraw removes amount, which must be a positive number no larger than
// the balance.
func (s *Service) Withdraw(ctx context.Context, amount float64) (ledger.Receipt, error) {
	return s.move(ctx, KindWithdraw, amount)
}

// Balance returns the current balance.
func (s *Service) Balance() float64 {
	return s.ledger.Balance()
}

func (s *Service) move(ctx context.Context, kind Kind, amount float64) (ledger.Receipt, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ledger.Receipt{}, ErrInvalidAmount
	}

	delta := amount
	if kind == KindWithdraw {
		delta = -amount
	}

	rcpt, err := s.ledger.Adjust(delta)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("%s: %w", kind, err)
	}

	m := Movement{
		ID:      uuid.New(),
		Kind:    kind,
		Amount:  amount,
		Balance: rcpt.Balance,
		At:      s.now(),
	}

	for _, o := range s.observers {
		o.BalanceMoved(ctx, m)
	}

	return rcpt, nil
}
