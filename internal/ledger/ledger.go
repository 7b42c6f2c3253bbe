// Package ledger holds the single account balance and the lifetime wager and
// payout totals used for return-to-player reporting.
//
// Every mutation runs under the ledger mutex. A rejected operation leaves the
// state exactly as it was.
package ledger

import (
	"math"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
)

// ConfirmationBalanceUpdated tags a successful free-form balance adjustment.
const ConfirmationBalanceUpdated = "Balance updated."

// Receipt confirms a free-form balance adjustment.
type Receipt struct {
	Message string
	Balance float64
}

// Aggregates are the lifetime gameplay totals.
type Aggregates struct {
	TotalWagered float64
	TotalPaidOut float64
}

// RTP returns TotalPaidOut/TotalWagered as a percentage rounded to two
// decimals, or 0 before anything has been wagered or when the ratio does
// not fit a float64.
func (a Aggregates) RTP() float64 {
	if a.TotalWagered <= 0 || !finite(a.TotalWagered) || !finite(a.TotalPaidOut) {
		return 0
	}

	rtp := a.TotalPaidOut / a.TotalWagered * 100
	if !finite(rtp) {
		return 0
	}

	return roundCents(rtp)
}

// roundCents rounds the exact binary value of f to two decimals, ties away
// from zero, so 1.005 (stored as 1.00499...) becomes 1.00.
func roundCents(f float64) float64 {
	// 1074 fractional digits cover every float64 exactly
	exact := new(big.Float).SetFloat64(f).Text('f', 1074)

	return decimal.RequireFromString(exact).Round(2).InexactFloat64()
}

// Snapshot is a consistent view of the balance and the lifetime totals.
type Snapshot struct {
	Balance    float64
	Aggregates Aggregates
}

type state struct {
	balance float64
	wagered float64
	paidOut float64
}

// Ledger is the process' single account. Construct it with New and share
// the pointer.
type Ledger struct {
	mu sync.Mutex
	st state
}

// New returns a ledger holding initialBalance with zeroed totals.
func New(initialBalance float64) (*Ledger, error) {
	if !finite(initialBalance) || initialBalance < 0 {
		return nil, ErrInvalidInitialState
	}

	return &Ledger{st: state{balance: initialBalance}}, nil
}

// Balance returns the current balance.
func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.st.balance
}

// Aggregates returns the lifetime wager and payout totals.
func (l *Ledger) Aggregates() Aggregates {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.st.aggregates()
}

// Adjust applies a signed deposit or withdrawal. It does not touch the
// gameplay totals.
func (l *Ledger) Adjust(delta float64) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.st.adjust(delta)
}

// Snapshot reads the balance and the totals under one lock.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot{Balance: l.st.balance, Aggregates: l.st.aggregates()}
}

// ConsumeForWager removes amount from the balance and adds it to the
// wagered total.
func (l *Ledger) ConsumeForWager(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.st.consume(amount)
}

// CreditPayout adds amount to the balance and to the paid-out total.
func (l *Ledger) CreditPayout(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.st.credit(amount)
}

// WithTx runs fn while holding the ledger lock. If fn returns an error every
// change made through tx is undone.
func (l *Ledger) WithTx(fn func(tx *Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := l.st
	tx := &Tx{st: &l.st}

	err := fn(tx)
	tx.st = nil

	if err != nil {
		l.st = snapshot

		return err
	}

	return nil
}

// Tx exposes the ledger operations inside WithTx. It must not be retained
// after fn returns.
type Tx struct {
	st *state
}

func (tx *Tx) Balance() float64 { return tx.st.balance }

func (tx *Tx) Aggregates() Aggregates { return tx.st.aggregates() }

func (tx *Tx) Adjust(delta float64) (Receipt, error) { return tx.st.adjust(delta) }

func (tx *Tx) ConsumeForWager(amount float64) error { return tx.st.consume(amount) }

func (tx *Tx) CreditPayout(amount float64) error { return tx.st.credit(amount) }

func (s *state) aggregates() Aggregates {
	return Aggregates{TotalWagered: s.wagered, TotalPaidOut: s.paidOut}
}

func (s *state) adjust(delta float64) (Receipt, error) {
	if !finite(delta) {
		return Receipt{}, ErrInvalidAmount
	}

	next := s.balance + delta
	if !finite(next) {
		return Receipt{}, ErrInvalidAmount
	}

	if next < 0 {
		return Receipt{}, ErrInsufficientFunds
	}

	s.balance = next

	return Receipt{Message: ConfirmationBalanceUpdated, Balance: next}, nil
}

func (s *state) consume(amount float64) error {
	if !finite(amount) || amount <= 0 {
		return ErrInvalidWager
	}

	if s.balance < amount {
		return ErrInsufficientFunds
	}

	if !finite(s.wagered + amount) {
		return ErrInvalidWager
	}

	s.balance -= amount
	s.wagered += amount

	return nil
}

func (s *state) credit(amount float64) error {
	if !finite(amount) || amount <= 0 {
		return ErrInvalidPayout
	}

	if !finite(s.balance+amount) || !finite(s.paidOut+amount) {
		return ErrInvalidPayout
	}

	s.balance += amount
	s.paidOut += amount

	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
