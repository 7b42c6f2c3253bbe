package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/slotledger/internal/ledger"
	"github.com/fastprodman/slotledger/internal/slot"
)

// Observer is notified after a batch has been committed to the ledger.
// It runs outside the ledger lock and must not fail the request.
type Observer interface {
	RoundsSettled(ctx context.Context, batch Batch)
}

type Service struct {
	ledger       *ledger.Ledger
	engine       *slot.Engine
	maxSimRounds int
	observers    []Observer
	now          func() time.Time
}

// DefaultMaxSimRounds bounds a batch when no explicit limit is configured.
const DefaultMaxSimRounds = 100_000

// New wires the game flows to a ledger and an engine. maxSimRounds <= 0
// selects DefaultMaxSimRounds.
func New(l *ledger.Ledger, eng *slot.Engine, maxSimRounds int, observers ...Observer) *Service {
	if maxSimRounds <= 0 {
		maxSimRounds = DefaultMaxSimRounds
	}

	return &Service{
		ledger:       l,
		engine:       eng,
		maxSimRounds: maxSimRounds,
		observers:    observers,
		now:          time.Now,
	}
}

// Play runs a single round.
func (s *Service) Play(ctx context.Context, bet float64) (PlayResult, error) {
	if !positive(bet) {
		return PlayResult{}, ErrInvalidBet
	}

	batch := Batch{ID: uuid.New(), Mode: ModePlay}

	err := s.ledger.WithTx(func(tx *ledger.Tx) error {
		if tx.Balance() < bet {
			return ErrInsufficientBalance
		}

		r, err := s.playRound(tx, bet)
		if err != nil {
			return err
		}

		batch.Rounds = append(batch.Rounds, r)

		return nil
	})
	if err != nil {
		return PlayResult{}, fmt.Errorf("play: %w", err)
	}

	s.notify(ctx, batch)

	r := batch.Rounds[0]

	return PlayResult{Grid: r.Grid, Winnings: r.Winnings}, nil
}

// Simulate runs req.Count sequential rounds at req.Bet each. Solvency is
// checked once against the total wager; the whole batch holds the ledger
// lock so nothing can shrink the balance between the check and the last
// round.
func (s *Service) Simulate(ctx context.Context, req SimRequest) (SimResult, error) {
	if !positive(req.Count) || !positive(req.Bet) || req.Count != math.Trunc(req.Count) {
		return SimResult{}, ErrInvalidInput
	}

	if req.Count > float64(s.maxSimRounds) {
		return SimResult{}, ErrInvalidInput
	}

	count := int(req.Count)
	totalWager := req.Count * req.Bet

	batch := Batch{ID: uuid.New(), Mode: ModeSim, Rounds: make([]Round, 0, count)}
	res := SimResult{TotalWager: totalWager}

	err := s.ledger.WithTx(func(tx *ledger.Tx) error {
		if tx.Balance() < totalWager {
			return ErrInsufficientBalance
		}

		for i := range count {
			r, err := s.playRound(tx, req.Bet)
			if err != nil {
				return fmt.Errorf("round %d: %w", i+1, err)
			}

			res.TotalWinnings += r.Winnings
			batch.Rounds = append(batch.Rounds, r)
		}

		return nil
	})
	if err != nil {
		return SimResult{}, fmt.Errorf("simulate: %w", err)
	}

	s.notify(ctx, batch)

	res.NetResult = res.TotalWinnings - totalWager
	res.Rounds = batch.Rounds

	return res, nil
}

// Stats reports balance, lifetime totals and RTP.
func (s *Service) Stats() Stats {
	snap := s.ledger.Snapshot()

	return Stats{
		Balance:      snap.Balance,
		TotalWagered: snap.Aggregates.TotalWagered,
		TotalPaidOut: snap.Aggregates.TotalPaidOut,
		RTP:          snap.Aggregates.RTP(),
	}
}

// RTP returns the lifetime return-to-player percentage.
func (s *Service) RTP() float64 {
	return s.ledger.Aggregates().RTP()
}

func (s *Service) playRound(tx *ledger.Tx, bet float64) (Round, error) {
	err := tx.ConsumeForWager(bet)
	if err != nil {
		return Round{}, fmt.Errorf("consume wager: %w", err)
	}

	grid := s.engine.Generate()
	winnings := s.engine.Score(grid, bet)

	if winnings > 0 {
		err = tx.CreditPayout(winnings)
		if err != nil {
			return Round{}, fmt.Errorf("credit payout: %w", err)
		}
	}

	return Round{
		ID:           uuid.New(),
		Wager:        bet,
		Winnings:     winnings,
		Grid:         grid,
		BalanceAfter: tx.Balance(),
		PlayedAt:     s.now(),
	}, nil
}

func (s *Service) notify(ctx context.Context, batch Batch) {
	for _, o := range s.observers {
		o.RoundsSettled(ctx, batch)
	}
}

func positive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
