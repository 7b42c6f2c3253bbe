package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/slotledger/internal/slot"
)

type Mode string

const (
	ModePlay Mode = "play"
	ModeSim  Mode = "sim"
)

var (
	ErrInvalidBet          = errors.New("Invalid bet amount.")   //nolint:stylecheck // wire message
	ErrInvalidInput        = errors.New("Invalid input.")        //nolint:stylecheck // wire message
	ErrInsufficientBalance = errors.New("Insufficient balance.") //nolint:stylecheck // wire message
)

// Round is one settled wager -> grid -> score -> payout cycle.
type Round struct {
	ID           uuid.UUID
	Wager        float64
	Winnings     float64
	Grid         slot.Grid
	BalanceAfter float64
	PlayedAt     time.Time
}

// Batch groups the rounds settled by a single request.
type Batch struct {
	ID     uuid.UUID
	Mode   Mode
	Rounds []Round
}

// Balance after the last round of the batch.
func (b Batch) Balance() float64 {
	if len(b.Rounds) == 0 {
		return 0
	}

	return b.Rounds[len(b.Rounds)-1].BalanceAfter
}

type PlayResult struct {
	Grid     slot.Grid
	Winnings float64
}

type SimRequest struct {
	Count float64
	Bet   float64
}

type SimResult struct {
	TotalWager    float64
	TotalWinnings float64
	NetResult     float64
	Rounds        []Round
}

type Stats struct {
	Balance      float64
	TotalWagered float64
	TotalPaidOut float64
	RTP          float64
}
