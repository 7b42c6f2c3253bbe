package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fastprodman/slotledger/internal/ledger"
	"github.com/fastprodman/slotledger/internal/services/game"
	"github.com/fastprodman/slotledger/internal/services/wallet"
	"github.com/fastprodman/slotledger/internal/slot"
)

const maxBodyBytes = 1 << 20

// GameService is the gameplay surface the handlers need.
type GameService interface {
	Play(ctx context.Context, bet float64) (game.PlayResult, error)
	Simulate(ctx context.Context, req game.SimRequest) (game.SimResult, error)
	Stats() game.Stats
	RTP() float64
}

// WalletService is the deposit/withdraw surface the handlers need.
type WalletService interface {
	Deposit(ctx context.Context, amount float64) (ledger.Receipt, error)
	Withdraw(ctx context.Context, amount float64) (ledger.Receipt, error)
	Balance() float64
}

// HandlerProvider exposes the game and wallet services as HTTP handlers.
type HandlerProvider struct {
	game   GameService
	wallet WalletService
}

func NewHandler(g GameService, w WalletService) *HandlerProvider {
	return &HandlerProvider{game: g, wallet: w}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		// headers are gone at this point, log and move on
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody reads a single JSON object into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(dst)
}

func includeMatrices(r *http.Request) bool {
	return r.URL.Query().Get("includeMatrices") == "true"
}

type errorResponse struct {
	Error string `json:"error"`
}

type playRequest struct {
	Bet *float64 `json:"bet"`
}

type playResponse struct {
	Matrix       slot.Grid `json:"matrix"`
	Winnings     float64   `json:"winnings"`
	VisualMatrix string    `json:"visualMatrix,omitempty"`
}

type simRequest struct {
	Count *float64 `json:"count"`
	Bet   *float64 `json:"bet"`
}

type simRound struct {
	Winnings     float64 `json:"winnings"`
	VisualMatrix string  `json:"visualMatrix"`
}

type simResponse struct {
	TotalWinnings float64    `json:"totalWinnings"`
	NetResult     float64    `json:"netResult"`
	Rounds        []simRound `json:"rounds,omitempty"`
}

type rtpResponse struct {
	RTP float64 `json:"rtp"`
}

type statsResponse struct {
	Balance      float64 `json:"balance"`
	TotalWagered float64 `json:"totalWagered"`
	TotalPaidOut float64 `json:"totalPaidOut"`
	RTP          float64 `json:"rtp"`
}

type amountRequest struct {
	Amount *float64 `json:"amount"`
}

type balanceResponse struct {
	Message string  `json:"message"`
	Balance float64 `json:"balance"`
}

// --- Game handlers ---

// PlayHandler handles POST /play
func (h *HandlerProvider) PlayHandler(w http.ResponseWriter, r *http.Request) {
	var req playRequest

	err := decodeBody(w, r, &req)
	if err != nil || req.Bet == nil {
		writeError(w, http.StatusBadRequest, game.ErrInvalidBet.Error())
		return
	}

	res, err := h.game.Play(r.Context(), *req.Bet)
	if err != nil {
		writeGameError(w, err)
		return
	}

	resp := playResponse{Matrix: res.Grid, Winnings: res.Winnings}
	if includeMatrices(r) {
		resp.VisualMatrix = slot.Render(res.Grid)
	}

	writeJSON(w, http.StatusOK, resp)
}

// SimHandler handles POST /sim
func (h *HandlerProvider) SimHandler(w http.ResponseWriter, r *http.Request) {
	var req simRequest

	err := decodeBody(w, r, &req)
	if err != nil || req.Count == nil || req.Bet == nil {
		writeError(w, http.StatusBadRequest, game.ErrInvalidInput.Error())
		return
	}

	res, err := h.game.Simulate(r.Context(), game.SimRequest{Count: *req.Count, Bet: *req.Bet})
	if err != nil {
		writeGameError(w, err)
		return
	}

	resp := simResponse{TotalWinnings: res.TotalWinnings, NetResult: res.NetResult}
	if includeMatrices(r) {
		resp.Rounds = make([]simRound, 0, len(res.Rounds))
		for _, rd := range res.Rounds {
			resp.Rounds = append(resp.Rounds, simRound{
				Winnings:     rd.Winnings,
				VisualMatrix: slot.Render(rd.Grid),
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// RTPHandler handles GET /rtp
func (h *HandlerProvider) RTPHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rtpResponse{RTP: h.game.RTP()})
}

// StatsHandler handles GET /stats
func (h *HandlerProvider) StatsHandler(w http.ResponseWriter, _ *http.Request) {
	st := h.game.Stats()

	writeJSON(w, http.StatusOK, statsResponse{
		Balance:      st.Balance,
		TotalWagered: st.TotalWagered,
		TotalPaidOut: st.TotalPaidOut,
		RTP:          st.RTP,
	})
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidBet):
		writeError(w, http.StatusBadRequest, game.ErrInvalidBet.Error())
	case errors.Is(err, game.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, game.ErrInvalidInput.Error())
	case errors.Is(err, game.ErrInsufficientBalance):
		writeError(w, http.StatusBadRequest, game.ErrInsufficientBalance.Error())
	default:
		slog.Error("game request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- Wallet handlers ---

// DepositHandler handles POST /wallet/deposit
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.wallet.Deposit)
}

// WithdrawHandler handles POST /wallet/withdraw
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.wallet.Withdraw)
}

// BalanceHandler handles GET /wallet/balance
func (h *HandlerProvider) BalanceHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, balanceResponse{
		Message: wallet.MessageBalanceRetrieved,
		Balance: h.wallet.Balance(),
	})
}

func (h *HandlerProvider) move(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, float64) (ledger.Receipt, error),
) {
	var req amountRequest

	err := decodeBody(w, r, &req)
	if err != nil || req.Amount == nil {
		writeError(w, http.StatusBadRequest, wallet.ErrInvalidAmount.Error())
		return
	}

	rcpt, err := op(r.Context(), *req.Amount)
	if err != nil {
		var lerr *ledger.Error

		switch {
		case errors.Is(err, wallet.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, wallet.ErrInvalidAmount.Error())
		case errors.As(err, &lerr):
			writeError(w, http.StatusBadRequest, lerr.Message)
		default:
			slog.Error("wallet request failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}

		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{Message: rcpt.Message, Balance: rcpt.Balance})
}
