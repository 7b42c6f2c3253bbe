// Package feed broadcasts settled rounds to websocket subscribers.
package feed

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/fastprodman/slotledger/internal/services/game"
	"github.com/fastprodman/slotledger/internal/slot"
)

const (
	clientBuffer = 16
	writeTimeout = 5 * time.Second
)

var _ game.Observer = (*Hub)(nil)

type RoundView struct {
	ID           uuid.UUID `json:"id"`
	Wager        float64   `json:"wager"`
	Winnings     float64   `json:"winnings"`
	VisualMatrix string    `json:"visualMatrix"`
}

// Message is what subscribers receive for every settled batch.
type Message struct {
	BatchID uuid.UUID   `json:"batchId"`
	Mode    game.Mode   `json:"mode"`
	Rounds  []RoundView `json:"rounds"`
	Balance float64     `json:"balance"`
}

type client struct {
	send chan Message
}

// Hub fans batches out to connected clients. A client that cannot keep up
// misses messages instead of slowing down gameplay.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	done    chan struct{}

	acceptOpts *websocket.AcceptOptions
}

// NewHub returns a hub. originPatterns is passed to the websocket handshake;
// empty means same-origin only.
func NewHub(originPatterns []string) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
		acceptOpts: &websocket.AcceptOptions{OriginPatterns: originPatterns},
	}
}

func (h *Hub) RoundsSettled(_ context.Context, batch game.Batch) {
	msg := Message{
		BatchID: batch.ID,
		Mode:    batch.Mode,
		Rounds:  make([]RoundView, 0, len(batch.Rounds)),
		Balance: batch.Balance(),
	}

	for _, r := range batch.Rounds {
		msg.Rounds = append(msg.Rounds, RoundView{
			ID:           r.ID,
			Wager:        r.Wager,
			Winnings:     r.Winnings,
			VisualMatrix: slot.Render(r.Grid),
		})
	}

	h.broadcast(msg)
}

// Subscribers reports the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// ServeHTTP upgrades the request and streams messages until the client goes
// away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// the server's read/write timeouts would otherwise carry over to the
	// hijacked connection
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, h.acceptOpts)
	if err != nil {
		slog.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	c := &client{send: make(chan Message, clientBuffer)}
	if !h.register(c) {
		_ = conn.Close(websocket.StatusGoingAway, "shutting down")
		return
	}
	defer h.unregister(c)

	// subscribers never talk back; CloseRead handles control frames and
	// cancels ctx when the peer disconnects
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			_ = conn.Close(websocket.StatusGoingAway, "shutting down")
			return
		case msg := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = wsjson.Write(wctx, conn, msg)
			cancel()

			if err != nil {
				slog.Debug("websocket write", "error", err)
				return
			}
		}
	}
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.closed {
		h.closed = true
		close(h.done)
	}

	return nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	h.clients[c] = struct{}{}

	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c)
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slog.Debug("feed client lagging, dropping message", "batch_id", msg.BatchID)
		}
	}
}
