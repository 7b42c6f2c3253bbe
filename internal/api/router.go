package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps collects what the router serves. Metrics and Feed are optional.
type Deps struct {
	Game           GameService
	Wallet         WalletService
	Metrics        MetricsProvider
	Feed           http.Handler
	AllowedOrigins []string
	Logger         *slog.Logger
}

// MetricsProvider instruments requests and serves the scrape endpoint.
type MetricsProvider interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// NewRouter builds the chi router with every endpoint registered.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	h := NewHandler(d.Game, d.Wallet)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(recoverJSON(log))

	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/play", h.PlayHandler)
	r.Post("/sim", h.SimHandler)
	r.Get("/rtp", h.RTPHandler)
	r.Get("/stats", h.StatsHandler)

	r.Route("/wallet", func(r chi.Router) {
		r.Post("/deposit", h.DepositHandler)
		r.Post("/withdraw", h.WithdrawHandler)
		r.Get("/balance", h.BalanceHandler)
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	if d.Feed != nil {
		r.Method(http.MethodGet, "/ws/rounds", d.Feed)
	}

	return r
}
