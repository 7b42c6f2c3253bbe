// Package metrics exposes Prometheus counters for gameplay, wallet movements
// and HTTP traffic.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fastprodman/slotledger/internal/services/game"
	"github.com/fastprodman/slotledger/internal/services/wallet"
)

const namespace = "slotledger"

var (
	_ game.Observer   = (*Metrics)(nil)
	_ wallet.Observer = (*Metrics)(nil)
)

type Metrics struct {
	gatherer prometheus.Gatherer

	Rounds         *prometheus.CounterVec
	Wagered        prometheus.Counter
	PaidOut        prometheus.Counter
	Balance        prometheus.GaugeFunc
	Movements      *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated. balance is read on every scrape, so the gauge
// never lags behind the ledger.
func New(reg *prometheus.Registry, balance func() float64) *Metrics {
	m := &Metrics{
		gatherer: reg,
		Rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Settled rounds by mode.",
		}, []string{"mode"}),
		Wagered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wagered_total",
			Help:      "Sum of all wagers.",
		}),
		PaidOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paid_out_total",
			Help:      "Sum of all winnings.",
		}),
		Balance: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance",
			Help:      "Current ledger balance.",
		}, balance),
		Movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_movements_total",
			Help:      "Deposits and withdrawals.",
		}, []string{"kind"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.Rounds,
		m.Wagered,
		m.PaidOut,
		m.Balance,
		m.Movements,
		m.HTTPRequests,
		m.RequestSeconds,
	)

	return m
}

func (m *Metrics) RoundsSettled(_ context.Context, batch game.Batch) {
	if len(batch.Rounds) == 0 {
		return
	}

	var wagered, paid float64
	for _, r := range batch.Rounds {
		wagered += r.Wager
		paid += r.Winnings
	}

	m.Rounds.WithLabelValues(string(batch.Mode)).Add(float64(len(batch.Rounds)))
	m.Wagered.Add(wagered)
	m.PaidOut.Add(paid)
}

func (m *Metrics) BalanceMoved(_ context.Context, mv wallet.Movement) {
	m.Movements.WithLabelValues(string(mv.Kind)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware counts requests by chi route pattern, so path parameters do not
// blow up label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestSeconds.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
