package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fastprodman/slotledger/internal/api"
	"github.com/fastprodman/slotledger/internal/feed"
	"github.com/fastprodman/slotledger/internal/infra/logging"
	"github.com/fastprodman/slotledger/internal/infra/metrics"
	"github.com/fastprodman/slotledger/internal/ledger"
	"github.com/fastprodman/slotledger/internal/services/audit"
	"github.com/fastprodman/slotledger/internal/services/game"
	"github.com/fastprodman/slotledger/internal/services/wallet"
	"github.com/fastprodman/slotledger/internal/slot"
	"github.com/fastprodman/slotledger/pkg/envconf"
	"github.com/fastprodman/slotledger/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	err := loadDotenv()
	if err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}

	cfg := new(apiConfig)

	err = envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	queue := shutdownqueue.New()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := queue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Core ---
	gameCfg := slot.DefaultConfig()
	if cfg.GameConfigPath != "" {
		gameCfg, err = slot.LoadConfig(cfg.GameConfigPath)
		if err != nil {
			return fmt.Errorf("load game config: %w", err)
		}
	}

	engine, err := slot.New(gameCfg, slot.DefaultSource())
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	led, err := ledger.New(cfg.InitialBalance)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}

	// --- Infra ---
	jrnl, err := openJournal(ctx, cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	queue.Add("journal", func(context.Context) error {
		return jrnl.Close()
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mtr := metrics.New(reg, led.Balance)
	hub := feed.NewHub(cfg.AllowedOrigins)
	recorder := audit.NewRecorder(jrnl, slog.Default())

	// --- Services ---
	gameSrv := game.New(led, engine, cfg.MaxSimRounds, mtr, hub, recorder)
	walletSrv := wallet.New(led, mtr, recorder)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, api.NewRouter(api.Deps{
		Game:           gameSrv,
		Wallet:         walletSrv,
		Metrics:        mtr,
		Feed:           hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         slog.Default(),
	}))

	// registered after the journal so it drains first
	queue.Add("http server", func(c context.Context) error {
		slog.Info("shutting down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// hijacked websocket connections are not tracked by srv.Shutdown
	queue.Add("round feed", hub.Close)

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started",
		"port", cfg.Port,
		"balance", cfg.InitialBalance,
		"journal", cfg.Journal.Driver,
		"symbols", len(gameCfg.Symbols),
	)

	select {
	case <-ctx.Done():
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}

// loadDotenv reads APP_DOTENV (default .env) into the environment. A missing
// file is fine; variables already set win.
func loadDotenv() error {
	path := os.Getenv("APP_DOTENV")
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
