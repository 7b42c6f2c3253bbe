package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/slotledger/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" default:"3000"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	InitialBalance float64  `env:"WALLET_INITIAL_BALANCE" default:"1000"`
	MaxSimRounds   int      `env:"SIM_MAX_ROUNDS" default:"100000"`
	GameConfigPath string   `env:"GAME_CONFIG_PATH" default:""`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`

	Journal config.JournalConfig
}
