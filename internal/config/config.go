package config

import "time"

// PostgresConfig configures the database/sql pool used by the Postgres journal.
type PostgresConfig struct {
	DSN             string        `env:"PG_DSN" default:""`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" default:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" default:"30m"`
}

type JournalDriver string

const (
	JournalNone     JournalDriver = "none"
	JournalPostgres JournalDriver = "postgres"
	JournalSQLite   JournalDriver = "sqlite"
)

// JournalConfig selects where rounds and wallet movements are recorded.
type JournalConfig struct {
	Driver     JournalDriver `env:"JOURNAL_DRIVER" default:"none"`
	SQLitePath string        `env:"SQLITE_PATH" default:"slotledger.db"`
	Postgres   PostgresConfig
}
