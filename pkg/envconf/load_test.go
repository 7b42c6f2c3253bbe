package envconf

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

type nested struct {
	DSN      string        `env:"T_DSN" default:""`
	Lifetime time.Duration `env:"T_LIFETIME" default:"30s"`
}

type sample struct {
	Port     uint16     `env:"T_PORT"`
	Level    slog.Level `env:"T_LEVEL" default:"INFO"`
	Balance  float64    `env:"T_BALANCE" default:"1000"`
	Origins  []string   `env:"T_ORIGINS" default:"*"`
	Verbose  bool       `env:"T_VERBOSE" default:"false"`
	Database nested
	ignored  string //nolint:unused
}

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFrom_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	var cfg sample

	err := LoadFrom(&cfg, lookupFrom(map[string]string{
		"T_PORT":     "8080",
		"T_LEVEL":    "DEBUG",
		"T_ORIGINS":  "http://a.test, http://b.test",
		"T_LIFETIME": "1m",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("port: want 8080, got %d", cfg.Port)
	}

	if cfg.Level != slog.LevelDebug {
		t.Fatalf("level: want DEBUG, got %v", cfg.Level)
	}

	if cfg.Balance != 1000 {
		t.Fatalf("balance default: want 1000, got %v", cfg.Balance)
	}

	if len(cfg.Origins) != 2 || cfg.Origins[0] != "http://a.test" || cfg.Origins[1] != "http://b.test" {
		t.Fatalf("origins: got %#v", cfg.Origins)
	}

	if cfg.Database.Lifetime != time.Minute {
		t.Fatalf("nested duration: want 1m, got %v", cfg.Database.Lifetime)
	}

	if cfg.Database.DSN != "" {
		t.Fatalf("nested empty default: got %q", cfg.Database.DSN)
	}
}

func TestLoadFrom_MissingRequired(t *testing.T) {
	t.Parallel()

	var cfg sample

	err := LoadFrom(&cfg, lookupFrom(map[string]string{}))
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("want ErrMissingRequired, got %v", err)
	}
}

func TestLoadFrom_BadValue(t *testing.T) {
	t.Parallel()

	var cfg sample

	err := LoadFrom(&cfg, lookupFrom(map[string]string{
		"T_PORT":    "8080",
		"T_BALANCE": "lots",
	}))
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFrom_RejectsNonPointer(t *testing.T) {
	t.Parallel()

	err := LoadFrom(sample{}, lookupFrom(nil))
	if err == nil {
		t.Fatalf("expected error for non-pointer destination")
	}
}
