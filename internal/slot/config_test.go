package slot

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "machine.yaml")

	err := os.WriteFile(path, []byte("symbols: [A, B]\nrows: 2\nmultiplier: 10\n"), 0o600)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.Symbols) != 2 || cfg.Rows != 2 || cfg.Multiplier != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	// columns not set in the file keeps the reference value
	if cfg.Columns != 3 {
		t.Fatalf("columns: want 3, got %d", cfg.Columns)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "machine.yaml")

	err := os.WriteFile(path, []byte("rows: 0\n"), 0o600)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err = LoadConfig(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "reference", mutate: func(c *Config) {}},
		{name: "empty_symbol", mutate: func(c *Config) { c.Symbols = []string{"A", ""} }, wantErr: true},
		{name: "zero_columns", mutate: func(c *Config) { c.Columns = 0 }, wantErr: true},
		{name: "negative_multiplier", mutate: func(c *Config) { c.Multiplier = -1 }, wantErr: true},
		{name: "nan_multiplier", mutate: func(c *Config) { c.Multiplier = math.NaN() }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := base
			c.Symbols = append([]string(nil), base.Symbols...)
			tt.mutate(&c)

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
