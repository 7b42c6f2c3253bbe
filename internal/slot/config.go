package slot

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a slot machine: the symbol alphabet, grid size and the
// payout multiplier applied per uniform row.
type Config struct {
	Symbols    []string `yaml:"symbols"`
	Rows       int      `yaml:"rows"`
	Columns    int      `yaml:"columns"`
	Multiplier float64  `yaml:"multiplier"`
}

// DefaultConfig is the reference machine: five fruit symbols on a 3x3 grid
// paying five times the wager for every uniform row.
func DefaultConfig() Config {
	return Config{
		Symbols:    []string{"🍒", "🍋", "🍉", "🍇", "⭐"},
		Rows:       3,
		Columns:    3,
		Multiplier: 5,
	}
}

// LoadConfig reads a YAML machine definition. Missing keys fall back to
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read slot config: %w", err)
	}

	cfg := DefaultConfig()

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse slot config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid slot config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the machine can be played.
func (c Config) Validate() error {
	if len(c.Symbols) == 0 {
		return errors.New("symbols must not be empty")
	}

	for i, s := range c.Symbols {
		if s == "" {
			return fmt.Errorf("symbol %d is empty", i)
		}
	}

	if c.Rows < 1 {
		return errors.New("rows must be at least 1")
	}

	if c.Columns < 1 {
		return errors.New("columns must be at least 1")
	}

	if math.IsNaN(c.Multiplier) || math.IsInf(c.Multiplier, 0) || c.Multiplier <= 0 {
		return errors.New("multiplier must be a positive number")
	}

	return nil
}
