// Package slot implements the stateless slot machine: grid generation,
// rendering and scoring.
package slot

import (
	"fmt"
	"strings"
)

// Grid is a rows x columns arrangement of symbols.
type Grid [][]string

// Engine generates and scores grids for one machine configuration.
// It holds no mutable state besides its Source.
type Engine struct {
	cfg Config
	src Source
}

// New validates cfg and returns an engine drawing from src.
// A nil src uses DefaultSource.
func New(cfg Config, src Source) (*Engine, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	if src == nil {
		src = DefaultSource()
	}

	symbols := make([]string, len(cfg.Symbols))
	copy(symbols, cfg.Symbols)
	cfg.Symbols = symbols

	return &Engine{cfg: cfg, src: src}, nil
}

// Config returns the machine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Generate fills a fresh grid, each cell chosen independently and uniformly
// from the symbol alphabet.
func (e *Engine) Generate() Grid {
	grid := make(Grid, e.cfg.Rows)
	for r := range grid {
		row := make([]string, e.cfg.Columns)
		for c := range row {
			row[c] = e.cfg.Symbols[e.src.IntN(len(e.cfg.Symbols))]
		}

		grid[r] = row
	}

	return grid
}

// Score pays wager*multiplier for every row whose cells all hold the same
// symbol. Rows are independent; there are no column or diagonal lines.
func (e *Engine) Score(grid Grid, wager float64) float64 {
	return float64(UniformRows(grid)) * wager * e.cfg.Multiplier
}

// UniformRows counts rows made of a single repeated symbol.
func UniformRows(grid Grid) int {
	n := 0

	for _, row := range grid {
		if len(row) == 0 {
			continue
		}

		uniform := true
		for _, s := range row[1:] {
			if s != row[0] {
				uniform = false
				break
			}
		}

		if uniform {
			n++
		}
	}

	return n
}

// Render formats a grid as bracketed rows with space separated symbols:
// [a b c][d e f][g h i].
func Render(grid Grid) string {
	var b strings.Builder

	for _, row := range grid {
		b.WriteByte('[')
		b.WriteString(strings.Join(row, " "))
		b.WriteByte(']')
	}

	return b.String()
}

func (g Grid) String() string {
	return Render(g)
}
