package slot

import (
	"math/rand/v2"
	"sync"
)

// Source produces uniformly distributed integers in [0, n).
// IntN panics when n <= 0.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the runtime-seeded math/rand/v2 generator.
// It is safe for concurrent use.
func DefaultSource() Source { return globalSource{} }

type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a reproducible PCG stream, safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.r.IntN(n)
}
