package respond

import (
	"math/rand"
	"sync"
)

// Selector picks one of n phrase variants. Implementations must be safe for
// concurrent use and deterministic given their construction parameters, so
// tests can assert exact response text.
type Selector interface {
	Pick(n int) int
}

// RoundRobinSelector rotates through variants in order. This is the default:
// fully deterministic with no seed to manage.
type RoundRobinSelector struct {
	mu   sync.Mutex
	next int
}

// NewRoundRobinSelector returns a selector starting at variant 0.
func NewRoundRobinSelector() *RoundRobinSelector {
	return &RoundRobinSelector{}
}

func (s *RoundRobinSelector) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.next % n
	s.next++
	return i
}

// SeededSelector draws variants from a seeded pseudo-random source. Same
// seed, same sequence.
type SeededSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSelector returns a selector over a deterministic random sequence.
func NewSeededSelector(seed int64) *SeededSelector {
	return &SeededSelector{rng: rand.New(rand.NewSource(seed))}
}

func (s *SeededSelector) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Intn(n)
}
