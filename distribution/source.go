package distribution

import (
	"math/rand/v2"
	"sync"
)

// Source produces uniformly distributed values on [0, 1).
// A *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// GlobalSource draws from the process wide math/rand/v2 generator.
// It is randomly seeded and safe for concurrent use.
var GlobalSource Source = globalSource{}

// NewSource returns a PCG source seeded with seed. Two sources created with the
// same seed produce the same sequence. The returned source is not safe for
// concurrent use; see NewLockedSource.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource wraps src so it can be shared between goroutines.
func NewLockedSource(src Source) Source {
	return &lockedSource{src: src}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	v := s.src.Float64()
	s.mu.Unlock()
	return v
}
