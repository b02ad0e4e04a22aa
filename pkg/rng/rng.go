// Package rng provides the random source abstraction used for reply
// selection, embedding values, and latency jitter. Production code uses the
// system source; tests and reproducible serving use a seeded one.
package rng

import (
	"math/rand"
	"sync"
)

// Source yields uniform random values. Implementations must be safe for use
// from a single goroutine at minimum; System is safe for concurrent use.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// System returns a Source backed by the package-level math/rand generator,
// which is entropy-seeded and safe for concurrent use.
func System() Source {
	return systemSource{}
}

type systemSource struct{}

func (systemSource) Float64() float64 { return rand.Float64() }
func (systemSource) Intn(n int) int   { return rand.Intn(n) }

// Seeded returns a reproducible Source. A mutex guards the underlying
// generator so a seeded server remains safe under concurrent requests.
func Seeded(seed int64) Source {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// FromSeed picks the system source when seed is zero, a seeded source
// otherwise.
func FromSeed(seed int64) Source {
	if seed == 0 {
		return System()
	}
	return Seeded(seed)
}
