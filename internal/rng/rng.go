// Package rng isolates randomness behind a small interface so bug placement,
// question order and node seeding can be replayed in tests.
package rng

import (
	"math/rand/v2"
	"sync"
	"time"
)

type Source interface {
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a deterministic source; equal seeds give equal sequences.
func New(seed uint64) Source {
	return &seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewFromTime seeds a source from the wall clock.
func NewFromTime() Source {
	return New(uint64(time.Now().UnixNano()))
}

func (s *seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

func (s *seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seeded) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

// Scripted replays fixed values: Intn and Float64 cycle through their own
// lists, and Shuffle leaves the order untouched. Intn results are reduced
// modulo n.
type Scripted struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
	ii, fi int
}

func NewScripted(ints []int, floats []float64) *Scripted {
	return &Scripted{ints: ints, floats: floats}
}

func (s *Scripted) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	if v < 0 {
		v = -v
	}
	return v % n
}

func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *Scripted) Shuffle(int, func(i, j int)) {}
