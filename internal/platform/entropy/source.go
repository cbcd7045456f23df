// Package entropy provides the engine's deterministic random source.
//
// Every stochastic decision in the simulation draws from a single Source so
// that a full season replays identically from the same seed. The internal
// state is a single 64-bit word that round-trips through snapshots.
package entropy

import "math"

// Source is a splitmix64 generator with exportable state.
// It is not safe for concurrent use; the engine serializes access.
type Source struct {
	state uint64
}

// New creates a Source from a seed.
func New(seed uint64) *Source {
	return &Source{state: seed}
}

// Restore rebuilds a Source from a previously captured state word.
func Restore(state uint64) *Source {
	return &Source{state: state}
}

// State returns the current internal state for snapshotting.
func (s *Source) State() uint64 {
	return s.state
}

// Uint64 advances the generator and returns the next value.
func (s *Source) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / float64(1<<53)
}

// Range returns a uniform value in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*s.Float64()
}

// IntN returns a uniform int in [0, n). n must be > 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Uint64() % uint64(n))
}

// IntRange returns a uniform int in [lo, hi] inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool {
	return s.Uint64()&1 == 1
}

// Shuffle permutes n elements via the provided swap function.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		swap(i, j)
	}
}

// Sample returns k distinct indices drawn from [0, n) in draw order.
// When k >= n it returns all n indices shuffled.
func (s *Source) Sample(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	s.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	if k > n {
		k = n
	}
	return idx[:k]
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
