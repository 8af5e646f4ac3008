// Package rng provides the seeded random stream every generator owns.
package rng

import (
	"math/rand"
	"time"
)

// Stream is a deterministic pseudo-random stream. The same seed always yields the same sequence.
// A Stream is not safe for concurrent use.
type Stream struct {
	seed int64
	r    *rand.Rand
}

// New creates a stream from seed.
func New(seed int64) *Stream {
	return &Stream{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

// TimeSeed returns a seed derived from the current time, for callers that ask for -1.
func TimeSeed() int64 {
	return time.Now().UnixNano() & 0x7fffffff
}

// Seed returns the seed the stream was created or last reset with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Reset rewinds the stream to the start of seed's sequence.
func (s *Stream) Reset(seed int64) {
	s.seed = seed
	s.r = rand.New(rand.NewSource(seed))
}

// FRand returns a float in [0, 1).
func (s *Stream) FRand() float32 {
	return s.r.Float32()
}

// Chance reports true with probability p.
func (s *Stream) Chance(p float32) bool {
	return s.FRand() < p
}

// RandRange returns an integer in [lo, hi]. If hi <= lo it returns lo.
func (s *Stream) RandRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// Intn returns an integer in [0, n). n <= 0 yields 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

// WeightedIndex picks an index with probability proportional to its weight.
// Non-positive weights are never picked unless every weight is non-positive,
// in which case the pick is uniform. Returns -1 for an empty slice.
func (s *Stream) WeightedIndex(weights []float32) int {
	if len(weights) == 0 {
		return -1
	}

	var total float32
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.Intn(len(weights))
	}

	roll := s.FRand() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
		last = i
	}
	// Float rounding can leave roll just past the final bucket.
	return last
}
