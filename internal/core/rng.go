package core

import (
	"math/rand"
	"time"
)

// Stream is a deterministic source of uniform draws owned by a single
// session. Two streams built from the same seed produce identical
// sequences regardless of host, timing or goroutine scheduling, which is
// what makes seed-based replay possible.
type Stream struct {
	seed uint32
	src  *rand.Rand
}

// NewStream creates a stream from the given seed.
func NewStream(seed uint32) *Stream {
	return &Stream{
		seed: seed,
		src:  rand.New(rand.NewSource(int64(seed))),
	}
}

// Seed returns the seed this stream was constructed from.
func (s *Stream) Seed() uint32 {
	return s.seed
}

// Float64 returns the next uniform draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.src.Float64()
}

// ResolveSeed returns the explicit seed if nonzero, otherwise derives one
// from the wall clock (microseconds truncated to 32 bits). Zero is the CLI
// convention for "pick one for me"; a resolved seed is always reported back
// to the caller so the run stays reproducible.
func ResolveSeed(explicit uint32) uint32 {
	if explicit != 0 {
		return explicit
	}
	return uint32(time.Now().UnixMicro())
}

// SessionSeed derives the seed for the n-th session (1-indexed) of a batch
// run. A whole batch is reproducible from its base seed alone.
func SessionSeed(base uint32, n int) uint32 {
	return base + uint32(n)
}
