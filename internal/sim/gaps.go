// Package sim implements the deterministic game core: constrained obstacle
// generation, the world model with its fixed-timestep physics, the pure
// collision predicate and the session state machine. Everything in this
// package is driven by an explicit per-session RNG stream, so a session is
// fully reproducible from its seed.
package sim

import (
	"fmt"

	"github.com/MorganGautherot/flappybird-godmod/internal/config"
)

// UniformSource produces uniform draws in [0, 1). Satisfied by
// *core.Stream; tests substitute fixed sources to pin exact gap values.
type UniformSource interface {
	Float64() float64
}

// GapSequencer generates the vertical center of each successive pipe gap.
// Consecutive centers never differ by more than the configured transition
// limit, which rules out unreachable gap sequences.
type GapSequencer struct {
	src     UniformSource
	minY    float64
	maxY    float64
	maxStep float64
	last    float64
	started bool
}

// NewGapSequencer creates a sequencer over the given draw source.
// Degenerate gap constraints are a configuration error and are rejected
// here rather than surfacing as an invalid draw range mid-session.
func NewGapSequencer(src UniformSource, pipes config.Pipes) (*GapSequencer, error) {
	if pipes.MinGapY > pipes.MaxGapY {
		return nil, fmt.Errorf("sim: min_gap_y (%g) exceeds max_gap_y (%g)", pipes.MinGapY, pipes.MaxGapY)
	}
	if pipes.MaxGapTransition < 0 {
		return nil, fmt.Errorf("sim: max_gap_transition must not be negative, got %g", pipes.MaxGapTransition)
	}
	return &GapSequencer{
		src:     src,
		minY:    pipes.MinGapY,
		maxY:    pipes.MaxGapY,
		maxStep: pipes.MaxGapTransition,
	}, nil
}

// Next returns the next gap center. The first call always returns the exact
// midpoint of the allowed band; later calls draw uniformly from the band
// around the previous center, clamped to the global bounds.
func (g *GapSequencer) Next() float64 {
	if !g.started {
		g.started = true
		g.last = (g.minY + g.maxY) / 2
		return g.last
	}

	lo := g.last - g.maxStep
	if lo < g.minY {
		lo = g.minY
	}
	hi := g.last + g.maxStep
	if hi > g.maxY {
		hi = g.maxY
	}
	if lo > hi {
		// Unreachable with validated config; a silent bad range would
		// corrupt every later draw, so stop hard.
		panic(fmt.Sprintf("sim: degenerate gap range [%g, %g]", lo, hi))
	}

	g.last = lo + g.src.Float64()*(hi-lo)
	return g.last
}
