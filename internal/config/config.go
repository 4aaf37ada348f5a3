// Package config provides YAML-based game configuration loading and
// validation. The simulation treats these values as read-only inputs.
package config

import (
	"errors"
	"fmt"
)

// Game contains all configuration for a session: world dimensions, bird
// physics and obstacle generation. Every speed is expressed per tick; the
// fixed timestep is implied by Screen.FPS.
type Game struct {
	Screen  Screen  `yaml:"screen"`
	Physics Physics `yaml:"physics"`
	Bird    Bird    `yaml:"bird"`
	Pipes   Pipes   `yaml:"pipes"`
}

// Screen defines the virtual world dimensions and the tick rate.
// World coordinates are virtual pixels; the TUI scales them to cells.
type Screen struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`
}

// Physics defines bird movement parameters.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`        // Downward acceleration per tick
	FlapImpulse  float64 `yaml:"flap_impulse"`   // Velocity set on flap (negative = up)
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal descent velocity
	MaxRiseSpeed float64 `yaml:"max_rise_speed"` // Terminal ascent velocity (positive number)
}

// Bird defines the bird's fixed horizontal position and hitbox.
type Bird struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Pipes defines obstacle geometry and the constrained gap generator.
type Pipes struct {
	Width         float64 `yaml:"width"`
	GapHeight     float64 `yaml:"gap_height"`
	ScrollSpeed   float64 `yaml:"scroll_speed"`   // Horizontal speed per tick
	SpawnMargin   float64 `yaml:"spawn_margin"`   // Spawn X offset past the right edge
	SpacingFactor float64 `yaml:"spacing_factor"` // Spawn when trailing space exceeds width*factor

	// Gap center constraints. Consecutive gap centers never differ by more
	// than MaxGapTransition, which keeps every sequence flyable.
	MinGapY          float64 `yaml:"min_gap_y"`
	MaxGapY          float64 `yaml:"max_gap_y"`
	MaxGapTransition float64 `yaml:"max_gap_transition"`
}

// Validate checks the configuration for values that would make a session
// meaningless. Failures here are programming or configuration errors, so
// session construction refuses to proceed rather than producing an
// unflyable or non-deterministic world.
func (g *Game) Validate() error {
	var errs []error

	if g.Screen.Width <= 0 || g.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: screen dimensions must be positive, got %gx%g", g.Screen.Width, g.Screen.Height))
	}
	if g.Screen.FPS <= 0 {
		errs = append(errs, fmt.Errorf("config: fps must be positive, got %d", g.Screen.FPS))
	}
	if g.Pipes.MinGapY > g.Pipes.MaxGapY {
		errs = append(errs, fmt.Errorf("config: min_gap_y (%g) exceeds max_gap_y (%g)", g.Pipes.MinGapY, g.Pipes.MaxGapY))
	}
	if g.Pipes.MaxGapTransition < 0 {
		errs = append(errs, fmt.Errorf("config: max_gap_transition must not be negative, got %g", g.Pipes.MaxGapTransition))
	}
	if g.Pipes.GapHeight <= g.Bird.Height {
		errs = append(errs, fmt.Errorf("config: gap_height (%g) must exceed bird height (%g)", g.Pipes.GapHeight, g.Bird.Height))
	}
	if g.Pipes.ScrollSpeed <= 0 {
		errs = append(errs, fmt.Errorf("config: scroll_speed must be positive, got %g", g.Pipes.ScrollSpeed))
	}

	return errors.Join(errs...)
}

// TickDuration returns the wall-clock length of one tick in seconds.
func (g *Game) TickDuration() float64 {
	return 1.0 / float64(g.Screen.FPS)
}
