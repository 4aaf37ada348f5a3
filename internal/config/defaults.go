package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultGameYAML []byte

// DefaultGame returns the default game configuration. The values mirror the
// embedded defaults/flappy.yaml and act as the last-resort fallback.
func DefaultGame() Game {
	return Game{
		Screen: Screen{
			Width:  1280,
			Height: 720,
			FPS:    30,
		},
		Physics: Physics{
			Gravity:      1.0,
			FlapImpulse:  -9.0,
			MaxFallSpeed: 10.0,
			MaxRiseSpeed: 9.0,
		},
		Bird: Bird{
			X:      256,
			Width:  34,
			Height: 24,
		},
		Pipes: Pipes{
			Width:            104,
			GapHeight:        120,
			ScrollSpeed:      5.0,
			SpawnMargin:      10,
			SpacingFactor:    2.5,
			MinGapY:          100,
			MaxGapY:          500,
			MaxGapTransition: 150,
		},
	}
}
