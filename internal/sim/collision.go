package sim

import (
	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
)

// Colliding reports whether the bird intersects the top or bottom screen
// boundary or the solid part of any pipe. It is a pure function over the
// snapshot and may be called any number of times per tick; the decision
// engine relies on that.
func Colliding(s *Snapshot, cfg *config.Game) bool {
	b := s.Bird

	// Screen bounds. The world clamps the bird into [0, height-h], so
	// touching either limit means the boundary was hit.
	if b.Y <= 0 {
		return true
	}
	if b.Y+cfg.Bird.Height >= cfg.Screen.Height {
		return true
	}

	birdRect := core.NewRectF(b.X, b.Y, cfg.Bird.Width, cfg.Bird.Height)

	for _, p := range s.Pipes {
		// Only pipes whose x-span brackets the bird can collide.
		if p.X > birdRect.Right() || p.X+cfg.Pipes.Width < b.X {
			continue
		}
		if birdRect.Intersects(p.TopRect(cfg)) || birdRect.Intersects(p.BottomRect(cfg)) {
			return true
		}
	}
	return false
}
