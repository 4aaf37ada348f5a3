package sim

import (
	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
)

// Snapshot is a value-type copy of the world's physical state: bird and
// pipe geometry only. The decision engine steps snapshots to explore
// hypothetical actions without touching the live world. Snapshots carry no
// RNG, so stepping one never spawns new pipes; over a one or two tick
// horizon that is exactly the information the live world would have too.
type Snapshot struct {
	Bird  Bird
	Pipes []Pipe
}

// Clone returns an independent deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	pipes := make([]Pipe, len(s.Pipes))
	copy(pipes, s.Pipes)
	return Snapshot{Bird: s.Bird, Pipes: pipes}
}

// Step advances the snapshot by one tick under the given action, using the
// same physics as the live world. The fixed timestep is shared with the
// session, so a simulated branch and the real branch stay bit-identical.
func (s *Snapshot) Step(action core.Action, cfg *config.Game) {
	stepBird(&s.Bird, action, cfg)
	scrollPipes(s.Pipes, cfg.Pipes.ScrollSpeed)
}
