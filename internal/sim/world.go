package sim

import (
	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
)

// Bird is the player-controlled agent. X never changes; the world scrolls
// past the bird instead.
type Bird struct {
	X    float64
	Y    float64
	VelY float64
}

// Pipe is one obstacle pair: a solid column above and below a gap. The gap
// center comes from the GapSequencer; the gap height is constant per
// session.
type Pipe struct {
	X          float64
	GapCenterY float64
	Passed     bool
}

// TopRect returns the collision rectangle of the column above the gap.
func (p Pipe) TopRect(cfg *config.Game) core.RectF {
	top := p.GapCenterY - cfg.Pipes.GapHeight/2
	return core.NewRectF(p.X, 0, cfg.Pipes.Width, top)
}

// BottomRect returns the collision rectangle of the column below the gap.
func (p Pipe) BottomRect(cfg *config.Game) core.RectF {
	bottom := p.GapCenterY + cfg.Pipes.GapHeight/2
	return core.NewRectF(p.X, bottom, cfg.Pipes.Width, cfg.Screen.Height-bottom)
}

// World is the live physical state of one session: the bird plus the
// active pipes, ordered left to right. It owns the gap sequencer and is
// the only place pipes are spawned, so cloned snapshots stay cheap and
// RNG-free.
type World struct {
	cfg   *config.Game
	bird  Bird
	pipes []Pipe
	seq   *GapSequencer
}

// NewWorld creates a world with the bird centered vertically and one pipe
// already spawned past the right edge.
func NewWorld(cfg *config.Game, seq *GapSequencer) *World {
	w := &World{
		cfg: cfg,
		bird: Bird{
			X: cfg.Bird.X,
			Y: (cfg.Screen.Height - cfg.Bird.Height) / 2,
		},
		pipes: make([]Pipe, 0, 8),
		seq:   seq,
	}
	w.spawnPipe()
	return w
}

// Bird returns the current bird state.
func (w *World) Bird() Bird {
	return w.bird
}

// Pipes returns the active pipes, ordered by ascending X.
func (w *World) Pipes() []Pipe {
	return w.pipes
}

// Step advances the world by one fixed tick: bird physics, pipe scroll,
// off-screen removal and spawning. Collision and scoring are deliberately
// not part of the step; the session controller applies them afterwards.
func (w *World) Step(action core.Action) {
	stepBird(&w.bird, action, w.cfg)
	scrollPipes(w.pipes, w.cfg.Pipes.ScrollSpeed)

	// Drop pipes that scrolled fully off the left edge.
	alive := w.pipes[:0]
	for _, p := range w.pipes {
		if p.X+w.cfg.Pipes.Width > 0 {
			alive = append(alive, p)
		}
	}
	w.pipes = alive

	if w.canSpawn() {
		w.spawnPipe()
	}
}

// MarkPassed flips Passed on every pipe the bird has fully cleared and
// returns how many flipped this tick. Each pipe is counted exactly once.
func (w *World) MarkPassed() int {
	passed := 0
	for i := range w.pipes {
		if !w.pipes[i].Passed && w.pipes[i].X+w.cfg.Pipes.Width < w.bird.X {
			w.pipes[i].Passed = true
			passed++
		}
	}
	return passed
}

// Snapshot returns an independent value copy of the bird and pipe list.
// No RNG or sequencer state is included, which is what keeps lookahead
// simulation cheap and side-effect free.
func (w *World) Snapshot() Snapshot {
	pipes := make([]Pipe, len(w.pipes))
	copy(pipes, w.pipes)
	return Snapshot{Bird: w.bird, Pipes: pipes}
}

// canSpawn reports whether the trailing space behind the last pipe is wide
// enough for the next one.
func (w *World) canSpawn() bool {
	if len(w.pipes) == 0 {
		return true
	}
	last := w.pipes[len(w.pipes)-1]
	return w.cfg.Screen.Width-(last.X+w.cfg.Pipes.Width) > w.cfg.Pipes.Width*w.cfg.Pipes.SpacingFactor
}

// spawnPipe appends a new pipe past the right screen edge with the next
// gap center from the sequencer.
func (w *World) spawnPipe() {
	w.pipes = append(w.pipes, Pipe{
		X:          w.cfg.Screen.Width + w.cfg.Pipes.SpawnMargin,
		GapCenterY: w.seq.Next(),
	})
}

// stepBird applies one tick of bird physics. A flap sets the velocity to
// the flap impulse; otherwise gravity accumulates. Velocity is capped in
// both directions and the position is kept within the screen band so a
// dead bird cannot integrate off to infinity (hitting either bound is a
// collision, detected by the predicate, not hidden by the clamp).
func stepBird(b *Bird, action core.Action, cfg *config.Game) {
	if action == core.Flap {
		b.VelY = cfg.Physics.FlapImpulse
	} else {
		b.VelY += cfg.Physics.Gravity
	}
	b.VelY = core.ClampF(b.VelY, -cfg.Physics.MaxRiseSpeed, cfg.Physics.MaxFallSpeed)

	b.Y += b.VelY
	b.Y = core.ClampF(b.Y, 0, cfg.Screen.Height-cfg.Bird.Height)
}

// scrollPipes moves every pipe left by the scroll speed.
func scrollPipes(pipes []Pipe, speed float64) {
	for i := range pipes {
		pipes[i].X -= speed
	}
}
