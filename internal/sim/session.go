package sim

import (
	"context"
	"time"

	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
)

// State is the session lifecycle. Terminated is absorbing.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateTerminated
)

// Status records how a session ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// Record is the persisted outcome of one session, written exactly once at
// termination. Duration is simulated time (ticks over the configured tick
// rate) so it replays bit-identically, unlike wall-clock time.
type Record struct {
	GameID      int
	Seed        uint32
	Score       int
	Duration    float64
	PipesPassed int
	Status      Status
	Timestamp   time.Time
}

// ActionSource supplies the action for each tick. Implemented by the bot
// policies and by Trace for replays; human input bypasses it and calls
// Session.Tick directly.
type ActionSource interface {
	Act(snap Snapshot) core.Action
}

// Trace is a fixed, pre-recorded action sequence used as an action source.
// Replaying a seed with the trace recorded from the original run must
// reproduce the identical session. Past the end of the trace it keeps
// returning NoFlap.
type Trace struct {
	actions []core.Action
	pos     int
}

// NewTrace creates a trace source over a recorded action sequence.
func NewTrace(actions []core.Action) *Trace {
	return &Trace{actions: actions}
}

// Act returns the next recorded action.
func (t *Trace) Act(Snapshot) core.Action {
	if t.pos >= len(t.actions) {
		return core.NoFlap
	}
	a := t.actions[t.pos]
	t.pos++
	return a
}

// TickResult is what the session reports after each tick, enough for a
// rendering harness to draw the frame.
type TickResult struct {
	Bird       Bird
	Pipes      []Pipe
	Score      int
	Tick       int
	Terminated bool
}

// Session drives one playthrough: it owns the RNG stream, the gap
// sequencer and the world, applies one action per tick and terminates on
// the first collision. A session is fully determined by (config, seed) and
// the sequence of actions fed to it.
type Session struct {
	cfg   *config.Game
	seed  uint32
	world *World

	state State
	score int
	ticks int

	record *Record

	recording bool
	trace     []core.Action
}

// NewSession constructs and starts a session: the seed's RNG stream and
// gap sequencer are built and the initial world is spawned. Configuration
// problems fail here, before any tick runs.
func NewSession(cfg *config.Game, seed uint32) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seq, err := NewGapSequencer(core.NewStream(seed), cfg.Pipes)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:   cfg,
		seed:  seed,
		world: NewWorld(cfg, seq),
		state: StateRunning,
	}, nil
}

// Seed returns the seed this session runs under.
func (s *Session) Seed() uint32 {
	return s.seed
}

// Score returns the number of pipes passed so far.
func (s *Session) Score() int {
	return s.score
}

// Ticks returns how many ticks have been applied.
func (s *Session) Ticks() int {
	return s.ticks
}

// State returns the session state.
func (s *Session) State() State {
	return s.state
}

// Snapshot returns a value copy of the current world state, suitable for
// lookahead simulation.
func (s *Session) Snapshot() Snapshot {
	return s.world.Snapshot()
}

// Record returns the session record, or nil while the session is running.
func (s *Session) Record() *Record {
	return s.record
}

// SetRecording enables action recording. The recorded trace replays the
// session exactly when fed back through NewTrace.
func (s *Session) SetRecording(on bool) {
	s.recording = on
}

// TraceActions returns the recorded action sequence.
func (s *Session) TraceActions() []core.Action {
	return s.trace
}

// Tick applies one action and advances the session by one fixed timestep:
// physics, collision check, then scoring. Ticking a terminated session is
// a no-op that reports the final state.
func (s *Session) Tick(action core.Action) TickResult {
	if s.state != StateRunning {
		return s.result()
	}

	if s.recording {
		s.trace = append(s.trace, action)
	}

	s.world.Step(action)
	s.ticks++

	snap := s.world.Snapshot()
	if Colliding(&snap, s.cfg) {
		s.finish(StatusCompleted)
		return s.result()
	}

	s.score += s.world.MarkPassed()
	return s.result()
}

// Abort terminates a running session without a collision, e.g. when the
// host harness is cancelled. The record carries the aborted status.
func (s *Session) Abort() {
	if s.state != StateRunning {
		return
	}
	s.finish(StatusAborted)
}

// Run drives the session to termination with actions from src, checking
// for cancellation between ticks. tickCap bounds runaway sessions (a good
// bot can otherwise fly forever); reaching it counts as completed. A zero
// tickCap means no cap.
func (s *Session) Run(ctx context.Context, src ActionSource, tickCap int) Record {
	for s.state == StateRunning {
		if ctx.Err() != nil {
			s.Abort()
			break
		}
		if tickCap > 0 && s.ticks >= tickCap {
			s.finish(StatusCompleted)
			break
		}
		s.Tick(src.Act(s.world.Snapshot()))
	}
	return *s.record
}

// finish transitions to Terminated and emits the record exactly once.
func (s *Session) finish(status Status) {
	s.state = StateTerminated
	s.record = &Record{
		Seed:        s.seed,
		Score:       s.score,
		Duration:    float64(s.ticks) * s.cfg.TickDuration(),
		PipesPassed: s.score,
		Status:      status,
		Timestamp:   time.Now(),
	}
}

func (s *Session) result() TickResult {
	return TickResult{
		Bird:       s.world.Bird(),
		Pipes:      s.world.Pipes(),
		Score:      s.score,
		Tick:       s.ticks,
		Terminated: s.state == StateTerminated,
	}
}
