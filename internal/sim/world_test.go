package sim

import (
	"testing"

	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
)

func testWorld(t *testing.T, seed uint32) (*World, *config.Game) {
	t.Helper()
	cfg := config.DefaultGame()
	seq, err := NewGapSequencer(core.NewStream(seed), cfg.Pipes)
	if err != nil {
		t.Fatalf("NewGapSequencer() failed: %v", err)
	}
	return NewWorld(&cfg, seq), &cfg
}

func TestWorldInitialState(t *testing.T) {
	w, cfg := testWorld(t, 1)

	b := w.Bird()
	if b.X != cfg.Bird.X {
		t.Errorf("bird x = %g, expected %g", b.X, cfg.Bird.X)
	}
	wantY := (cfg.Screen.Height - cfg.Bird.Height) / 2
	if b.Y != wantY {
		t.Errorf("bird y = %g, expected centered at %g", b.Y, wantY)
	}
	if b.VelY != 0 {
		t.Errorf("bird velocity = %g, expected 0", b.VelY)
	}

	if len(w.Pipes()) != 1 {
		t.Fatalf("expected 1 initial pipe, got %d", len(w.Pipes()))
	}
	firstGap := (cfg.Pipes.MinGapY + cfg.Pipes.MaxGapY) / 2
	if w.Pipes()[0].GapCenterY != firstGap {
		t.Errorf("first gap center = %g, expected %g", w.Pipes()[0].GapCenterY, firstGap)
	}
}

func TestWorldGravity(t *testing.T) {
	w, _ := testWorld(t, 1)
	before := w.Bird()

	w.Step(core.NoFlap)

	after := w.Bird()
	if after.VelY <= before.VelY {
		t.Errorf("gravity should increase velocity, %g -> %g", before.VelY, after.VelY)
	}
	if after.Y <= before.Y {
		t.Errorf("bird should fall, y %g -> %g", before.Y, after.Y)
	}
}

func TestWorldFlap(t *testing.T) {
	w, cfg := testWorld(t, 1)
	before := w.Bird()

	w.Step(core.Flap)

	after := w.Bird()
	if after.VelY != cfg.Physics.FlapImpulse {
		t.Errorf("flap velocity = %g, expected impulse %g", after.VelY, cfg.Physics.FlapImpulse)
	}
	if after.Y >= before.Y {
		t.Errorf("flap should move bird up, y %g -> %g", before.Y, after.Y)
	}
}

func TestWorldTerminalVelocity(t *testing.T) {
	w, cfg := testWorld(t, 1)

	for i := 0; i < 50; i++ {
		w.Step(core.NoFlap)
	}

	if v := w.Bird().VelY; v > cfg.Physics.MaxFallSpeed {
		t.Errorf("fall velocity %g exceeds cap %g", v, cfg.Physics.MaxFallSpeed)
	}
}

func TestWorldPipeScrollAndSpawn(t *testing.T) {
	w, cfg := testWorld(t, 42)

	firstX := w.Pipes()[0].X
	w.Step(core.NoFlap)
	if got := w.Pipes()[0].X; got != firstX-cfg.Pipes.ScrollSpeed {
		t.Errorf("pipe x = %g, expected %g", got, firstX-cfg.Pipes.ScrollSpeed)
	}

	// Run long enough for spawning and removal to cycle several times.
	for i := 0; i < 2000; i++ {
		w.Step(core.NoFlap)
		pipes := w.Pipes()
		for j, p := range pipes {
			if p.X+cfg.Pipes.Width <= 0 {
				t.Fatalf("tick %d: off-screen pipe %d not removed (x=%g)", i, j, p.X)
			}
			if j > 0 && pipes[j-1].X >= p.X {
				t.Fatalf("tick %d: pipes out of order", i)
			}
			if p.GapCenterY < cfg.Pipes.MinGapY || p.GapCenterY > cfg.Pipes.MaxGapY {
				t.Fatalf("tick %d: gap center %g out of bounds", i, p.GapCenterY)
			}
		}
	}

	if len(w.Pipes()) == 0 {
		t.Error("expected pipes to keep spawning")
	}
}

func TestWorldMarkPassed(t *testing.T) {
	w, cfg := testWorld(t, 7)

	total := 0
	for i := 0; i < 2000; i++ {
		w.Step(core.NoFlap)
		total += w.MarkPassed()
	}

	if total == 0 {
		t.Fatal("expected at least one pipe to be passed")
	}

	// Marking again must not double count.
	if again := w.MarkPassed(); again != 0 {
		t.Errorf("MarkPassed() counted %d pipes twice", again)
	}

	for _, p := range w.Pipes() {
		if p.Passed && p.X+cfg.Pipes.Width >= w.Bird().X {
			t.Error("pipe marked passed while still ahead of the bird")
		}
	}
}

func TestWorldSnapshotIsolation(t *testing.T) {
	w, cfg := testWorld(t, 3)

	snap := w.Snapshot()
	liveBird := w.Bird()
	livePipes := append([]Pipe(nil), w.Pipes()...)

	// Stepping and mutating the snapshot must not leak into the world.
	snap.Step(core.Flap, cfg)
	snap.Step(core.Flap, cfg)
	if len(snap.Pipes) > 0 {
		snap.Pipes[0].Passed = true
		snap.Pipes[0].X = -999
	}

	if w.Bird() != liveBird {
		t.Error("snapshot step mutated the live bird")
	}
	for i, p := range w.Pipes() {
		if p != livePipes[i] {
			t.Error("snapshot mutation leaked into live pipes")
		}
	}
}

func TestWorldDeterminism(t *testing.T) {
	w1, _ := testWorld(t, 12345)
	w2, _ := testWorld(t, 12345)

	for i := 0; i < 1500; i++ {
		action := core.NoFlap
		if i%15 == 0 {
			action = core.Flap
		}
		w1.Step(action)
		w2.Step(action)
	}

	if w1.Bird() != w2.Bird() {
		t.Errorf("birds diverged: %+v vs %+v", w1.Bird(), w2.Bird())
	}
	if len(w1.Pipes()) != len(w2.Pipes()) {
		t.Fatalf("pipe counts diverged: %d vs %d", len(w1.Pipes()), len(w2.Pipes()))
	}
	for i := range w1.Pipes() {
		if w1.Pipes()[i] != w2.Pipes()[i] {
			t.Errorf("pipe %d diverged: %+v vs %+v", i, w1.Pipes()[i], w2.Pipes()[i])
		}
	}
}
