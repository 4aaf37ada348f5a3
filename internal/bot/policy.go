// Package bot implements the autonomous decision policies. A policy picks
// Flap or NoFlap each tick by stepping cloned world snapshots one tick
// ahead and checking the collision predicate on the outcomes; it never
// mutates the live session.
package bot

import (
	"fmt"

	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

// Variant selects the lookahead depth of the policy.
type Variant string

const (
	// VariantSingle considers only the nearest upcoming pipe.
	VariantSingle Variant = "single"
	// VariantTwoPipes additionally weighs the second pipe when both
	// one-tick outcomes are safe, correcting course earlier before sharp
	// gap transitions.
	VariantTwoPipes Variant = "two_pipes"
)

// ParseVariant converts a CLI string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantSingle, VariantTwoPipes:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("bot: unknown variant %q (want %q or %q)", s, VariantSingle, VariantTwoPipes)
	}
}

// Policy decides an action per tick from a world snapshot. It is a policy,
// not a guarantor: when every branch collides it still returns its best
// effort and lets the live session terminate naturally.
type Policy struct {
	variant Variant
	cfg     *config.Game
}

// New creates a policy of the given variant.
func New(variant Variant, cfg *config.Game) *Policy {
	return &Policy{variant: variant, cfg: cfg}
}

// Variant returns the lookahead variant of this policy.
func (p *Policy) Variant() Variant {
	return p.variant
}

// Act implements sim.ActionSource.
func (p *Policy) Act(snap sim.Snapshot) core.Action {
	target, second, ok := upcomingPipes(snap, p.cfg)
	if !ok {
		return core.NoFlap
	}

	// Simulate both candidate actions one tick ahead on independent
	// clones, with the same timestep as the live session.
	flapSnap := snap.Clone()
	flapSnap.Step(core.Flap, p.cfg)
	noFlapSnap := snap.Clone()
	noFlapSnap.Step(core.NoFlap, p.cfg)

	flapSafe := !sim.Colliding(&flapSnap, p.cfg)
	noFlapSafe := !sim.Colliding(&noFlapSnap, p.cfg)

	switch {
	case flapSafe && !noFlapSafe:
		return core.Flap
	case !flapSafe && noFlapSafe:
		return core.NoFlap
	case flapSafe && noFlapSafe:
		if p.variant == VariantTwoPipes && second != nil {
			return p.towardSecondGap(flapSnap, noFlapSnap, *second)
		}
		return closerToCenter(flapSnap, noFlapSnap, target.GapCenterY, p.cfg)
	default:
		// Both collide; best effort, the session ends either way.
		return closerToCenter(flapSnap, noFlapSnap, target.GapCenterY, p.cfg)
	}
}

// towardSecondGap extends each safe candidate one more tick and prefers the
// branch ending closer to the second pipe's gap center.
func (p *Policy) towardSecondGap(flapSnap, noFlapSnap sim.Snapshot, second sim.Pipe) core.Action {
	flapSnap.Step(core.NoFlap, p.cfg)
	noFlapSnap.Step(core.NoFlap, p.cfg)
	return closerToCenter(flapSnap, noFlapSnap, second.GapCenterY, p.cfg)
}

// closerToCenter picks the branch whose bird midpoint ends nearer to the
// gap center. Ties fall to NoFlap, the gravity-neutral choice.
func closerToCenter(flapSnap, noFlapSnap sim.Snapshot, gapCenterY float64, cfg *config.Game) core.Action {
	flapDist := core.AbsF(birdCenterY(flapSnap.Bird, cfg) - gapCenterY)
	noFlapDist := core.AbsF(birdCenterY(noFlapSnap.Bird, cfg) - gapCenterY)
	if flapDist < noFlapDist {
		return core.Flap
	}
	return core.NoFlap
}

// birdCenterY returns the vertical midpoint of the bird's hitbox.
func birdCenterY(b sim.Bird, cfg *config.Game) float64 {
	return b.Y + cfg.Bird.Height/2
}

// upcomingPipes returns the nearest pipe still ahead of or overlapping the
// bird and, when present, the one after it.
func upcomingPipes(snap sim.Snapshot, cfg *config.Game) (target sim.Pipe, second *sim.Pipe, ok bool) {
	for i, p := range snap.Pipes {
		if p.X+cfg.Pipes.Width > snap.Bird.X {
			target = p
			if i+1 < len(snap.Pipes) {
				s := snap.Pipes[i+1]
				second = &s
			}
			return target, second, true
		}
	}
	return sim.Pipe{}, nil, false
}
