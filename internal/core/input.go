package core

// Action is one of the two discrete inputs available to the bird each
// tick. The zero value is NoFlap so an absent input falls through to
// "do nothing", matching a human player not pressing a key.
type Action int

const (
	NoFlap Action = iota
	Flap
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case Flap:
		return "flap"
	case NoFlap:
		return "no_flap"
	default:
		return "unknown"
	}
}
