package model

type PickState int

const (
	PickNone PickState = iota
	PickPicked
	PickCleared
)

func (s PickState) String() string {
	switch s {
	case PickPicked:
		return "picked"
	case PickCleared:
		return "cleared"
	default:
		return "none"
	}
}

// Pick holds the caller-owned current selection. The zero value is in PickNone.
type Pick struct {
	state  PickState
	picked *PickedMovie
}

func (p *Pick) State() PickState {
	return p.state
}

// Current returns the picked movie, or nil unless the state is PickPicked.
func (p *Pick) Current() *PickedMovie {
	if p.state != PickPicked {
		return nil
	}
	return p.picked
}

// Set replaces any existing pick. A nil movie leaves the state untouched.
func (p *Pick) Set(pm *PickedMovie) {
	if pm == nil {
		return
	}
	p.picked = pm
	p.state = PickPicked
}

// Clear is called once the current pick has been marked viewed.
func (p *Pick) Clear() {
	if p.state != PickPicked {
		return
	}
	p.picked = nil
	p.state = PickCleared
}
