package interact

import "github.com/cwbudde/algo-nsor/axis"

// PhaseState is the state of the phase slider controls.
type PhaseState int

const (
	PhaseIdle PhaseState = iota
	PhaseZerothAdjusting
	PhaseFirstOrderEnabled
)

func (s PhaseState) String() string {
	switch s {
	case PhaseZerothAdjusting:
		return "zeroth-adjusting"
	case PhaseFirstOrderEnabled:
		return "first-order-enabled"
	default:
		return "idle"
	}
}

// PhaseControl tracks the zeroth-order slider drag and the first-order
// toggle.
type PhaseControl struct {
	surface Surface
	state   PhaseState
	first   bool
}

// NewPhaseControl returns an idle phase control.
func NewPhaseControl(s Surface) *PhaseControl {
	return &PhaseControl{surface: s}
}

// State returns the current state.
func (p *PhaseControl) State() PhaseState { return p.state }

// FirstVisible reports whether the first-order control is shown.
func (p *PhaseControl) FirstVisible() bool { return p.first }

// ZerothChanged is called for every slider step and repaints the spectrum
// cheaply.
func (p *PhaseControl) ZerothChanged() {
	p.state = PhaseZerothAdjusting
	p.surface.Blit(axis.Frequency)
}

// Released settles the slider with a full redraw.
func (p *PhaseControl) Released() {
	p.state = p.rest()
	p.surface.Draw()
}

// ToggleFirst shows or hides the first-order control. The caller resets the
// first-order angle.
func (p *PhaseControl) ToggleFirst(on bool) {
	p.first = on
	if p.state != PhaseZerothAdjusting {
		p.state = p.rest()
	}
	p.surface.Draw()
}

func (p *PhaseControl) rest() PhaseState {
	if p.first {
		return PhaseFirstOrderEnabled
	}
	return PhaseIdle
}
