package phase

// State is the phase setting of a session.
type State struct {
	// Zeroth is the zeroth-order angle in degrees, 0..359.
	Zeroth int
	// First is the first-order angle in degrees. It is displayed but never
	// applied.
	First        int
	FirstEnabled bool
}

// SetZeroth stores deg wrapped into 0..359.
func (s *State) SetZeroth(deg int) {
	s.Zeroth = Wrap(deg)
}

// SetFirst stores the first-order angle. It is ignored while first order is
// disabled.
func (s *State) SetFirst(deg int) {
	if !s.FirstEnabled {
		return
	}
	s.First = Wrap(deg)
}

// EnableFirst toggles the first-order control. Both transitions reset the
// first-order angle to zero.
func (s *State) EnableFirst(on bool) {
	s.FirstEnabled = on
	s.First = 0
}

// Reset returns s to the zero state.
func (s *State) Reset() {
	*s = State{}
}
