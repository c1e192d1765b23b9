package interact

import (
	"testing"

	"github.com/cwbudde/algo-nsor/axis"
)

type fakeSurface struct {
	views   map[axis.Domain]View
	blits   []axis.Domain
	draws   int
	fields  map[string]string
	pointer bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		views: map[axis.Domain]View{
			axis.Time:      {XMin: 0, XMax: 1, YMin: -1, YMax: 1},
			axis.Frequency: {XMin: 0, XMax: 500, YMin: -2, YMax: 2},
		},
		fields: map[string]string{},
	}
}

func (f *fakeSurface) Blit(d axis.Domain)        { f.blits = append(f.blits, d) }
func (f *fakeSurface) Draw()                     { f.draws++ }
func (f *fakeSurface) SetField(key, text string) { f.fields[key] = text }
func (f *fakeSurface) SetPointer(cross bool)     { f.pointer = cross }
func (f *fakeSurface) View(d axis.Domain) View   { return f.views[d] }

func in(d axis.Domain, x, y float64, button int) Event {
	return Event{Domain: d, InAxes: true, X: x, Y: y, Button: button}
}

func outside(button int) Event {
	return Event{Button: button}
}

func TestModeExclusive(t *testing.T) {
	s := newFakeSurface()
	c := NewController(s)

	c.Enable(ModeCursor, true)
	c.Enable(ModeHZoom, true)
	if c.Mode() != ModeHZoom {
		t.Fatalf("Mode = %v, want hzoom", c.Mode())
	}
	// Disabling a tool that is not active changes nothing.
	c.Enable(ModeCursor, false)
	if c.Mode() != ModeHZoom {
		t.Fatalf("Mode = %v, want hzoom", c.Mode())
	}
	c.Enable(ModeHZoom, false)
	if c.Mode() != ModeNone {
		t.Fatalf("Mode = %v, want none", c.Mode())
	}
}

func TestModeSwitchCancelsZoom(t *testing.T) {
	s := newFakeSurface()
	c := NewController(s)
	c.Enable(ModeHZoom, true)
	c.Press(in(axis.Time, 0.2, 0, LeftButton))
	if !c.HZoom.Dragging() {
		t.Fatal("zoom not started")
	}
	c.Enable(ModeVZoom, true)
	if c.HZoom.Dragging() {
		t.Fatal("switching mode must cancel the horizontal zoom")
	}
	if len(s.fields) != 0 {
		t.Fatalf("cancelled zoom wrote fields: %v", s.fields)
	}
}

func TestCursorHoverWithinTwoPercent(t *testing.T) {
	s := newFakeSurface()
	c := NewCursorDrag(s)
	c.SetLines(axis.Frequency, 100, 300)

	tests := []struct {
		x    float64
		want int
	}{
		{109, 0},  // 2% of 500 is 10
		{111, -1},
		{295, 1},
		{200, -1},
	}
	for _, tt := range tests {
		c.Motion(in(axis.Frequency, tt.x, 0, 0))
		if got := c.Hovered(); got != tt.want {
			t.Errorf("hover at %v = %d, want %d", tt.x, got, tt.want)
		}
	}
	c.Motion(in(axis.Frequency, 101, 0, 0))
	if !s.pointer {
		t.Fatal("hovering must switch to the crosshair pointer")
	}
}

func TestCursorDragWritesSortedPair(t *testing.T) {
	s := newFakeSurface()
	c := NewController(s)
	c.Enable(ModeCursor, true)
	c.Cursor.SetLines(axis.Frequency, 100, 300)

	c.Motion(in(axis.Frequency, 100, 0, 0))
	c.Press(in(axis.Frequency, 100, 0, LeftButton))
	if !c.Cursor.Dragging() {
		t.Fatal("press on hovered line must grab it")
	}
	c.Motion(in(axis.Frequency, 350, 0, 0))
	c.Motion(in(axis.Frequency, 400, 0, 0))
	if len(s.blits) != 2 {
		t.Fatalf("blits = %d, want one per drag motion", len(s.blits))
	}
	c.Release(in(axis.Frequency, 400, 0, LeftButton))

	if got, want := s.fields["freq_cursor"], "3.00000E+02 4.00000E+02"; got != want {
		t.Fatalf("freq_cursor = %q, want %q", got, want)
	}
	if s.draws == 0 {
		t.Fatal("release must trigger a full redraw")
	}
	a, b := c.Cursor.Lines(axis.Frequency)
	if a != 400 || b != 300 {
		t.Fatalf("lines = %v, %v", a, b)
	}
}

func TestCursorReleaseOutsideSnapsToDragSide(t *testing.T) {
	tests := []struct {
		name string
		path []float64
		want string
	}{
		{"right", []float64{0.5, 0.8}, "2.00000E-01 1.00000E+00"},
		{"left", []float64{0.5, 0.3}, "0.00000E+00 2.00000E-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSurface()
			c := NewCursorDrag(s)
			c.SetLines(axis.Time, 0.2, 0.5)

			c.Motion(in(axis.Time, 0.5, 0, 0))
			c.Press(in(axis.Time, 0.5, 0, LeftButton))
			for _, x := range tt.path {
				c.Motion(in(axis.Time, x, 0, 0))
			}
			c.Release(outside(LeftButton))
			if got := s.fields["time_cursor"]; got != tt.want {
				t.Fatalf("time_cursor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCursorPressWithoutHoverIgnored(t *testing.T) {
	s := newFakeSurface()
	c := NewCursorDrag(s)
	c.SetLines(axis.Time, 0.2, 0.5)
	c.Press(in(axis.Time, 0.9, 0, LeftButton))
	if c.Dragging() {
		t.Fatal("press away from lines must not grab")
	}
}

func TestHorizontalZoom(t *testing.T) {
	s := newFakeSurface()
	z := NewZoom(s, Horizontal)

	z.Press(in(axis.Frequency, 300, 0, LeftButton))
	z.Motion(in(axis.Frequency, 120, 0, 0))
	z.Release(in(axis.Frequency, 120, 0, LeftButton))

	if got, want := s.fields["freq_x_limit"], "1.20000E+02 3.00000E+02"; got != want {
		t.Fatalf("freq_x_limit = %q, want %q", got, want)
	}
}

func TestVerticalZoomReleaseOutsideClamps(t *testing.T) {
	s := newFakeSurface()
	z := NewZoom(s, Vertical)

	z.Press(in(axis.Time, 0, 0.25, LeftButton))
	z.Motion(in(axis.Time, 0, 0.5, 0))
	z.Release(outside(LeftButton))

	if got, want := s.fields["time_y_limit"], "2.50000E-01 1.00000E+00"; got != want {
		t.Fatalf("time_y_limit = %q, want %q", got, want)
	}
}

func TestZoomOtherButtonCancels(t *testing.T) {
	s := newFakeSurface()
	z := NewZoom(s, Horizontal)

	z.Press(in(axis.Time, 0.1, 0, LeftButton))
	z.Press(in(axis.Time, 0.4, 0, 3))
	if z.Dragging() {
		t.Fatal("right click must cancel the zoom")
	}
	z.Release(in(axis.Time, 0.4, 0, LeftButton))
	if len(s.fields) != 0 {
		t.Fatalf("cancelled zoom wrote fields: %v", s.fields)
	}
}

func TestZoomEmptyRangeIgnored(t *testing.T) {
	s := newFakeSurface()
	z := NewZoom(s, Horizontal)
	z.Press(in(axis.Time, 0.1, 0, LeftButton))
	z.Release(in(axis.Time, 0.1, 0, LeftButton))
	if len(s.fields) != 0 {
		t.Fatalf("empty zoom wrote fields: %v", s.fields)
	}
}

func TestPhaseControlStates(t *testing.T) {
	s := newFakeSurface()
	p := NewPhaseControl(s)

	p.ZerothChanged()
	if p.State() != PhaseZerothAdjusting {
		t.Fatalf("state = %v, want zeroth-adjusting", p.State())
	}
	if len(s.blits) != 1 || s.blits[0] != axis.Frequency {
		t.Fatalf("blits = %v, want one frequency blit", s.blits)
	}
	p.Released()
	if p.State() != PhaseIdle || s.draws != 1 {
		t.Fatalf("after release state = %v draws = %d", p.State(), s.draws)
	}

	p.ToggleFirst(true)
	if p.State() != PhaseFirstOrderEnabled || !p.FirstVisible() {
		t.Fatalf("after enable state = %v visible = %v", p.State(), p.FirstVisible())
	}
	p.ZerothChanged()
	p.Released()
	if p.State() != PhaseFirstOrderEnabled {
		t.Fatalf("release with first order on = %v", p.State())
	}
	p.ToggleFirst(false)
	if p.State() != PhaseIdle || p.FirstVisible() {
		t.Fatalf("after disable state = %v visible = %v", p.State(), p.FirstVisible())
	}
}
