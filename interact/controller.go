package interact

import "fmt"

// Mode is the active pointer tool.
type Mode int

const (
	ModeNone Mode = iota
	ModeCursor
	ModeHZoom
	ModeVZoom
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeCursor:
		return "cursor"
	case ModeHZoom:
		return "hzoom"
	case ModeVZoom:
		return "vzoom"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Controller routes pointer events to the tool selected by [Mode]. At most
// one tool is active.
type Controller struct {
	surface Surface
	mode    Mode

	Cursor *CursorDrag
	HZoom  *Zoom
	VZoom  *Zoom
	Phase  *PhaseControl
}

// NewController returns a controller with no active tool.
func NewController(s Surface) *Controller {
	return &Controller{
		surface: s,
		Cursor:  NewCursorDrag(s),
		HZoom:   NewZoom(s, Horizontal),
		VZoom:   NewZoom(s, Vertical),
		Phase:   NewPhaseControl(s),
	}
}

// Mode returns the active tool.
func (c *Controller) Mode() Mode { return c.mode }

// Enable switches tool m on or off. Switching a tool on disables the others
// and cancels their drags.
func (c *Controller) Enable(m Mode, on bool) {
	if !on {
		if c.mode == m {
			c.cancel()
			c.mode = ModeNone
		}
		return
	}
	if c.mode != m {
		c.cancel()
	}
	c.mode = m
	c.surface.SetPointer(m == ModeHZoom || m == ModeVZoom)
}

func (c *Controller) cancel() {
	c.Cursor.Cancel()
	c.HZoom.Cancel()
	c.VZoom.Cancel()
	c.surface.SetPointer(false)
}

// Press forwards a button press.
func (c *Controller) Press(ev Event) {
	switch c.mode {
	case ModeCursor:
		c.Cursor.Press(ev)
	case ModeHZoom:
		c.HZoom.Press(ev)
	case ModeVZoom:
		c.VZoom.Press(ev)
	}
}

// Motion forwards a pointer move.
func (c *Controller) Motion(ev Event) {
	switch c.mode {
	case ModeCursor:
		c.Cursor.Motion(ev)
	case ModeHZoom:
		c.HZoom.Motion(ev)
	case ModeVZoom:
		c.VZoom.Motion(ev)
	}
}

// Release forwards a button release.
func (c *Controller) Release(ev Event) {
	switch c.mode {
	case ModeCursor:
		c.Cursor.Release(ev)
	case ModeHZoom:
		c.HZoom.Release(ev)
	case ModeVZoom:
		c.VZoom.Release(ev)
	}
}
