package interact

import (
	"math"

	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/params"
)

// HoverFraction is the share of the visible x range within which a cursor
// line reacts to the pointer.
const HoverFraction = 0.02

// CursorDrag moves the two vertical cursor lines of each plot.
type CursorDrag struct {
	surface Surface
	lines   map[axis.Domain]*[2]float64

	hovered     int
	hoverDomain axis.Domain
	grabbed     bool
	domain      axis.Domain
	index       int
	dir         int
}

// NewCursorDrag returns a cursor handler with all lines at 0.
func NewCursorDrag(s Surface) *CursorDrag {
	c := &CursorDrag{
		surface: s,
		lines:   make(map[axis.Domain]*[2]float64),
		hovered: -1,
	}
	for _, d := range axis.Domains {
		c.lines[d] = &[2]float64{}
	}
	return c
}

// Lines returns the cursor positions of d in line order.
func (c *CursorDrag) Lines(d axis.Domain) (float64, float64) {
	l := c.lines[d]
	return l[0], l[1]
}

// SetLines moves both lines of d, for example after a field was edited.
func (c *CursorDrag) SetLines(d axis.Domain, a, b float64) {
	c.lines[d] = &[2]float64{a, b}
}

// Dragging reports whether a line is grabbed.
func (c *CursorDrag) Dragging() bool { return c.grabbed }

// Hovered returns the hovered line index, or -1.
func (c *CursorDrag) Hovered() int { return c.hovered }

// Press grabs the hovered line on a left click.
func (c *CursorDrag) Press(ev Event) {
	if c.grabbed || ev.Button != LeftButton || c.hovered < 0 {
		return
	}
	if !ev.InAxes || ev.Domain != c.hoverDomain {
		return
	}
	c.grabbed = true
	c.domain = ev.Domain
	c.index = c.hovered
	c.dir = 0
}

// Motion hovers lines while idle and moves the grabbed line while dragging.
func (c *CursorDrag) Motion(ev Event) {
	if c.grabbed {
		if !ev.InAxes || ev.Domain != c.domain {
			return
		}
		l := c.lines[c.domain]
		if d := direction(l[c.index], ev.X); d != 0 {
			c.dir = d
		}
		l[c.index] = ev.X
		c.surface.Blit(c.domain)
		return
	}

	hovered := -1
	if ev.InAxes {
		hovered = c.hit(ev.Domain, ev.X)
	}
	if hovered != c.hovered || ev.Domain != c.hoverDomain {
		c.surface.SetPointer(hovered >= 0)
	}
	c.hovered = hovered
	c.hoverDomain = ev.Domain
}

// Release drops the grabbed line. Outside its plot the line snaps to the
// visible x limit in the last drag direction. The sorted pair is written to
// the cursor field of the domain.
func (c *CursorDrag) Release(ev Event) {
	if !c.grabbed {
		return
	}
	c.grabbed = false
	l := c.lines[c.domain]
	if !ev.InAxes || ev.Domain != c.domain {
		v := c.surface.View(c.domain)
		l[c.index] = side(c.dir, v.XMin, v.XMax)
	} else {
		l[c.index] = ev.X
	}

	lo, hi := math.Min(l[0], l[1]), math.Max(l[0], l[1])
	c.surface.SetField(c.domain.Key(axis.Cursor), params.FormatRange(lo, hi))
	c.surface.Draw()
}

// Cancel drops any grab without writing a field.
func (c *CursorDrag) Cancel() {
	if c.grabbed {
		c.grabbed = false
		c.surface.Draw()
	}
	if c.hovered >= 0 {
		c.hovered = -1
		c.surface.SetPointer(false)
	}
}

// hit returns the index of the line within HoverFraction of x, preferring the
// nearer one.
func (c *CursorDrag) hit(d axis.Domain, x float64) int {
	tol := HoverFraction * math.Abs(c.surface.View(d).XSpan())
	l := c.lines[d]
	best, bestDist := -1, math.Inf(1)
	for i, pos := range l {
		if dist := math.Abs(x - pos); dist <= tol && dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
