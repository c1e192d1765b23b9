package interact

import (
	"math"

	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/params"
)

// Orientation selects the zoomed axis.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Zoom drags a guide pair across one axis and writes the selected range as
// the new limit.
type Zoom struct {
	surface Surface
	orient  Orientation

	active bool
	domain axis.Domain
	start  float64
	end    float64
	dir    int
}

// NewZoom returns a zoom handler for o.
func NewZoom(s Surface, o Orientation) *Zoom {
	return &Zoom{surface: s, orient: o}
}

// Dragging reports whether a zoom selection is in progress.
func (z *Zoom) Dragging() bool { return z.active }

// Guides returns the guide positions of the running selection.
func (z *Zoom) Guides() (start, end float64, ok bool) {
	return z.start, z.end, z.active
}

func (z *Zoom) coord(ev Event) float64 {
	if z.orient == Vertical {
		return ev.Y
	}
	return ev.X
}

func (z *Zoom) field() axis.Field {
	if z.orient == Vertical {
		return axis.YLimit
	}
	return axis.XLimit
}

func (z *Zoom) limits(v View) (float64, float64) {
	if z.orient == Vertical {
		return v.YMin, v.YMax
	}
	return v.XMin, v.XMax
}

// Press starts a selection on a left click inside a plot. Any other button
// cancels a running selection.
func (z *Zoom) Press(ev Event) {
	if z.active {
		if ev.Button != LeftButton {
			z.Cancel()
		}
		return
	}
	if ev.Button != LeftButton || !ev.InAxes {
		return
	}
	z.active = true
	z.domain = ev.Domain
	z.start = z.coord(ev)
	z.end = z.start
	z.dir = 0
	z.surface.Blit(z.domain)
}

// Motion tracks the moving guide.
func (z *Zoom) Motion(ev Event) {
	if !z.active || !ev.InAxes || ev.Domain != z.domain {
		return
	}
	c := z.coord(ev)
	if d := direction(z.start, c); d != 0 {
		z.dir = d
	}
	z.end = c
	z.surface.Blit(z.domain)
}

// Release finishes the selection. Outside the plot the range extends to the
// axis limit on the drag side. An empty range changes nothing.
func (z *Zoom) Release(ev Event) {
	if !z.active || ev.Button != LeftButton {
		return
	}
	z.active = false

	end := z.coord(ev)
	if !ev.InAxes || ev.Domain != z.domain {
		lo, hi := z.limits(z.surface.View(z.domain))
		end = side(z.dir, lo, hi)
	}
	z.end = end
	if z.start != end {
		lo, hi := math.Min(z.start, end), math.Max(z.start, end)
		z.surface.SetField(z.domain.Key(z.field()), params.FormatRange(lo, hi))
	}
	z.surface.Draw()
}

// Cancel aborts a running selection and removes the guides.
func (z *Zoom) Cancel() {
	if !z.active {
		return
	}
	z.active = false
	z.surface.Draw()
}
