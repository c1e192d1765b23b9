package interact

import "github.com/cwbudde/algo-nsor/axis"

// LeftButton is the only button that starts drags.
const LeftButton = 1

// Event is a pointer event. InAxes is false when the pointer is outside every
// plot area, in which case Domain, X and Y are meaningless.
type Event struct {
	Domain axis.Domain
	InAxes bool
	X, Y   float64
	Button int
}

// View holds the visible limits of one plot.
type View struct {
	XMin, XMax float64
	YMin, YMax float64
}

// XSpan returns XMax-XMin.
func (v View) XSpan() float64 { return v.XMax - v.XMin }

// Surface is the drawing collaborator.
type Surface interface {
	// Blit restores the saved background of d and redraws only moving artists.
	Blit(d axis.Domain)
	// Draw performs a full redraw.
	Draw()
	// SetField writes text into the named parameter field.
	SetField(key, text string)
	// SetPointer switches between the crosshair and the default pointer.
	SetPointer(cross bool)
	// View returns the current limits of d.
	View(d axis.Domain) View
}

func side(dir int, lo, hi float64) float64 {
	if dir > 0 {
		return hi
	}
	return lo
}

func direction(from, to float64) int {
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	default:
		return 0
	}
}
