// Package cursor translates cursor positions on a monotonic axis into sample
// indices.
//
// A cursor pair is always reported as (lower, upper) regardless of the order
// in which the two lines were placed, and the index range it selects is the
// half-open [Window.Lo, Window.Hi).
package cursor

import (
	"errors"
	"sort"
)

// ErrEmptyAxis is returned when a lookup is attempted on an empty axis.
var ErrEmptyAxis = errors.New("cursor axis must not be empty")

// Pair holds two cursor positions in axis units, ordered ascending.
type Pair struct {
	Lower float64
	Upper float64
}

// NewPair orders a and b into a [Pair].
func NewPair(a, b float64) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{Lower: a, Upper: b}
}

// Window is the half-open index range [Lo, Hi).
type Window struct {
	Lo int
	Hi int
}

// Full returns the window covering n samples.
func Full(n int) Window {
	return Window{Lo: 0, Hi: n}
}

// Len returns the number of indices covered by w.
func (w Window) Len() int {
	if w.Hi < w.Lo {
		return 0
	}
	return w.Hi - w.Lo
}

// Clamp restricts w to [0, n).
func (w Window) Clamp(n int) Window {
	w.Lo = clampInt(w.Lo, 0, n)
	w.Hi = clampInt(w.Hi, w.Lo, n)
	return w
}

// Nearest returns the index of the axis element closest to v.
//
// axis must be sorted ascending. Ties resolve to the lower index and values
// outside the axis range map to the first or last index.
func Nearest(axis []float64, v float64) (int, error) {
	n := len(axis)
	if n == 0 {
		return 0, ErrEmptyAxis
	}

	j := sort.SearchFloat64s(axis, v)
	switch {
	case j == 0:
		return 0, nil
	case j == n:
		return n - 1, nil
	}

	if v-axis[j-1] <= axis[j]-v {
		return j - 1, nil
	}
	return j, nil
}

// Lookup maps two cursor values to an ascending index window.
func Lookup(axis []float64, a, b float64) (Window, error) {
	i, err := Nearest(axis, a)
	if err != nil {
		return Window{}, err
	}
	j, err := Nearest(axis, b)
	if err != nil {
		return Window{}, err
	}
	if j < i {
		i, j = j, i
	}
	return Window{Lo: i, Hi: j}, nil
}

// LookupPair is [Lookup] for a [Pair].
func LookupPair(axis []float64, p Pair) (Window, error) {
	return Lookup(axis, p.Lower, p.Upper)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
