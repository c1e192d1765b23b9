// Package zerofill extends time-domain segments with trailing zeros before
// transform.
//
// The target length is always derived from the length of the whole working
// signal, not from the (possibly cursor-windowed) segment, so that spectra
// computed from different windows share the same bin spacing.
package zerofill

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrNoSignal is returned when padding is requested before any signal exists.
var ErrNoSignal = errors.New("zero-fill requires a loaded signal")

// ErrInvalidFactor is returned by [ParseFactor] for unknown selector text.
var ErrInvalidFactor = errors.New("zero-fill factor must be one of x1, x2, x4, x8")

// Factor is the zero-fill selector k. The signal is extended to the next
// power of two and then multiplied by 2^(k-1), so x2 doubles the length while
// x4 and x8 multiply it by 8 and 128.
type Factor int

const (
	X1 Factor = 1
	X2 Factor = 2
	X4 Factor = 4
	X8 Factor = 8
)

// Factors lists the selectable multipliers in menu order.
var Factors = []Factor{X1, X2, X4, X8}

// String returns the menu label, e.g. "x2".
func (f Factor) String() string {
	return fmt.Sprintf("x%d", int(f))
}

// Valid reports whether f is one of [Factors].
func (f Factor) Valid() bool {
	switch f {
	case X1, X2, X4, X8:
		return true
	}
	return false
}

// ParseFactor parses a menu label such as "x4" (or "×4").
func ParseFactor(s string) (Factor, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.TrimPrefix(t, "×")
	t = strings.TrimPrefix(t, "x")
	var f Factor
	switch t {
	case "1":
		f = X1
	case "2":
		f = X2
	case "4":
		f = X4
	case "8":
		f = X8
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFactor, s)
	}
	return f, nil
}

// Multiplier returns 2^(k-1) for the selector k.
func (f Factor) Multiplier() int {
	return 1 << (int(f) - 1)
}

// TargetLength returns 2^ceil(log2(n)) * 2^(k-1).
func TargetLength(n int, f Factor) (int, error) {
	if n <= 0 {
		return 0, ErrNoSignal
	}
	if !f.Valid() {
		return 0, fmt.Errorf("invalid zero-fill factor: %d", int(f))
	}
	return nextPowerOf2(n) * f.Multiplier(), nil
}

// Pad returns segment followed by zeros up to TargetLength(n, f).
//
// n is the length of the unwindowed working signal. segment is copied and
// never modified.
func Pad(segment []float64, n int, f Factor) ([]float64, error) {
	l, err := TargetLength(n, f)
	if err != nil {
		return nil, err
	}
	if len(segment) > l {
		return nil, fmt.Errorf("segment length %d exceeds zero-fill target %d", len(segment), l)
	}
	out := make([]float64, l)
	copy(out, segment)
	return out, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
