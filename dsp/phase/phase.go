package phase

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nsor/dsp/cursor"
	"github.com/cwbudde/algo-nsor/dsp/spectrum"
)

// ErrNoSpectrum is returned when phasing is requested before a spectrum exists.
var ErrNoSpectrum = errors.New("no spectrum available for phase correction")

// IntensityScale converts an in-phase sum into the reported peak intensity.
const IntensityScale = 2

// Wrap maps deg into [0, 360).
func Wrap(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Radians converts integer degrees to radians.
func Radians(deg int) float64 {
	return float64(deg) / 360 * 2 * math.Pi
}

// Correct returns the phased real trace of bins at deg degrees.
func Correct(bins []complex128, deg int) ([]float64, error) {
	if len(bins) == 0 {
		return nil, ErrNoSpectrum
	}
	n := len(bins)
	re := make([]float64, n)
	im := make([]float64, n)
	spectrum.Split(re, im, bins)

	phi := Radians(deg)
	out := make([]float64, n)
	vecmath.ScaleBlock(out, re, math.Cos(phi))
	vecmath.ScaleBlock(re, im, math.Sin(phi))
	vecmath.AddBlockInPlace(out, re)
	return out, nil
}

// Sum returns the in-phase sum of bins over w at deg degrees.
func Sum(bins []complex128, deg int, w cursor.Window) (float64, error) {
	if len(bins) == 0 {
		return 0, ErrNoSpectrum
	}
	w = w.Clamp(len(bins))
	s := spectrum.Sum(bins, w.Lo, w.Hi)
	phi := Radians(deg)
	return real(s)*math.Cos(phi) + imag(s)*math.Sin(phi), nil
}

// Intensity returns the reported peak intensity, [IntensityScale] times the
// in-phase sum over w.
func Intensity(bins []complex128, deg int, w cursor.Window) (float64, error) {
	s, err := Sum(bins, deg, w)
	if err != nil {
		return 0, err
	}
	return IntensityScale * s, nil
}
