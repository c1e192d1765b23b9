package phase

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-nsor/dsp/cursor"
	"github.com/cwbudde/algo-nsor/dsp/spectrum"
)

// Steps is the number of integer angles evaluated by [Auto].
const Steps = 360

// Scan returns the in-phase sum over w for every angle 0..359.
func Scan(bins []complex128, w cursor.Window) ([]float64, error) {
	if len(bins) == 0 {
		return nil, ErrNoSpectrum
	}
	w = w.Clamp(len(bins))

	re := make([]float64, w.Len())
	im := make([]float64, w.Len())
	spectrum.Split(re, im, bins[w.Lo:w.Hi])
	sumRe := floats.Sum(re)
	sumIm := floats.Sum(im)

	out := make([]float64, Steps)
	for deg := range out {
		phi := Radians(deg)
		out[deg] = math.Cos(phi)*sumRe + math.Sin(phi)*sumIm
	}
	return out, nil
}

// Auto returns the angle in 0..359 that maximizes the in-phase sum over w.
// The first maximum in ascending angle order wins.
func Auto(bins []complex128, w cursor.Window) (int, error) {
	sums, err := Scan(bins, w)
	if err != nil {
		return 0, err
	}
	return floats.MaxIdx(sums), nil
}
