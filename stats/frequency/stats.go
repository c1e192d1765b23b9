// Package frequency summarizes one-sided spectra against an explicit
// frequency axis.
package frequency

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-nsor/dsp/cursor"
	"github.com/cwbudde/algo-nsor/dsp/spectrum"
)

// ErrLengthMismatch is returned when axis and magnitude lengths differ.
var ErrLengthMismatch = errors.New("frequency axis and magnitude lengths differ")

// Stats holds summary statistics of a magnitude spectrum.
type Stats struct {
	BinCount int
	Sum      float64 // sum of magnitudes
	Energy   float64 // sum of squared magnitudes
	Max      float64
	MaxBin   int
	PeakFreq float64 // axis value at MaxBin
	Average  float64
	// Spectral shape descriptors, all in axis units.
	Centroid  float64
	Spread    float64
	Rolloff   float64 // frequency below which 85% energy lies
	Bandwidth float64 // 3 dB width around the peak
	Flatness  float64 // Wiener entropy, 0..1, DC excluded
}

// Calculate computes the statistics of magnitude over axis. Both slices must
// have the same length.
func Calculate(axis, magnitude []float64) (Stats, error) {
	n := len(magnitude)
	if len(axis) != n {
		return Stats{}, ErrLengthMismatch
	}
	if n == 0 {
		return Stats{}, nil
	}

	var s Stats
	s.BinCount = n
	s.MaxBin = floats.MaxIdx(magnitude)
	s.Max = magnitude[s.MaxBin]
	s.PeakFreq = axis[s.MaxBin]
	s.Sum = floats.Sum(magnitude)
	s.Energy = floats.Dot(magnitude, magnitude)
	s.Average = s.Sum / float64(n)

	s.Centroid = centroid(axis, magnitude, s.Sum)
	s.Spread = spread(axis, magnitude, s.Centroid, s.Sum)
	s.Rolloff = rolloff(axis, magnitude, 0.85, s.Energy)
	s.Bandwidth = bandwidth(axis, magnitude, s.MaxBin)
	s.Flatness = flatness(magnitude)
	return s, nil
}

// FromResult computes the statistics of a transform result's magnitude.
func FromResult(r *spectrum.Result) (Stats, error) {
	return Calculate(r.Axis, spectrum.Magnitude(r.Bins))
}

// PeakIntensity returns |sum(bins[w.Lo:w.Hi])|, the phase-independent peak
// integral shown next to the frequency cursors.
func PeakIntensity(bins []complex128, w cursor.Window) float64 {
	w = w.Clamp(len(bins))
	return cmplx.Abs(spectrum.Sum(bins, w.Lo, w.Hi))
}

// centroid = sum(f_i * |X_i|) / sum(|X_i|)
func centroid(axis, magnitude []float64, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	return floats.Dot(axis, magnitude) / sumMag
}

func spread(axis, magnitude []float64, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		d := axis[i] - cent
		weightedSqSum += d * d * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

func rolloff(axis, magnitude []float64, percent, totalEnergy float64) float64 {
	if totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cum := 0.0
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return axis[i]
		}
	}
	return axis[len(axis)-1]
}

// bandwidth locates the -3 dB points on both sides of peak, interpolating
// linearly between bins.
func bandwidth(axis, magnitude []float64, peak int) float64 {
	n := len(magnitude)
	peakVal := magnitude[peak]
	if n < 2 || peakVal == 0 {
		return 0
	}
	threshold := peakVal / math.Sqrt2

	lower := axis[0]
	for i := peak; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interp(axis[i-1], axis[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}
	upper := axis[n-1]
	for i := peak; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interp(axis[i], axis[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}
	if bw := upper - lower; bw > 0 {
		return bw
	}
	return 0
}

func interp(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}

func flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}
	sumLin, sumLog := 0.0, 0.0
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	bins := float64(n - 1)
	meanLin := sumLin / bins
	if meanLin == 0 {
		return 0
	}
	return math.Exp(sumLog/bins) / meanLin
}
