// Package time summarizes a sampled time-domain acquisition.
package time

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned for a signal without samples.
	ErrEmpty = errors.New("time stats: empty signal")
	// ErrLengthMismatch is returned when axis and signal lengths differ.
	ErrLengthMismatch = errors.New("time stats: axis and signal lengths differ")
)

// Stats holds time-domain statistics of an acquisition.
type Stats struct {
	Length   int
	Duration float64 // last minus first axis value
	DC       float64 // mean
	StdDev   float64
	RMS      float64
	Energy   float64 // sum of squares
	Max      float64
	Min      float64
	Peak     float64 // max(|max|, |min|)
	PeakTime float64
	// CrestFactor is Peak/RMS, 0 for a silent signal.
	CrestFactor   float64
	ZeroCrossings int
	// CrossingFreq estimates the dominant frequency from the DC-removed zero
	// crossings: crossings / (2 * Duration).
	CrossingFreq float64
	// DecayRatio is the RMS of the last quarter over the RMS of the first.
	DecayRatio float64
}

// Calculate computes [Stats] of signal sampled at the times in axis.
func Calculate(axis, signal []float64) (Stats, error) {
	n := len(signal)
	if n == 0 {
		return Stats{}, ErrEmpty
	}
	if len(axis) != n {
		return Stats{}, ErrLengthMismatch
	}

	s := Stats{Length: n}
	s.Duration = axis[n-1] - axis[0]
	s.DC, s.StdDev = stat.PopMeanStdDev(signal, nil)
	s.Energy = floats.Dot(signal, signal)
	s.RMS = math.Sqrt(s.Energy / float64(n))

	maxIdx, minIdx := floats.MaxIdx(signal), floats.MinIdx(signal)
	s.Max, s.Min = signal[maxIdx], signal[minIdx]
	peakIdx := maxIdx
	if math.Abs(s.Min) > math.Abs(s.Max) {
		peakIdx = minIdx
	}
	s.Peak = math.Abs(signal[peakIdx])
	s.PeakTime = axis[peakIdx]
	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	s.ZeroCrossings = crossings(signal, s.DC)
	if s.Duration > 0 {
		s.CrossingFreq = float64(s.ZeroCrossings) / (2 * s.Duration)
	}
	s.DecayRatio = decayRatio(signal)
	return s, nil
}

// crossings counts sign changes of signal around level. Samples equal to
// level do not start or end a crossing.
func crossings(signal []float64, level float64) int {
	count := 0
	prev := 0.0
	for _, v := range signal {
		d := v - level
		if d == 0 {
			continue
		}
		if prev != 0 && (d > 0) != (prev > 0) {
			count++
		}
		prev = d
	}
	return count
}

func decayRatio(signal []float64) float64 {
	q := len(signal) / 4
	if q == 0 {
		return 0
	}
	head, tail := signal[:q], signal[len(signal)-q:]
	h := floats.Norm(head, 2)
	if h == 0 {
		return 0
	}
	return floats.Norm(tail, 2) / h
}
