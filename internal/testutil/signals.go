package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// Cosine generates amplitude*cos(2*pi*freqHz*t + phaseDeg) sampled at
// sampleRate. On an exact bin its amplitude-normalized spectrum is
// amplitude*e^(i*phaseDeg).
func Cosine(freqHz, phaseDeg, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	phi := phaseDeg * math.Pi / 180
	for i := range out {
		out[i] = amplitude * math.Cos(step*float64(i)+phi)
	}
	return out
}

// TimeAxis returns length timestamps starting at 0 with spacing 1/sampleRate.
func TimeAxis(sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i) / sampleRate
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PhasedBins returns a spectrum whose every bin is weight[i]*e^(i*phaseDeg).
func PhasedBins(phaseDeg float64, weights []float64) []complex128 {
	out := make([]complex128, len(weights))
	rot := cmplx.Rect(1, phaseDeg*math.Pi/180)
	for i, w := range weights {
		out[i] = complex(w, 0) * rot
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
