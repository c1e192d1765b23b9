package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrEmptyInput is returned when a transform is requested for zero samples.
var ErrEmptyInput = errors.New("spectrum input must not be empty")

// Normalization selects the scaling applied to the forward transform.
type Normalization int

const (
	// NormAmplitude scales every bin by 2/N so that a sinusoid of amplitude A
	// that falls on a bin reports |X[k]| = A.
	NormAmplitude Normalization = iota
	// NormOrtho scales every bin by 1/sqrt(N).
	NormOrtho
)

// String returns the configuration name of the normalization.
func (n Normalization) String() string {
	switch n {
	case NormAmplitude:
		return "amplitude"
	case NormOrtho:
		return "ortho"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

// ParseNormalization maps "amplitude" or "ortho" to a [Normalization].
func ParseNormalization(s string) (Normalization, error) {
	switch s {
	case "", "amplitude":
		return NormAmplitude, nil
	case "ortho":
		return NormOrtho, nil
	default:
		return 0, fmt.Errorf("unknown normalization %q", s)
	}
}

func (n Normalization) scale(size int) float64 {
	if n == NormOrtho {
		return 1 / math.Sqrt(float64(size))
	}
	return 2 / float64(size)
}

// Lengths below minPlanSize always use the mixed-radix path.
const minPlanSize = 16

// Option configures [Transform].
type Option func(*config)

type config struct {
	norm Normalization
}

// WithNormalization selects the bin scaling. The default is [NormAmplitude].
func WithNormalization(n Normalization) Option {
	return func(cfg *config) {
		cfg.norm = n
	}
}

// Result is a one-sided spectrum and its frequency axis.
type Result struct {
	// Axis holds the bin frequencies, linearly spaced from 0 to the maximum
	// frequency inclusive.
	Axis []float64
	// Bins holds the normalized complex amplitudes, len(Bins) == len(Axis).
	Bins []complex128
	// Size is the number of time-domain samples that were transformed.
	Size int
	Norm Normalization
}

// Len returns the bin count.
func (r *Result) Len() int { return len(r.Bins) }

// Transform computes the normalized real-input DFT of samples.
//
// The output has len(samples)/2+1 bins covering 0..fMax. samples is not
// modified.
func Transform(samples []float64, fMax float64, opts ...Option) (*Result, error) {
	n := len(samples)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	cfg := config{norm: NormAmplitude}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var (
		bins []complex128
		err  error
	)
	if n >= minPlanSize && isPowerOf2(n) {
		bins, err = forwardPlanned(samples)
	} else {
		bins = forwardMixedRadix(samples)
	}
	if err != nil {
		return nil, err
	}

	s := complex(cfg.norm.scale(n), 0)
	for i := range bins {
		bins[i] *= s
	}

	return &Result{
		Axis: FrequencyAxis(len(bins), fMax),
		Bins: bins,
		Size: n,
		Norm: cfg.norm,
	}, nil
}

// FrequencyAxis returns count points spaced linearly over [0, fMax].
// A single point is placed at 0.
func FrequencyAxis(count int, fMax float64) []float64 {
	if count <= 0 {
		return nil
	}
	axis := make([]float64, count)
	if count == 1 {
		return axis
	}
	step := fMax / float64(count-1)
	for i := range axis {
		axis[i] = float64(i) * step
	}
	axis[count-1] = fMax
	return axis
}

// forwardPlanned runs a complex algo-fft plan on the real input and keeps the
// non-negative-frequency half.
func forwardPlanned(samples []float64) ([]complex128, error) {
	n := len(samples)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range samples {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	bins := make([]complex128, n/2+1)
	copy(bins, out)
	return bins, nil
}

func forwardMixedRadix(samples []float64) []complex128 {
	fft := fourier.NewFFT(len(samples))
	return fft.Coefficients(nil, samples)
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
