// Package signal synthesizes NSOR-like test acquisitions: phased cosines
// with optional exponential decay and deterministic noise.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(rate float64) Option {
	return func(g *Generator) {
		g.sampleRate = rate
	}
}

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator. The default sample rate is 1 kHz.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{sampleRate: 1000, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

func (g *Generator) check(what string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", what, samples)
	}
	if g.sampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", what, g.sampleRate)
	}
	return nil
}

// TimeAxis returns sample timestamps in seconds starting at 0.
func (g *Generator) TimeAxis(samples int) ([]float64, error) {
	if err := g.check("time axis", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	dt := 1 / g.sampleRate
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out, nil
}

// Sinusoid generates amplitude*cos(2*pi*freqHz*t + phaseDeg). When freqHz
// falls on a transform bin the amplitude-normalized spectrum at that bin is
// amplitude*e^(i*phaseDeg).
func (g *Generator) Sinusoid(freqHz, phaseDeg, amplitude float64, samples int) ([]float64, error) {
	return g.Decay(freqHz, phaseDeg, amplitude, 0, samples)
}

// Decay generates a sinusoid with exponential envelope exp(-t/tau). tau <= 0
// disables the envelope.
func (g *Generator) Decay(freqHz, phaseDeg, amplitude, tau float64, samples int) ([]float64, error) {
	if err := g.check("sinusoid", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	phi := phaseDeg * math.Pi / 180
	for i := range out {
		a := amplitude
		if tau > 0 {
			a *= math.Exp(-float64(i) / g.sampleRate / tau)
		}
		out[i] = a * math.Cos(step*float64(i)+phi)
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// AddNoise adds deterministic white noise to data in place.
func (g *Generator) AddNoise(data []float64, amplitude float64) error {
	if len(data) == 0 || amplitude == 0 {
		return nil
	}
	noise, err := g.WhiteNoise(amplitude, len(data))
	if err != nil {
		return err
	}
	vecmath.AddBlockInPlace(data, noise)
	return nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}
	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)
	return out, nil
}
