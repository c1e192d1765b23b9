package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type selects the apodization function.
type Type int

const (
	TypeNone Type = iota
	// TypeExponential is exp(-pi*lb*t).
	TypeExponential
	// TypeGaussian is exp(-(pi*lb*t)^2 / (4 ln 2)).
	TypeGaussian
	// TypeHann is the symmetric Hann taper.
	TypeHann
	// TypeHalfHann falls from 1 at the first sample to 0 at the last.
	TypeHalfHann
	// TypeTukey is flat with cosine edges of total fraction alpha.
	TypeTukey
)

var names = map[Type]string{
	TypeNone:        "none",
	TypeExponential: "exponential",
	TypeGaussian:    "gaussian",
	TypeHann:        "hann",
	TypeHalfHann:    "half-hann",
	TypeTukey:       "tukey",
}

// Types lists every apodization type.
var Types = []Type{TypeNone, TypeExponential, TypeGaussian, TypeHann, TypeHalfHann, TypeTukey}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a name such as "exponential" to a [Type]. The empty string
// selects [TypeNone].
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TypeNone, nil
	}
	for t, n := range names {
		if n == s {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	lb    float64
	alpha float64
}

func defaultConfig() config {
	return config{lb: 1, alpha: 0.5}
}

// WithLineBroadening sets the line broadening in Hz for exponential and
// Gaussian apodization. Negative values are ignored.
func WithLineBroadening(hz float64) Option {
	return func(c *config) {
		if hz >= 0 {
			c.lb = hz
		}
	}
}

// WithAlpha sets the tapered fraction of the Tukey window, clamped to [0, 1].
func WithAlpha(v float64) Option {
	return func(c *config) {
		c.alpha = math.Max(0, math.Min(1, v))
	}
}

// Generate returns length coefficients for samples spaced dt seconds apart.
func Generate(t Type, length int, dt float64, opts ...Option) ([]float64, error) {
	if err := validate(length, dt); err != nil {
		return nil, err
	}
	if _, ok := names[t]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = eval(t, float64(i)*dt, position(i, length), cfg)
	}
	return out, nil
}

// Apply returns samples multiplied by the selected apodization. samples is
// not modified.
func Apply(t Type, samples []float64, dt float64, opts ...Option) ([]float64, error) {
	if t == TypeNone {
		return append([]float64(nil), samples...), nil
	}
	coeffs, err := Generate(t, len(samples), dt, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// position maps sample n to [0, 1].
func position(n, size int) float64 {
	if size <= 1 {
		return 0
	}
	return float64(n) / float64(size-1)
}

func eval(t Type, sec, x float64, cfg config) float64 {
	switch t {
	case TypeExponential:
		return math.Exp(-math.Pi * cfg.lb * sec)
	case TypeGaussian:
		a := math.Pi * cfg.lb * sec
		return math.Exp(-a * a / (4 * math.Ln2))
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHalfHann:
		c := math.Cos(math.Pi * x / 2)
		return c * c
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	default:
		return 1
	}
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}
	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(x/a-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*((x-1)/a+1)))
	}
}
