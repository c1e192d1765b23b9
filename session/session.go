package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/cwbudde/algo-nsor/acquisition"
	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/dsp/cursor"
	"github.com/cwbudde/algo-nsor/dsp/phase"
	"github.com/cwbudde/algo-nsor/dsp/spectrum"
	"github.com/cwbudde/algo-nsor/dsp/window"
	"github.com/cwbudde/algo-nsor/dsp/zerofill"
	"github.com/cwbudde/algo-nsor/internal/task"
	frequencystats "github.com/cwbudde/algo-nsor/stats/frequency"
)

// ErrNoData is wrapped by every error caused by an action that needs data
// which has not been loaded or computed yet.
var ErrNoData = errors.New("no original data available")

// Series is an x axis with its values.
type Series struct {
	Axis   []float64
	Values []float64
}

// Len returns the sample count.
func (s Series) Len() int { return len(s.Values) }

// Status is a snapshot of the session for display.
type Status struct {
	Loaded    bool
	Samples   int
	Dt        float64
	FMax      float64
	Bins      int
	FillSize  int
	ZeroFill  zerofill.Factor
	Phase     phase.State
	Peak      float64
	Intensity float64
	Pending   int
}

// Option configures a [Session].
type Option func(*Session)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers bounds the number of concurrent transforms.
func WithWorkers(n int) Option {
	return func(s *Session) {
		s.workers = n
	}
}

// WithNormalization selects the spectrum scaling.
func WithNormalization(n spectrum.Normalization) Option {
	return func(s *Session) {
		s.norm = n
	}
}

// Apodization selects the function multiplied into the time window before
// zero-fill. The zero value applies none.
type Apodization struct {
	Type           window.Type
	LineBroadening float64
	Alpha          float64
}

// WithApodization sets the apodization applied before every transform.
func WithApodization(a Apodization) Option {
	return func(s *Session) {
		s.apod = a
	}
}

// Session is the document state. The zero value is not usable; call [New].
type Session struct {
	logger  logging.Logger
	workers int
	norm    spectrum.Normalization
	apod    Apodization
	runner  *task.Runner[*spectrum.Result]
	pending []*task.Handle[*spectrum.Result]

	raw     Series
	working []float64
	dt      float64
	fMax    float64

	cursors map[axis.Domain]cursor.Pair
	timeWin cursor.Window
	freqWin cursor.Window

	fill     zerofill.Factor
	fillSize int
	state    phase.State

	spec   *spectrum.Result
	phased []float64
	peak   float64
}

// New returns an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		workers: 1,
		norm:    spectrum.NormAmplitude,
		cursors: make(map[axis.Domain]cursor.Pair),
		fill:    zerofill.X1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = logging.NewDefaultLogger()
	}
	s.logger = s.logger.WithFields(logging.Fields{"component": "session"})
	s.runner = task.NewRunner[*spectrum.Result](s.workers)
	return s
}

// Close waits for outstanding transforms. Their results are discarded.
func (s *Session) Close() {
	s.runner.Close()
	s.pending = nil
}

// Loaded reports whether an acquisition has been loaded.
func (s *Session) Loaded() bool { return s.raw.Len() > 0 }

// Load replaces all session data with acq and submits a transform of the
// full working signal.
func (s *Session) Load(acq *acquisition.Acquisition) error {
	if acq == nil {
		return fmt.Errorf("%w: nil acquisition", ErrNoData)
	}
	fMax, err := acq.FMax()
	if err != nil {
		return fmt.Errorf("load acquisition: %w", err)
	}
	dt, _ := acq.Dt()

	s.raw = Series{
		Axis:   append([]float64(nil), acq.X...),
		Values: append([]float64(nil), acq.Y...),
	}
	s.working = append([]float64(nil), s.raw.Values...)
	s.dt = dt
	s.fMax = fMax
	s.cursors = make(map[axis.Domain]cursor.Pair)
	s.timeWin = cursor.Full(len(s.working))
	s.freqWin = cursor.Window{}
	s.fill = zerofill.X1
	s.fillSize = len(s.working)
	s.state.Reset()
	s.spec = nil
	s.phased = nil
	s.peak = 0

	s.logger.Info("Acquisition loaded", logging.Fields{
		"samples": len(s.working),
		"dt":      dt,
		"f_max":   fMax,
	})
	return s.submitApodized("load", s.working)
}

// Renew restores the working signal from the raw series, resets zero-fill to
// x1 and recomputes the spectrum. Cursors and phase are kept.
func (s *Session) Renew() error {
	if !s.Loaded() {
		return fmt.Errorf("renew: %w", ErrNoData)
	}
	s.working = append(s.working[:0], s.raw.Values...)
	s.fill = zerofill.X1
	s.fillSize = len(s.working)
	return s.submitApodized("renew", s.working)
}

// Time returns the working time series.
func (s *Session) Time() Series {
	return Series{Axis: s.raw.Axis, Values: s.working}
}

// Raw returns the series as loaded.
func (s *Session) Raw() Series { return s.raw }

// Spectrum returns the most recently applied transform, or nil.
func (s *Session) Spectrum() *spectrum.Result { return s.spec }

// ZeroFillFactor returns the current zero-fill selection.
func (s *Session) ZeroFillFactor() zerofill.Factor { return s.fill }

// Phase returns the current phase state.
func (s *Session) Phase() phase.State { return s.state }

// Cursor returns the stored cursor pair of d.
func (s *Session) Cursor(d axis.Domain) (cursor.Pair, bool) {
	p, ok := s.cursors[d]
	return p, ok
}

// Window returns the index window currently derived for d.
func (s *Session) Window(d axis.Domain) cursor.Window {
	if d == axis.Time {
		return s.timeWin
	}
	return s.freqWin
}

// SetCursor stores a cursor pair for d. A time cursor re-runs zero-fill on
// the selected window. A frequency cursor updates the peak intensity. A
// failed call leaves the stored cursors unchanged.
func (s *Session) SetCursor(d axis.Domain, a, b float64) error {
	p := cursor.NewPair(a, b)

	switch d {
	case axis.Time:
		if !s.Loaded() {
			return fmt.Errorf("time cursor: %w", ErrNoData)
		}
		w, err := cursor.LookupPair(s.raw.Axis, p)
		if err != nil {
			return err
		}
		s.cursors[d] = p
		s.timeWin = w
		return s.ZeroFill(s.fill)
	case axis.Frequency:
		if s.spec == nil {
			return fmt.Errorf("frequency cursor: %w", ErrNoData)
		}
		s.cursors[d] = p
		return s.refreshFrequencyWindow()
	default:
		return fmt.Errorf("unknown domain %v", d)
	}
}

// ZeroFill pads the time window to the target length of f and submits a
// transform. Without data the factor is reset to x1.
func (s *Session) ZeroFill(f zerofill.Factor) error {
	if !s.Loaded() {
		s.fill = zerofill.X1
		return fmt.Errorf("%w: %w", ErrNoData, zerofill.ErrNoSignal)
	}
	w := s.timeWin.Clamp(len(s.working))
	seg, err := s.apodize(s.working[w.Lo:w.Hi])
	if err != nil {
		return err
	}
	padded, err := zerofill.Pad(seg, len(s.working), f)
	if err != nil {
		return err
	}
	s.fill = f
	s.fillSize = len(padded)
	s.logger.Debug("Zero-fill applied", logging.Fields{
		"factor": f.String(),
		"window": []int{w.Lo, w.Hi},
		"length": len(padded),
	})
	s.submit("zerofill "+f.String(), padded)
	return nil
}

// SetZerothPhase stores deg and returns the resulting intensity over the
// frequency window.
func (s *Session) SetZerothPhase(deg int) (float64, error) {
	s.state.SetZeroth(deg)
	s.phased = nil
	return s.Intensity()
}

// SetFirstOrder enables or disables the first-order angle.
func (s *Session) SetFirstOrder(on bool) {
	s.state.EnableFirst(on)
}

// SetFirstPhase stores the first-order angle. It does not affect the
// phased spectrum.
func (s *Session) SetFirstPhase(deg int) {
	s.state.SetFirst(deg)
}

// AutoPhase searches the zeroth-order angle that maximizes the in-phase sum
// over the frequency window, stores it and returns it with its intensity.
func (s *Session) AutoPhase() (int, float64, error) {
	if s.spec == nil {
		return 0, 0, fmt.Errorf("auto phase: %w", ErrNoData)
	}
	deg, err := phase.Auto(s.spec.Bins, s.freqWin)
	if err != nil {
		return 0, 0, err
	}
	intensity, err := s.SetZerothPhase(deg)
	if err != nil {
		return 0, 0, err
	}
	s.logger.Info("Auto phase complete", logging.Fields{
		"angle":     deg,
		"intensity": intensity,
	})
	return deg, intensity, nil
}

// Intensity returns 2x the in-phase sum over the frequency window at the
// current zeroth-order angle.
func (s *Session) Intensity() (float64, error) {
	if s.spec == nil {
		return 0, fmt.Errorf("intensity: %w", ErrNoData)
	}
	return phase.Intensity(s.spec.Bins, s.state.Zeroth, s.freqWin)
}

// Phased returns the phase-corrected real spectrum.
func (s *Session) Phased() (Series, error) {
	if s.spec == nil {
		return Series{}, fmt.Errorf("phased spectrum: %w", ErrNoData)
	}
	if s.phased == nil {
		p, err := phase.Correct(s.spec.Bins, s.state.Zeroth)
		if err != nil {
			return Series{}, err
		}
		s.phased = p
	}
	return Series{Axis: s.spec.Axis, Values: s.phased}, nil
}

// PeakIntensity returns the phase-independent magnitude of the summed bins
// inside the frequency window.
func (s *Session) PeakIntensity() float64 { return s.peak }

// Busy reports whether transforms are outstanding.
func (s *Session) Busy() bool { return len(s.pending) > 0 }

// Poll applies every finished transform without blocking and returns how
// many were applied. Failed transforms are logged and joined into the error.
func (s *Session) Poll() (int, error) {
	var (
		applied int
		errs    []error
		keep    = s.pending[:0]
	)
	for _, h := range s.pending {
		out, ok := h.Poll()
		if !ok {
			keep = append(keep, h)
			continue
		}
		if out.Err != nil {
			s.logger.Error(out.Err, "Transform failed", logging.Fields{
				"job": h.Name,
				"id":  h.ID.String(),
			})
			errs = append(errs, out.Err)
			continue
		}
		if err := s.apply(h, out.Value); err != nil {
			errs = append(errs, err)
		}
		applied++
	}
	clear(s.pending[len(keep):])
	s.pending = keep
	return applied, errors.Join(errs...)
}

// Await blocks until every outstanding transform has been applied or ctx is
// done.
func (s *Session) Await(ctx context.Context) error {
	var errs []error
	for {
		if _, err := s.Poll(); err != nil {
			errs = append(errs, err)
		}
		if !s.Busy() {
			return errors.Join(errs...)
		}
		select {
		case <-s.runner.Notify():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Status returns a display snapshot.
func (s *Session) Status() Status {
	st := Status{
		Loaded:   s.Loaded(),
		Samples:  s.raw.Len(),
		Dt:       s.dt,
		FMax:     s.fMax,
		FillSize: s.fillSize,
		ZeroFill: s.fill,
		Phase:    s.state,
		Peak:     s.peak,
		Pending:  len(s.pending),
	}
	if s.spec != nil {
		st.Bins = s.spec.Len()
		st.Intensity, _ = s.Intensity()
	}
	return st
}

func (s *Session) apodize(samples []float64) ([]float64, error) {
	if s.apod.Type == window.TypeNone || len(samples) == 0 {
		return samples, nil
	}
	out, err := window.Apply(s.apod.Type, samples, s.dt,
		window.WithLineBroadening(s.apod.LineBroadening),
		window.WithAlpha(s.apod.Alpha))
	if err != nil {
		return nil, fmt.Errorf("apodization: %w", err)
	}
	return out, nil
}

func (s *Session) submitApodized(name string, samples []float64) error {
	in, err := s.apodize(samples)
	if err != nil {
		return err
	}
	s.submit(name, in)
	return nil
}

func (s *Session) submit(name string, samples []float64) {
	in := append([]float64(nil), samples...)
	fMax, norm := s.fMax, s.norm
	h, err := s.runner.Submit(name, func() (*spectrum.Result, error) {
		return spectrum.Transform(in, fMax, spectrum.WithNormalization(norm))
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit transform", logging.Fields{"job": name})
		return
	}
	s.logger.Debug("Transform submitted", logging.Fields{
		"job":     name,
		"id":      h.ID.String(),
		"seq":     h.Seq,
		"samples": len(in),
	})
	s.pending = append(s.pending, h)
}

func (s *Session) apply(h *task.Handle[*spectrum.Result], r *spectrum.Result) error {
	s.spec = r
	s.phased = nil
	s.logger.Debug("Transform applied", logging.Fields{
		"job":  h.Name,
		"seq":  h.Seq,
		"bins": r.Len(),
	})
	return s.refreshFrequencyWindow()
}

// refreshFrequencyWindow re-derives the frequency window from the stored
// cursor, or the full spectrum when none is set.
func (s *Session) refreshFrequencyWindow() error {
	if s.spec == nil {
		return nil
	}
	if p, ok := s.cursors[axis.Frequency]; ok {
		w, err := cursor.LookupPair(s.spec.Axis, p)
		if err != nil {
			return err
		}
		s.freqWin = w
	} else {
		s.freqWin = cursor.Full(s.spec.Len())
	}
	s.peak = frequencystats.PeakIntensity(s.spec.Bins, s.freqWin)
	return nil
}
