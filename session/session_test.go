package session

import (
	"context"
	"errors"
	"math"
	"math/cmplx"
	"testing"
	"time"

	"github.com/cwbudde/algo-nsor/acquisition"
	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/dsp/window"
	"github.com/cwbudde/algo-nsor/dsp/zerofill"
	"github.com/cwbudde/algo-nsor/internal/testutil"
)

const (
	testRate  = 8192.0
	testSize  = 8192
	testFreq  = 1000.0
	testPhase = 40.0
)

func newAcquisition(t *testing.T) *acquisition.Acquisition {
	t.Helper()
	acq, err := acquisition.New(
		testutil.TimeAxis(testRate, testSize),
		testutil.Cosine(testFreq, testPhase, testRate, 1, testSize),
	)
	if err != nil {
		t.Fatalf("acquisition.New error = %v", err)
	}
	return acq
}

func await(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Await(ctx); err != nil {
		t.Fatalf("Await error = %v", err)
	}
}

func loaded(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := New(opts...)
	t.Cleanup(s.Close)
	if err := s.Load(newAcquisition(t)); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	await(t, s)
	return s
}

func TestActionsWithoutData(t *testing.T) {
	s := New()
	defer s.Close()

	if err := s.Renew(); !errors.Is(err, ErrNoData) {
		t.Errorf("Renew error = %v, want ErrNoData", err)
	}
	if _, err := s.SetZerothPhase(10); !errors.Is(err, ErrNoData) {
		t.Errorf("SetZerothPhase error = %v, want ErrNoData", err)
	}
	if _, _, err := s.AutoPhase(); !errors.Is(err, ErrNoData) {
		t.Errorf("AutoPhase error = %v, want ErrNoData", err)
	}
	if err := s.SetCursor(axis.Frequency, 1, 2); !errors.Is(err, ErrNoData) {
		t.Errorf("SetCursor(freq) error = %v, want ErrNoData", err)
	}
	if _, err := s.Phased(); !errors.Is(err, ErrNoData) {
		t.Errorf("Phased error = %v, want ErrNoData", err)
	}
}

func TestZeroFillWithoutDataResetsFactor(t *testing.T) {
	s := New()
	defer s.Close()

	err := s.ZeroFill(zerofill.X4)
	if !errors.Is(err, ErrNoData) || !errors.Is(err, zerofill.ErrNoSignal) {
		t.Fatalf("ZeroFill error = %v", err)
	}
	if s.ZeroFillFactor() != zerofill.X1 {
		t.Fatalf("factor = %v, want x1", s.ZeroFillFactor())
	}
}

func TestLoadRejectsShortAcquisition(t *testing.T) {
	s := New()
	defer s.Close()

	acq, _ := acquisition.New([]float64{0}, []float64{1})
	if err := s.Load(acq); !errors.Is(err, acquisition.ErrTooShort) {
		t.Fatalf("Load error = %v, want ErrTooShort", err)
	}
}

func TestEndToEndRecoversFrequencyAndPhase(t *testing.T) {
	s := loaded(t)

	st := s.Status()
	if math.Abs(st.FMax-testRate/2) > 1e-6 {
		t.Fatalf("FMax = %v, want %v", st.FMax, testRate/2)
	}
	if st.Bins != testSize/2+1 {
		t.Fatalf("Bins = %d, want %d", st.Bins, testSize/2+1)
	}

	if err := s.SetCursor(axis.Frequency, testFreq-2, testFreq+2); err != nil {
		t.Fatalf("SetCursor error = %v", err)
	}
	if math.Abs(s.PeakIntensity()-1) > 1e-9 {
		t.Fatalf("PeakIntensity = %v, want 1", s.PeakIntensity())
	}

	deg, intensity, err := s.AutoPhase()
	if err != nil {
		t.Fatalf("AutoPhase error = %v", err)
	}
	if deg != int(testPhase) {
		t.Fatalf("AutoPhase = %d, want %d", deg, int(testPhase))
	}
	if math.Abs(intensity-2) > 1e-9 {
		t.Fatalf("intensity = %v, want 2", intensity)
	}

	phased, err := s.Phased()
	if err != nil {
		t.Fatalf("Phased error = %v", err)
	}
	peak := 0
	for i, v := range phased.Values {
		if v > phased.Values[peak] {
			peak = i
		}
	}
	if math.Abs(phased.Axis[peak]-testFreq) > 1e-6 {
		t.Fatalf("phased peak at %v Hz, want %v", phased.Axis[peak], testFreq)
	}
}

func TestSetZerothPhaseWraps(t *testing.T) {
	s := loaded(t)
	if _, err := s.SetZerothPhase(400); err != nil {
		t.Fatalf("SetZerothPhase error = %v", err)
	}
	if got := s.Phase().Zeroth; got != 40 {
		t.Fatalf("Zeroth = %d, want 40", got)
	}
}

func TestFirstOrderDoesNotAffectIntensity(t *testing.T) {
	s := loaded(t)
	before, err := s.SetZerothPhase(15)
	if err != nil {
		t.Fatalf("SetZerothPhase error = %v", err)
	}
	s.SetFirstOrder(true)
	s.SetFirstPhase(123)
	if s.Phase().First != 123 {
		t.Fatalf("First = %d, want 123", s.Phase().First)
	}
	after, err := s.Intensity()
	if err != nil {
		t.Fatalf("Intensity error = %v", err)
	}
	if before != after {
		t.Fatalf("intensity changed from %v to %v", before, after)
	}
	s.SetFirstOrder(false)
	if s.Phase().First != 0 {
		t.Fatalf("First = %d after disable, want 0", s.Phase().First)
	}
}

func TestZeroFillLengths(t *testing.T) {
	s := loaded(t)
	tests := []struct {
		f    zerofill.Factor
		bins int
	}{
		{zerofill.X1, testSize/2 + 1},
		{zerofill.X2, testSize + 1},
		{zerofill.X4, 4*testSize + 1},
	}
	for _, tt := range tests {
		if err := s.ZeroFill(tt.f); err != nil {
			t.Fatalf("ZeroFill(%v) error = %v", tt.f, err)
		}
		await(t, s)
		if got := s.Spectrum().Len(); got != tt.bins {
			t.Fatalf("ZeroFill(%v) bins = %d, want %d", tt.f, got, tt.bins)
		}
		if got := s.Spectrum().Axis[s.Spectrum().Len()-1]; math.Abs(got-testRate/2) > 1e-9 {
			t.Fatalf("ZeroFill(%v) last axis = %v", tt.f, got)
		}
	}
}

func TestTimeCursorWindowsBeforeZeroFill(t *testing.T) {
	s := loaded(t)
	if err := s.ZeroFill(zerofill.X2); err != nil {
		t.Fatalf("ZeroFill error = %v", err)
	}
	await(t, s)

	// Select the first half second.
	if err := s.SetCursor(axis.Time, 0.5, 0); err != nil {
		t.Fatalf("SetCursor error = %v", err)
	}
	await(t, s)

	w := s.Window(axis.Time)
	if w.Lo != 0 || w.Hi != testSize/2 {
		t.Fatalf("time window = %+v", w)
	}
	// Target length still derives from the full signal.
	if got := s.Spectrum().Size; got != 2*testSize {
		t.Fatalf("transform size = %d, want %d", got, 2*testSize)
	}
	p, ok := s.Cursor(axis.Time)
	if !ok || p.Lower != 0 || p.Upper != 0.5 {
		t.Fatalf("cursor = %+v, %v", p, ok)
	}
}

func TestRenewResetsZeroFill(t *testing.T) {
	s := loaded(t)
	if err := s.ZeroFill(zerofill.X2); err != nil {
		t.Fatalf("ZeroFill error = %v", err)
	}
	await(t, s)
	if err := s.Renew(); err != nil {
		t.Fatalf("Renew error = %v", err)
	}
	if s.ZeroFillFactor() != zerofill.X1 {
		t.Fatalf("factor = %v after renew", s.ZeroFillFactor())
	}
	await(t, s)
	if got := s.Spectrum().Len(); got != testSize/2+1 {
		t.Fatalf("bins after renew = %d", got)
	}
}

func TestFrequencyCursorSurvivesNewSpectrum(t *testing.T) {
	s := loaded(t)
	if err := s.SetCursor(axis.Frequency, testFreq+2, testFreq-2); err != nil {
		t.Fatalf("SetCursor error = %v", err)
	}
	before := s.Window(axis.Frequency)

	if err := s.ZeroFill(zerofill.X2); err != nil {
		t.Fatalf("ZeroFill error = %v", err)
	}
	await(t, s)

	after := s.Window(axis.Frequency)
	if after.Lo != 2*before.Lo || after.Hi != 2*before.Hi {
		t.Fatalf("window %+v after x2, was %+v", after, before)
	}
}

func TestBusyUntilPolled(t *testing.T) {
	s := New()
	defer s.Close()
	if err := s.Load(newAcquisition(t)); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if !s.Busy() {
		t.Fatal("Busy = false right after Load")
	}
	await(t, s)
	if s.Busy() {
		t.Fatal("Busy = true after Await")
	}
}

func TestApodizationKeepsPhase(t *testing.T) {
	s := loaded(t, WithApodization(Apodization{Type: window.TypeExponential, LineBroadening: 1}))

	bin := s.Spectrum().Bins[1000]
	if got := cmplx.Abs(bin); got >= 0.5 || got < 0.2 {
		t.Fatalf("|X[1000]| = %v, want damped amplitude near 0.3", got)
	}
	deg := cmplx.Phase(bin) * 180 / math.Pi
	if math.Abs(deg-testPhase) > 1 {
		t.Fatalf("phase at peak = %v, want %v", deg, testPhase)
	}
	if raw := s.Raw().Values; raw[len(raw)-1] != s.Time().Values[len(raw)-1] {
		t.Fatal("apodization modified the working signal")
	}
}

func TestFailedCursorIsNotStored(t *testing.T) {
	s := New()
	defer s.Close()

	for _, d := range axis.Domains {
		if err := s.SetCursor(d, 0.1, 0.2); !errors.Is(err, ErrNoData) {
			t.Fatalf("SetCursor(%v) error = %v, want ErrNoData", d, err)
		}
		if p, ok := s.Cursor(d); ok {
			t.Fatalf("cursor %v stored after failed call: %+v", d, p)
		}
	}
}

func TestOverlappingTransformsLastArrivalWins(t *testing.T) {
	tests := []struct {
		name  string
		order []zerofill.Factor
		bins  int
	}{
		{"x2 then x4", []zerofill.Factor{zerofill.X2, zerofill.X4}, 32769},
		{"x4 then x2", []zerofill.Factor{zerofill.X4, zerofill.X2}, 8193},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(t, WithWorkers(1))
			for _, f := range tt.order {
				if err := s.ZeroFill(f); err != nil {
					t.Fatalf("ZeroFill(%v) error = %v", f, err)
				}
			}
			if got := s.Status().Pending; got != len(tt.order) {
				t.Fatalf("pending = %d, want %d", got, len(tt.order))
			}
			await(t, s)
			if got := s.Spectrum().Len(); got != tt.bins {
				t.Fatalf("bins = %d, want %d from the last submission", got, tt.bins)
			}
			if got := s.ZeroFillFactor(); got != tt.order[len(tt.order)-1] {
				t.Fatalf("factor = %v", got)
			}
		})
	}
}
