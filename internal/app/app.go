// Package app is the application controller. It owns the session, reacts to
// user actions and reports back through a [UI].
package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/cwbudde/algo-nsor/acquisition"
	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/dsp/zerofill"
	"github.com/cwbudde/algo-nsor/interact"
	"github.com/cwbudde/algo-nsor/params"
	"github.com/cwbudde/algo-nsor/session"
)

// Options configures an [App].
type Options struct {
	Logger        logging.Logger
	ParameterFile string
	Format        acquisition.Format
	Session       []session.Option
}

// App is the controller. All methods must be called from one goroutine.
type App struct {
	ui      UI
	logger  logging.Logger
	opts    Options
	session *session.Session
	pointer *interact.Controller
	views   map[axis.Domain]interact.View
	fields  []string
}

// New returns a controller bound to ui.
func New(ui UI, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	a := &App{
		ui:     ui,
		logger: logger.WithFields(logging.Fields{"component": "app"}),
		opts:   opts,
		views:  make(map[axis.Domain]interact.View),
	}
	sopts := append([]session.Option{session.WithLogger(logger)}, opts.Session...)
	a.session = session.New(sopts...)
	a.pointer = interact.NewController(surface{a})
	return a
}

// Session returns the document state.
func (a *App) Session() *session.Session { return a.session }

// Pointer returns the pointer tool controller.
func (a *App) Pointer() *interact.Controller { return a.pointer }

// Close waits for background work.
func (a *App) Close() { a.session.Close() }

// Start fills the fields from the parameter file. A missing file is not an
// error.
func (a *App) Start() error {
	if a.opts.ParameterFile == "" {
		return nil
	}
	set, err := params.Read(a.opts.ParameterFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.logger.Debug("No parameter file yet", logging.Fields{"path": a.opts.ParameterFile})
			return nil
		}
		a.report(err)
		return err
	}
	a.fields = set.Fields()
	for _, key := range a.fields {
		a.ui.SetFieldText(key, set.Text(key))
	}
	a.logger.Info("Parameters loaded", logging.Fields{
		"path":   a.opts.ParameterFile,
		"fields": len(a.fields),
	})
	return nil
}

// OpenFile prompts for an acquisition, loads it and starts the transform.
func (a *App) OpenFile() error {
	path, ok := a.ui.PromptPath(a.startDir())
	if !ok {
		return nil
	}
	return a.Open(path)
}

// Open loads the acquisition at path.
func (a *App) Open(path string) error {
	acq, err := acquisition.Load(path, a.opts.Format)
	if err != nil {
		a.report(err)
		return err
	}
	if err := a.session.Load(acq); err != nil {
		a.report(err)
		return err
	}
	a.ui.SetLabel(LabelStatus, StatusWaiting)

	for _, d := range axis.Domains {
		a.syncCursorLines(d)
	}
	a.applyLimits(axis.Time)
	a.ui.Draw(axis.Time)

	// A stored time cursor windows the first spectrum like a field edit.
	if key := axis.Time.Key(axis.Cursor); a.ui.FieldText(key) != "" {
		_ = a.EditField(key)
	}

	if a.opts.ParameterFile != "" {
		if err := params.Save(a.opts.ParameterFile, params.Set{params.FileName: params.Scalar(path)}); err != nil {
			a.logger.Warn("Failed to remember file name", logging.Fields{"error": err.Error()})
		}
	}
	return nil
}

// Renew restores the raw signal and recomputes the spectrum.
func (a *App) Renew() error {
	if err := a.session.Renew(); err != nil {
		a.report(err)
		return err
	}
	a.ui.SetFieldText(ZeroFillKey, zerofill.X1.String())
	a.ui.SetLabel(LabelStatus, StatusWaiting)
	a.ui.Draw(axis.Time)
	return nil
}

// EditField applies the text of a cursor or limit field.
func (a *App) EditField(key string) error {
	d, field, ok := axis.ParseKey(key)
	if !ok {
		return nil
	}
	lo, hi, err := params.ParseRange(a.ui.FieldText(key))
	if err != nil {
		a.report(err)
		return err
	}

	switch field {
	case axis.Cursor:
		a.pointer.Cursor.SetLines(d, lo, hi)
		if err := a.session.SetCursor(d, lo, hi); err != nil {
			a.report(err)
			return err
		}
		if d == axis.Time {
			a.ui.SetLabel(LabelStatus, StatusWaiting)
		} else {
			a.updateLabels()
		}
	case axis.XLimit:
		v := a.view(d)
		v.XMin, v.XMax = lo, hi
		a.views[d] = v
	case axis.YLimit:
		v := a.view(d)
		v.YMin, v.YMax = lo, hi
		a.views[d] = v
	}
	a.ui.Draw(d)
	return nil
}

// ZeroFill applies the zero-fill selector text. Without data the selector is
// reset to x1.
func (a *App) ZeroFill(text string) error {
	f, err := zerofill.ParseFactor(text)
	if err != nil {
		a.report(err)
		return err
	}
	if err := a.session.ZeroFill(f); err != nil {
		a.ui.SetFieldText(ZeroFillKey, a.session.ZeroFillFactor().String())
		a.report(err)
		return err
	}
	a.ui.SetLabel(LabelStatus, StatusWaiting)
	return nil
}

// ZerothPhase handles a zeroth-order slider step.
func (a *App) ZerothPhase(deg int) error {
	if _, err := a.session.SetZerothPhase(deg); err != nil {
		a.report(err)
		return err
	}
	a.pointer.Phase.ZerothChanged()
	a.updateLabels()
	return nil
}

// SliderReleased settles the phase slider.
func (a *App) SliderReleased() {
	a.pointer.Phase.Released()
}

// FirstOrderToggled shows or hides the first-order control.
func (a *App) FirstOrderToggled(on bool) {
	a.session.SetFirstOrder(on)
	a.pointer.Phase.ToggleFirst(on)
	a.updateLabels()
}

// FirstPhase handles a first-order slider step.
func (a *App) FirstPhase(deg int) {
	a.session.SetFirstPhase(deg)
	a.updateLabels()
}

// AutoPhase searches the best zeroth-order angle.
func (a *App) AutoPhase() (int, error) {
	deg, _, err := a.session.AutoPhase()
	if err != nil {
		a.report(err)
		return 0, err
	}
	a.updateLabels()
	a.ui.Draw(axis.Frequency)
	return deg, nil
}

// AutoAxis resets both views to the data extents and writes the limit
// fields.
func (a *App) AutoAxis() error {
	if !a.session.Loaded() {
		err := fmt.Errorf("auto axis: %w", session.ErrNoData)
		a.report(err)
		return err
	}
	for _, d := range axis.Domains {
		v := a.resetView(d)
		a.ui.SetFieldText(d.Key(axis.XLimit), params.FormatRange(v.XMin, v.XMax))
		a.ui.SetFieldText(d.Key(axis.YLimit), params.FormatRange(v.YMin, v.YMax))
		a.ui.Draw(d)
	}
	return nil
}

// SaveParameters writes every known field back to the parameter file.
func (a *App) SaveParameters() error {
	if a.opts.ParameterFile == "" {
		return nil
	}
	updates := params.Set{}
	for _, key := range a.knownFields() {
		updates[key] = params.FromText(a.ui.FieldText(key))
	}
	if err := params.Save(a.opts.ParameterFile, updates); err != nil {
		a.report(err)
		return err
	}
	a.logger.Info("Parameters saved", logging.Fields{"path": a.opts.ParameterFile})
	return nil
}

// Tick applies finished transforms. It is called from the event loop.
func (a *App) Tick() {
	n, err := a.session.Poll()
	if err != nil {
		a.report(err)
	}
	if n > 0 {
		a.finish()
	}
}

// Wait blocks until outstanding transforms are applied.
func (a *App) Wait(ctx context.Context) error {
	err := a.session.Await(ctx)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	if err != nil {
		a.report(err)
	}
	a.finish()
	return nil
}

// finish re-applies the frequency cursor and limit fields to a new spectrum.
func (a *App) finish() {
	if a.session.Busy() {
		return
	}
	if lo, hi, ok := a.fieldRange(axis.Frequency.Key(axis.Cursor)); ok {
		a.pointer.Cursor.SetLines(axis.Frequency, lo, hi)
		if err := a.session.SetCursor(axis.Frequency, lo, hi); err != nil {
			a.report(err)
		}
	}
	a.applyLimits(axis.Frequency)
	a.updateLabels()
	a.ui.Draw(axis.Frequency)
	a.ui.SetLabel(LabelStatus, StatusReady)
}

func (a *App) updateLabels() {
	a.ui.SetLabel(LabelIntegral, fmt.Sprintf("Peak Intensity: \n%.5f", a.session.PeakIntensity()))
	ph := a.session.Phase()
	intensity, _ := a.session.Intensity()
	a.ui.SetLabel(LabelPhaseInfo, fmt.Sprintf("Current Phase: \n0th: %d\n1st: %d\nInt: %.5f", ph.Zeroth, ph.First, intensity))
}

// report shows err as a warning.
func (a *App) report(err error) {
	var msg string
	switch {
	case errors.Is(err, session.ErrNoData), errors.Is(err, zerofill.ErrNoSignal):
		msg = WarnNoData
	case errors.Is(err, params.ErrNotNumeric), errors.Is(err, zerofill.ErrInvalidFactor):
		msg = WarnNotNumeric
	default:
		msg = err.Error()
	}
	a.logger.Warn(msg, logging.Fields{"error": err.Error()})
	a.ui.Warn(msg)
}

func (a *App) startDir() string {
	if a.opts.ParameterFile == "" {
		return "."
	}
	set, err := params.Read(a.opts.ParameterFile)
	if err != nil {
		return "."
	}
	if name := set.Text(params.FileName); name != "" {
		return filepath.Dir(name)
	}
	return "."
}

func (a *App) knownFields() []string {
	if len(a.fields) > 0 {
		return a.fields
	}
	var keys []string
	for _, d := range axis.Domains {
		for _, f := range []axis.Field{axis.Cursor, axis.XLimit, axis.YLimit} {
			keys = append(keys, d.Key(f))
		}
	}
	return keys
}

func (a *App) syncCursorLines(d axis.Domain) {
	if lo, hi, ok := a.fieldRange(d.Key(axis.Cursor)); ok {
		a.pointer.Cursor.SetLines(d, lo, hi)
	}
}

// fieldRange parses the "lo hi" text of key. ok is false for empty or
// malformed fields.
func (a *App) fieldRange(key string) (lo, hi float64, ok bool) {
	lo, hi, err := params.ParseRange(a.ui.FieldText(key))
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// applyLimits sets the view of d from its limit fields, falling back to the
// data extents for each missing field.
func (a *App) applyLimits(d axis.Domain) interact.View {
	v := a.resetView(d)
	if lo, hi, ok := a.fieldRange(d.Key(axis.XLimit)); ok {
		v.XMin, v.XMax = lo, hi
	}
	if lo, hi, ok := a.fieldRange(d.Key(axis.YLimit)); ok {
		v.YMin, v.YMax = lo, hi
	}
	a.views[d] = v
	return v
}

func (a *App) view(d axis.Domain) interact.View {
	if v, ok := a.views[d]; ok {
		return v
	}
	return a.resetView(d)
}

// resetView sets the view of d to the extents of its current data.
func (a *App) resetView(d axis.Domain) interact.View {
	var s session.Series
	if d == axis.Time {
		s = a.session.Time()
	} else {
		s, _ = a.session.Phased()
	}
	v := extents(s)
	a.views[d] = v
	return v
}

func extents(s session.Series) interact.View {
	if len(s.Axis) == 0 {
		return interact.View{XMax: 1, YMin: -1, YMax: 1}
	}
	v := interact.View{
		XMin: s.Axis[0],
		XMax: s.Axis[len(s.Axis)-1],
		YMin: math.Inf(1),
		YMax: math.Inf(-1),
	}
	for _, y := range s.Values {
		v.YMin = math.Min(v.YMin, y)
		v.YMax = math.Max(v.YMax, y)
	}
	if v.YMin == v.YMax {
		v.YMin--
		v.YMax++
	}
	return v
}

// surface adapts the UI to the pointer state machines. Drag results are
// written to the field and applied like a manual edit.
type surface struct{ a *App }

func (s surface) Blit(d axis.Domain) { s.a.ui.Blit(d) }

func (s surface) Draw() {
	for _, d := range axis.Domains {
		s.a.ui.Draw(d)
	}
}

func (s surface) SetField(key, text string) {
	s.a.ui.SetFieldText(key, text)
	_ = s.a.EditField(key)
}

func (s surface) SetPointer(bool) {}

func (s surface) View(d axis.Domain) interact.View { return s.a.view(d) }
