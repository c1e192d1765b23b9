package main

import (
	"context"
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/cwbudde/algo-nsor/acquisition"
	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/configs"
	"github.com/cwbudde/algo-nsor/dsp/zerofill"
	"github.com/cwbudde/algo-nsor/params"
	"github.com/cwbudde/algo-nsor/session"
)

// request describes one non-interactive analysis run.
type request struct {
	path       string
	timeCursor string
	freqCursor string
	zeroFill   zerofill.Factor
	phase      int
	setPhase   bool
	autoPhase  bool
}

// analyze loads the acquisition and applies the requested processing in the
// order zero-fill, time cursor, frequency cursor, phase. Every transform is
// awaited before the next is submitted so the printed spectrum is the one of
// the last step.
func analyze(ctx context.Context, c *configs.Config, l logging.Logger, req request) (*session.Session, error) {
	acq, err := acquisition.Load(req.path, c.Format())
	if err != nil {
		return nil, err
	}

	s := session.New(
		session.WithLogger(l),
		session.WithWorkers(c.Workers),
		session.WithNormalization(c.Norm()),
		session.WithApodization(c.Apodize()),
	)
	fail := func(err error) (*session.Session, error) {
		s.Close()
		return nil, err
	}

	if err := s.Load(acq); err != nil {
		return fail(err)
	}
	if err := s.Await(ctx); err != nil {
		return fail(err)
	}

	if req.zeroFill != zerofill.X1 {
		if err := s.ZeroFill(req.zeroFill); err != nil {
			return fail(err)
		}
		if err := s.Await(ctx); err != nil {
			return fail(err)
		}
	}
	if req.timeCursor != "" {
		lo, hi, err := params.ParseRange(req.timeCursor)
		if err != nil {
			return fail(fmt.Errorf("time cursor: %w", err))
		}
		if err := s.SetCursor(axis.Time, lo, hi); err != nil {
			return fail(err)
		}
		if err := s.Await(ctx); err != nil {
			return fail(err)
		}
	}

	if req.freqCursor != "" {
		lo, hi, err := params.ParseRange(req.freqCursor)
		if err != nil {
			return fail(fmt.Errorf("frequency cursor: %w", err))
		}
		if err := s.SetCursor(axis.Frequency, lo, hi); err != nil {
			return fail(err)
		}
	}

	switch {
	case req.autoPhase:
		if _, _, err := s.AutoPhase(); err != nil {
			return fail(err)
		}
	case req.setPhase:
		if _, err := s.SetZerothPhase(req.phase); err != nil {
			return fail(err)
		}
	}
	return s, nil
}

// fieldDefault returns the flag value, or the field stored in the parameter
// file when the flag is empty.
func fieldDefault(flag, key string) string {
	if flag != "" || cfg == nil || cfg.ParameterFile == "" {
		return flag
	}
	set, err := params.Read(cfg.ParameterFile)
	if err != nil {
		return ""
	}
	return set.Text(key)
}
