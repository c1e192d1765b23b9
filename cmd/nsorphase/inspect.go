package main

import (
	"github.com/spf13/cobra"

	frequencystats "github.com/cwbudde/algo-nsor/stats/frequency"
	timestats "github.com/cwbudde/algo-nsor/stats/time"
)

var (
	inspectTimeCursor string
	inspectFreqCursor string
	inspectZeroFill   string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize an acquisition and its spectrum",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addProcessingFlags(inspectCmd, &inspectTimeCursor, &inspectFreqCursor, &inspectZeroFill)
}

func runInspect(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args[0], inspectTimeCursor, inspectFreqCursor)
	if err != nil {
		return err
	}
	s, err := analyze(cmd.Context(), cfg, logger, req)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := frequencystats.FromResult(s.Spectrum())
	if err != nil {
		return err
	}
	raw := s.Raw()
	ts, err := timestats.Calculate(raw.Axis, raw.Values)
	if err != nil {
		return err
	}
	st := s.Status()
	return writeRecord(cmd.OutOrStdout(), cfg.Output.Format, map[string]any{
		"file":           req.path,
		"samples":        st.Samples,
		"dt":             st.Dt,
		"f_max":          st.FMax,
		"duration":       ts.Duration,
		"dc":             ts.DC,
		"rms":            ts.RMS,
		"time_peak":      ts.Peak,
		"crest_factor":   ts.CrestFactor,
		"crossing_freq":  ts.CrossingFreq,
		"decay_ratio":    ts.DecayRatio,
		"zero_fill":      st.ZeroFill.String(),
		"transform_size": st.FillSize,
		"bins":           st.Bins,
		"peak_bin":       stats.MaxBin,
		"peak_freq":      stats.PeakFreq,
		"peak_magnitude": stats.Max,
		"centroid":       stats.Centroid,
		"spread":         stats.Spread,
		"bandwidth":      stats.Bandwidth,
		"rolloff":        stats.Rolloff,
		"peak_intensity": st.Peak,
	})
}
