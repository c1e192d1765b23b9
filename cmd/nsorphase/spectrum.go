package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/dsp/spectrum"
	"github.com/cwbudde/algo-nsor/dsp/zerofill"
	"github.com/cwbudde/algo-nsor/params"
)

var (
	specTimeCursor string
	specFreqCursor string
	specZeroFill   string
	specPhase      int
	specAutoPhase  bool
	specLimit      string
	specPrecision  int
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum FILE",
	Short: "Print the phased spectrum of an acquisition",
	Long: `Compute the spectrum of FILE and print frequency, real, imaginary, phased,
magnitude, power and unwrapped phase (degrees) columns.

Cursor and limit values default to the parameter file fields
time_cursor, freq_cursor and freq_x_limit.

Examples:
  nsorphase spectrum run.bin
  nsorphase spectrum --zero-fill x2 --phase 40 run.bin
  nsorphase spectrum --auto-phase --freq-cursor "990 1010" -o csv run.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runSpectrum,
}

func init() {
	rootCmd.AddCommand(spectrumCmd)
	addProcessingFlags(spectrumCmd, &specTimeCursor, &specFreqCursor, &specZeroFill)

	spectrumCmd.Flags().IntVar(&specPhase, "phase", -1,
		"zeroth-order phase in degrees (negative keeps 0)")
	spectrumCmd.Flags().BoolVar(&specAutoPhase, "auto-phase", false,
		"search the zeroth-order phase that maximizes the cursor intensity")
	spectrumCmd.Flags().StringVar(&specLimit, "limit", "",
		`frequency range to print, "lo hi"`)
	spectrumCmd.Flags().IntVar(&specPrecision, "precision", 5,
		"digits after the decimal point")
}

func addProcessingFlags(cmd *cobra.Command, timeCursor, freqCursor, zeroFill *string) {
	cmd.Flags().StringVar(timeCursor, "time-cursor", "",
		`time window "lo hi" in seconds`)
	cmd.Flags().StringVar(freqCursor, "freq-cursor", "",
		`frequency window "lo hi" in Hz`)
	cmd.Flags().StringVar(zeroFill, "zero-fill", "x1",
		"zero-fill factor (x1, x2, x4, x8)")
}

// buildRequest reads the zero-fill factor from the configuration, where the
// --zero-fill flag is bound.
func buildRequest(path, timeCursor, freqCursor string) (request, error) {
	f, err := zerofill.ParseFactor(cfg.ZeroFill)
	if err != nil {
		return request{}, err
	}
	return request{
		path:       path,
		timeCursor: fieldDefault(timeCursor, axis.Time.Key(axis.Cursor)),
		freqCursor: fieldDefault(freqCursor, axis.Frequency.Key(axis.Cursor)),
		zeroFill:   f,
	}, nil
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args[0], specTimeCursor, specFreqCursor)
	if err != nil {
		return err
	}
	req.autoPhase = specAutoPhase
	req.setPhase = specPhase >= 0
	req.phase = specPhase

	s, err := analyze(cmd.Context(), cfg, logger, req)
	if err != nil {
		return err
	}
	defer s.Close()

	phased, err := s.Phased()
	if err != nil {
		return err
	}
	bins := s.Spectrum().Bins

	lo, hi := phased.Axis[0], phased.Axis[len(phased.Axis)-1]
	if limit := fieldDefault(specLimit, axis.Frequency.Key(axis.XLimit)); limit != "" {
		if lo, hi, err = params.ParseRange(limit); err != nil {
			return fmt.Errorf("limit: %w", err)
		}
		if lo > hi {
			lo, hi = hi, lo
		}
	}

	mag := spectrum.Magnitude(bins)
	pow := spectrum.Power(bins)
	deg := spectrum.PhaseDegrees(bins)

	out := series{header: []string{"freq", "re", "im", "phased", "magnitude", "power", "phase_deg"}}
	for i, f := range phased.Axis {
		if f < lo || f > hi {
			continue
		}
		out.rows = append(out.rows, []float64{
			f, real(bins[i]), imag(bins[i]), phased.Values[i], mag[i], pow[i], deg[i],
		})
	}
	return writeSeries(cmd.OutOrStdout(), cfg.Output.Format, cfg.Output.Precision, out)
}
