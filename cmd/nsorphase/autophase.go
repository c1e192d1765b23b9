package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/dsp/phase"
)

var (
	autoTimeCursor string
	autoFreqCursor string
	autoZeroFill   string
	autoScan       bool
)

var autophaseCmd = &cobra.Command{
	Use:   "autophase FILE",
	Short: "Find the zeroth-order phase that maximizes the cursor intensity",
	Long: `Scan zeroth-order angles 0..359 over the frequency cursor window and
report the first angle with the largest in-phase sum.

Examples:
  nsorphase autophase run.bin
  nsorphase autophase --freq-cursor "990 1010" --scan -o csv run.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runAutophase,
}

func init() {
	rootCmd.AddCommand(autophaseCmd)
	addProcessingFlags(autophaseCmd, &autoTimeCursor, &autoFreqCursor, &autoZeroFill)
	autophaseCmd.Flags().BoolVar(&autoScan, "scan", false,
		"print the intensity of every angle instead of the summary")
}

func runAutophase(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args[0], autoTimeCursor, autoFreqCursor)
	if err != nil {
		return err
	}
	req.autoPhase = true

	s, err := analyze(cmd.Context(), cfg, logger, req)
	if err != nil {
		return err
	}
	defer s.Close()

	if autoScan {
		sums, err := phase.Scan(s.Spectrum().Bins, s.Window(axis.Frequency))
		if err != nil {
			return err
		}
		out := series{header: []string{"angle", "intensity"}}
		for deg, v := range sums {
			out.rows = append(out.rows, []float64{float64(deg), phase.IntensityScale * v})
		}
		return writeSeries(cmd.OutOrStdout(), cfg.Output.Format, cfg.Output.Precision, out)
	}

	st := s.Status()
	w := s.Window(axis.Frequency)
	return writeRecord(cmd.OutOrStdout(), cfg.Output.Format, map[string]any{
		"angle":          st.Phase.Zeroth,
		"intensity":      st.Intensity,
		"peak_intensity": st.Peak,
		"window_lo":      w.Lo,
		"window_hi":      w.Hi,
	})
}
