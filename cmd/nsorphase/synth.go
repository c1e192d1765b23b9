package main

import (
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nsor/acquisition"
	"github.com/cwbudde/algo-nsor/dsp/signal"
)

var (
	synthSamples   int
	synthRate      float64
	synthFreq      float64
	synthPhase     float64
	synthAmplitude float64
	synthDecay     float64
	synthNoise     float64
	synthSeed      int64
)

var synthCmd = &cobra.Command{
	Use:   "synth OUT",
	Short: "Write a synthetic NSOR acquisition",
	Long: `Write a phased cosine with optional exponential decay and white noise.
A .npy extension selects the NumPy format, otherwise --format applies.

Examples:
  nsorphase synth --freq 1000 --phase 40 run.bin
  nsorphase synth --decay 0.2 --noise 0.05 run.npy`,
	Args: cobra.ExactArgs(1),
	RunE: runSynth,
}

func init() {
	rootCmd.AddCommand(synthCmd)

	synthCmd.Flags().IntVar(&synthSamples, "samples", 8192, "number of samples")
	synthCmd.Flags().Float64Var(&synthRate, "rate", 8192, "sample rate in Hz")
	synthCmd.Flags().Float64Var(&synthFreq, "freq", 1000, "signal frequency in Hz")
	synthCmd.Flags().Float64Var(&synthPhase, "phase", 0, "signal phase in degrees")
	synthCmd.Flags().Float64Var(&synthAmplitude, "amplitude", 1, "signal amplitude")
	synthCmd.Flags().Float64Var(&synthDecay, "decay", 0, "decay time constant in seconds (0 disables)")
	synthCmd.Flags().Float64Var(&synthNoise, "noise", 0, "white noise amplitude")
	synthCmd.Flags().Int64Var(&synthSeed, "seed", 1, "noise seed")
}

func runSynth(cmd *cobra.Command, args []string) error {
	out := args[0]
	g := signal.NewGenerator(signal.WithSampleRate(synthRate), signal.WithSeed(synthSeed))

	x, err := g.TimeAxis(synthSamples)
	if err != nil {
		return err
	}
	y, err := g.Decay(synthFreq, synthPhase, synthAmplitude, synthDecay, synthSamples)
	if err != nil {
		return err
	}
	if err := g.AddNoise(y, synthNoise); err != nil {
		return err
	}
	acq, err := acquisition.New(x, y)
	if err != nil {
		return err
	}

	format := cfg.Format()
	if strings.EqualFold(filepath.Ext(out), ".npy") {
		format = acquisition.FormatNPY
	}
	if err := acquisition.Save(out, format, acq); err != nil {
		return err
	}
	logger.Info("Synthetic acquisition written", logging.Fields{
		"path":    out,
		"format":  format.String(),
		"samples": synthSamples,
	})
	return nil
}
