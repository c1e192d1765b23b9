package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-nsor/configs"
)

var (
	configFile    string
	verbose       bool
	logLevel      string
	parameterFile string
	dataFormat    string
	workers       int
	normalization string
	outputFormat  string
	apodWindow    string
	lineBroaden   float64
	tukeyAlpha    float64

	cfg    *configs.Config
	logger logging.Logger
)

// flagKeys maps flag names to configuration keys where they differ.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"params":    "parameter_file",
	"format":    "data_format",
	"norm":      "normalization",
	"output":    "output.format",
	"zero-fill": "zero_fill",
	"precision": "output.precision",
	"window":    "apodization.window",
	"lb":        "apodization.line_broadening",
	"alpha":     "apodization.alpha",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nsorphase",
	Short: "NSOR time/frequency phasing tool",
	Long: `Load an interleaved (x, y) NSOR acquisition, compute its Fourier
transform, zero-fill it, and apply zeroth-order phase correction.

Acquisitions are big-endian float64 pairs (bin) or NumPy arrays (npy).
Cursor and axis settings persist in a JSON parameter file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/nsorphase/nsorphase.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&parameterFile, "params", configs.DefaultParameterFile,
		"parameter file holding field values")
	rootCmd.PersistentFlags().StringVar(&dataFormat, "format", "bin",
		"acquisition format (bin, npy)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1,
		"concurrent transform workers")
	rootCmd.PersistentFlags().StringVar(&normalization, "norm", "amplitude",
		"spectrum normalization (amplitude, ortho)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (table, json, yaml, csv)")
	rootCmd.PersistentFlags().StringVar(&apodWindow, "window", "none",
		"apodization before zero-fill (none, exponential, gaussian, hann, half-hann, tukey)")
	rootCmd.PersistentFlags().Float64Var(&lineBroaden, "lb", 1,
		"line broadening in Hz for exponential and gaussian apodization")
	rootCmd.PersistentFlags().Float64Var(&tukeyAlpha, "alpha", 0.5,
		"tapered fraction of the tukey apodization")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nsorphase"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("nsorphase")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NSOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configs.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// initializeConfig binds flags, decodes the configuration and sets up logging
func initializeConfig(cmd *cobra.Command) error {
	if err := bindFlags(cmd, viper.GetViper()); err != nil {
		return err
	}

	c, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = c

	logger = logging.NewDefaultLogger().WithFields(logging.Fields{
		"command":   cmd.Name(),
		"log_level": cfg.LogLevel,
	})
	if cfg.LogLevel == "debug" {
		logger.Debug("Configuration loaded", logging.Fields{
			"config_file": viper.ConfigFileUsed(),
			"params":      cfg.ParameterFile,
			"format":      cfg.DataFormat,
			"workers":     cfg.Workers,
		})
	}
	return nil
}

// bindFlags binds each cobra flag to its configuration key and NSOR_ variable
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if k, ok := flagKeys[f.Name]; ok {
			key = k
		}
		envVar := "NSOR_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
		if err := v.BindEnv(key, envVar); err != nil {
			lastErr = err
		}
	})

	return lastErr
}
