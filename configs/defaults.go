package configs

import (
	"runtime"

	"github.com/spf13/viper"
)

// DefaultParameterFile is the settings file read next to the working directory.
const DefaultParameterFile = "parameters.txt"

// SetDefaults registers default configuration values. Flags, environment
// variables and config files take precedence.
func SetDefaults(v *viper.Viper) {
	d := GetDefaultConfig()

	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("parameter_file", d.ParameterFile)
	v.SetDefault("data_format", d.DataFormat)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("normalization", d.Normalization)
	v.SetDefault("zero_fill", d.ZeroFill)
	v.SetDefault("apodization.window", d.Apodization.Window)
	v.SetDefault("apodization.line_broadening", d.Apodization.LineBroadening)
	v.SetDefault("apodization.alpha", d.Apodization.Alpha)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.precision", d.Output.Precision)
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}

	return &Config{
		LogLevel:      "info",
		ParameterFile: DefaultParameterFile,
		DataFormat:    "bin",
		Workers:       workers,
		Normalization: "amplitude",
		ZeroFill:      "x1",
		Apodization: ApodizationConfig{
			Window:         "none",
			LineBroadening: 1,
			Alpha:          0.5,
		},
		Output: OutputConfig{
			Format:    "table",
			Precision: 5,
		},
	}
}
