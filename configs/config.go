package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-nsor/acquisition"
	"github.com/cwbudde/algo-nsor/dsp/spectrum"
	"github.com/cwbudde/algo-nsor/dsp/window"
	"github.com/cwbudde/algo-nsor/dsp/zerofill"
	"github.com/cwbudde/algo-nsor/session"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose       bool   `mapstructure:"verbose"`
	LogLevel      string `mapstructure:"log_level"`
	ParameterFile string `mapstructure:"parameter_file"`

	// Processing settings
	DataFormat    string `mapstructure:"data_format"`
	Workers       int    `mapstructure:"workers"`
	Normalization string `mapstructure:"normalization"`
	ZeroFill      string `mapstructure:"zero_fill"`

	// Apodization settings
	Apodization ApodizationConfig `mapstructure:"apodization"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// ApodizationConfig selects the function applied before zero-fill
type ApodizationConfig struct {
	Window         string  `mapstructure:"window"`
	LineBroadening float64 `mapstructure:"line_broadening"`
	Alpha          float64 `mapstructure:"alpha"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	Precision int    `mapstructure:"precision"`
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom decodes configuration from v after applying defaults
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if _, err := acquisition.ParseFormat(c.DataFormat); err != nil {
		return fmt.Errorf("invalid data format: %w", err)
	}
	if _, err := spectrum.ParseNormalization(c.Normalization); err != nil {
		return fmt.Errorf("invalid normalization: %w", err)
	}
	if _, err := zerofill.ParseFactor(c.ZeroFill); err != nil {
		return fmt.Errorf("invalid zero fill: %w", err)
	}
	if _, err := window.ParseType(c.Apodization.Window); err != nil {
		return fmt.Errorf("invalid apodization: %w", err)
	}
	if c.Apodization.LineBroadening < 0 {
		return fmt.Errorf("line broadening cannot be negative")
	}
	if c.Apodization.Alpha < 0 || c.Apodization.Alpha > 1 {
		return fmt.Errorf("tukey alpha must be within [0, 1]: %g", c.Apodization.Alpha)
	}
	switch c.Output.Format {
	case "table", "json", "yaml", "csv":
	default:
		return fmt.Errorf("output format must be one of table, json, yaml, csv: %q", c.Output.Format)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output precision cannot be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error: %q", c.LogLevel)
	}
	return nil
}

// Format returns the parsed acquisition format.
func (c *Config) Format() acquisition.Format {
	f, _ := acquisition.ParseFormat(c.DataFormat)
	return f
}

// Norm returns the parsed spectrum normalization.
func (c *Config) Norm() spectrum.Normalization {
	n, _ := spectrum.ParseNormalization(c.Normalization)
	return n
}

// Fill returns the parsed zero-fill factor, x1 when invalid.
func (c *Config) Fill() zerofill.Factor {
	f, err := zerofill.ParseFactor(c.ZeroFill)
	if err != nil {
		return zerofill.X1
	}
	return f
}

// Apodize returns the parsed apodization settings.
func (c *Config) Apodize() session.Apodization {
	t, _ := window.ParseType(c.Apodization.Window)
	return session.Apodization{
		Type:           t,
		LineBroadening: c.Apodization.LineBroadening,
		Alpha:          c.Apodization.Alpha,
	}
}
