// Package config provides configuration for the equilibrium CLI.
//
// Configuration sources, highest priority first: command-line flags, then
// WALRAS_* environment variables, then an optional YAML config file, then
// defaults. All values are validated at load time.
package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Report formats.
const (
	FormatStyled = "styled"
	FormatPlain  = "plain"
	FormatYAML   = "yaml"
)

// Config holds all runtime settings.
type Config struct {
	// SolverTimeout bounds the symbolic solve; zero disables the bound.
	SolverTimeout time.Duration `mapstructure:"solverTimeout" yaml:"solverTimeout"`

	// SampleEndowments are the k values for the selector's numeric
	// fallback check.
	SampleEndowments []float64 `mapstructure:"sampleEndowments" yaml:"sampleEndowments"`

	// Tolerance is the positivity margin of the numeric check.
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`

	// Endowment optionally binds k to a rational value, e.g. "4" or
	// "7/2". Empty keeps the result symbolic.
	Endowment string `mapstructure:"endowment" yaml:"endowment"`

	// Format selects the report rendering: styled, plain, or yaml.
	Format string `mapstructure:"format" yaml:"format"`

	// Development switches console logging; Verbosity raises log detail.
	Development bool `mapstructure:"development" yaml:"development"`
	Verbosity   int  `mapstructure:"verbosity" yaml:"verbosity"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SolverTimeout:    time.Minute,
		SampleEndowments: []float64{1, 4, 9},
		Tolerance:        1e-9,
		Format:           FormatStyled,
	}
}

// Load reads configuration from the optional file path, the environment,
// and defaults, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("solverTimeout", def.SolverTimeout)
	v.SetDefault("sampleEndowments", def.SampleEndowments)
	v.SetDefault("tolerance", def.Tolerance)
	v.SetDefault("endowment", def.Endowment)
	v.SetDefault("format", def.Format)
	v.SetDefault("development", def.Development)
	v.SetDefault("verbosity", def.Verbosity)

	v.SetEnvPrefix("WALRAS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	if c.SolverTimeout < 0 {
		return fmt.Errorf("solverTimeout cannot be negative, got %v", c.SolverTimeout)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %v", c.Tolerance)
	}
	for _, k := range c.SampleEndowments {
		if k <= 0 {
			return fmt.Errorf("sampleEndowments must be positive, got %v", k)
		}
	}
	switch c.Format {
	case FormatStyled, FormatPlain, FormatYAML:
	default:
		return fmt.Errorf("format must be %s, %s or %s, got %q", FormatStyled, FormatPlain, FormatYAML, c.Format)
	}
	if _, _, err := c.EndowmentValue(); err != nil {
		return err
	}
	return nil
}

// EndowmentValue parses the optional endowment binding. The second return
// is false when the endowment is left symbolic.
func (c *Config) EndowmentValue() (*big.Rat, bool, error) {
	if c.Endowment == "" {
		return nil, false, nil
	}
	r, ok := new(big.Rat).SetString(c.Endowment)
	if !ok {
		return nil, false, fmt.Errorf("endowment must be a rational like 4 or 7/2, got %q", c.Endowment)
	}
	if r.Sign() <= 0 {
		return nil, false, fmt.Errorf("endowment must be positive, got %s", c.Endowment)
	}
	return r, true, nil
}
