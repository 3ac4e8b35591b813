// Package config loads and validates run configuration from JSON or YAML
// files
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/quantforge/lobsim/common"
)

// defaults applied before the file is read
const (
	DefaultInitialCash      = 100000.0
	DefaultCommissionBps    = 0.0
	DefaultSignalDepth      = 5
	DefaultIntervalsPerYear = 252.0
	DefaultVaRConfidence    = 0.95
	DefaultLogLevel         = "INFO"
)

// ReadConfigFromFile loads, decodes and validates the config at path
func ReadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config %v: %w", path, err)
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not decode config %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("portfolio.initial-cash", DefaultInitialCash)
	v.SetDefault("portfolio.commission-bps", DefaultCommissionBps)
	v.SetDefault("signals.depth", DefaultSignalDepth)
	v.SetDefault("statistics.intervals-per-year", DefaultIntervalsPerYear)
	v.SetDefault("statistics.var-confidence", DefaultVaRConfidence)
	v.SetDefault("log.level", DefaultLogLevel)
}

// Validate checks required fields and value ranges, reporting every
// problem found
func (c *Config) Validate() error {
	var errs common.Errors
	if c.Instrument == "" {
		errs = append(errs, ErrNoInstrument)
	}
	if c.DataFile == "" {
		errs = append(errs, ErrNoDataFile)
	}
	if c.Strategy.Name == "" {
		errs = append(errs, ErrNoStrategy)
	}
	if c.Portfolio.InitialCash <= 0 {
		errs = append(errs, fmt.Errorf("%w: initial-cash %v", ErrInvalidConfig, c.Portfolio.InitialCash))
	}
	if c.Portfolio.CommissionBps < 0 {
		errs = append(errs, fmt.Errorf("%w: commission-bps %v", ErrInvalidConfig, c.Portfolio.CommissionBps))
	}
	if c.Signals.Depth < 0 {
		errs = append(errs, fmt.Errorf("%w: signals depth %v", ErrInvalidConfig, c.Signals.Depth))
	}
	if c.Statistics.IntervalsPerYear < 0 {
		errs = append(errs, fmt.Errorf("%w: intervals-per-year %v", ErrInvalidConfig, c.Statistics.IntervalsPerYear))
	}
	if c.Statistics.VaRConfidence < 0 || c.Statistics.VaRConfidence >= 1 {
		errs = append(errs, fmt.Errorf("%w: var-confidence %v", ErrInvalidConfig, c.Statistics.VaRConfidence))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
