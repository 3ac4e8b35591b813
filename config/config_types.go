package config

import "errors"

var (
	// ErrNoInstrument is returned when the instrument is missing
	ErrNoInstrument = errors.New("config requires an instrument")
	// ErrNoDataFile is returned when no event file is set
	ErrNoDataFile = errors.New("config requires a data file")
	// ErrNoStrategy is returned when no strategy name is set
	ErrNoStrategy = errors.New("config requires a strategy name")
	// ErrInvalidConfig is returned for out of range values
	ErrInvalidConfig = errors.New("invalid config")
)

// Config describes one simulation run
type Config struct {
	Instrument string           `mapstructure:"instrument"`
	DataFile   string           `mapstructure:"data-file"`
	Strategy   StrategyConfig   `mapstructure:"strategy"`
	Portfolio  PortfolioConfig  `mapstructure:"portfolio"`
	Signals    SignalsConfig    `mapstructure:"signals"`
	Statistics StatisticsConfig `mapstructure:"statistics"`
	Log        LogConfig        `mapstructure:"log"`
}

// StrategyConfig names a registered strategy and carries its settings
type StrategyConfig struct {
	Name           string                 `mapstructure:"name"`
	CustomSettings map[string]interface{} `mapstructure:"custom-settings"`
}

// PortfolioConfig funds the run and prices executions
type PortfolioConfig struct {
	InitialCash   float64 `mapstructure:"initial-cash"`
	CommissionBps float64 `mapstructure:"commission-bps"`
}

// SignalsConfig controls signal computation depth
type SignalsConfig struct {
	Depth int `mapstructure:"depth"`
}

// StatisticsConfig controls annualization and risk parameters
type StatisticsConfig struct {
	IntervalsPerYear float64 `mapstructure:"intervals-per-year"`
	RiskFreeRate     float64 `mapstructure:"risk-free-rate"`
	VaRConfidence    float64 `mapstructure:"var-confidence"`
}

// LogConfig sets output verbosity
type LogConfig struct {
	Level string `mapstructure:"level"`
}
