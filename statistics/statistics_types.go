package statistics

import (
	"errors"
	"time"
)

var (
	// ErrNotEnoughData is returned when fewer than two equity
	// observations exist
	ErrNotEnoughData = errors.New("not enough equity observations to calculate statistics")
)

// Config controls annualization and risk parameters
type Config struct {
	// IntervalsPerYear scales per interval figures to annual ones,
	// 252 when zero
	IntervalsPerYear float64
	// RiskFreeRate is the per interval risk free return used by the
	// Sharpe and Sortino ratios
	RiskFreeRate float64
	// VaRConfidence defaults to 0.95
	VaRConfidence float64
}

// DefaultIntervalsPerYear assumes daily marks on trading days
const DefaultIntervalsPerYear float64 = 252

// DefaultVaRConfidence reports the loss exceeded in the worst 5% of
// intervals
const DefaultVaRConfidence = 0.95

// ValueAtTime couples an equity value with its observation time
type ValueAtTime struct {
	Timestamp time.Time
	Value     float64
}

// Swing is the largest peak to trough equity decline over the series
type Swing struct {
	Highest  ValueAtTime
	Lowest   ValueAtTime
	// Drawdown is the decline as a fraction of the peak
	Drawdown float64
}

// Report is the full performance summary of one finalized run
type Report struct {
	StartEquity      float64
	EndEquity        float64
	TotalReturn      float64
	AnnualizedReturn float64
	Volatility       float64
	SharpeRatio      float64
	SortinoRatio     float64
	MaxDrawdown      Swing
	CalmarRatio      float64
	ValueAtRisk      float64
	Observations     int
	Fills            int
	VolumeTraded     float64
	CommissionPaid   float64
}
