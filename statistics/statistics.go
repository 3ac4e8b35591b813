// Package statistics summarises the performance of a finished run from its
// equity series
package statistics

import (
	"math"

	gctmath "github.com/quantforge/lobsim/common/math"
	"github.com/quantforge/lobsim/log"
	"github.com/quantforge/lobsim/portfolio"
)

// Calculate produces a performance report over a mark ordered equity
// series. The series is read only, a report can be produced repeatedly
func Calculate(series []portfolio.EquityPoint, cfg Config) (*Report, error) {
	if len(series) < 2 {
		return nil, ErrNotEnoughData
	}
	intervals := cfg.IntervalsPerYear
	if intervals <= 0 {
		intervals = DefaultIntervalsPerYear
	}
	confidence := cfg.VaRConfidence
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultVaRConfidence
	}

	equity := make([]float64, len(series))
	for i := range series {
		equity[i] = series[i].Equity.InexactFloat64()
	}
	returns := intervalReturns(equity)

	start := equity[0]
	end := equity[len(equity)-1]
	report := &Report{
		StartEquity:  start,
		EndEquity:    end,
		Observations: len(series),
	}
	if start != 0 {
		report.TotalReturn = end/start - 1
	}
	report.AnnualizedReturn = gctmath.CalculateCompoundAnnualGrowthRate(
		start, end, intervals, float64(len(returns))) / 100

	mean := gctmath.ArithmeticAverage(returns)
	report.Volatility = gctmath.SampleStandardDeviation(returns) * math.Sqrt(intervals)
	report.SharpeRatio = gctmath.CalculateSharpeRatio(returns, cfg.RiskFreeRate, mean) *
		math.Sqrt(intervals)
	report.SortinoRatio = gctmath.CalculateSortinoRatio(returns, cfg.RiskFreeRate, mean) *
		math.Sqrt(intervals)
	report.MaxDrawdown = maxDrawdown(series, equity)
	if report.MaxDrawdown.Drawdown != 0 {
		report.CalmarRatio = report.AnnualizedReturn / report.MaxDrawdown.Drawdown
	}
	report.ValueAtRisk = gctmath.CalculateValueAtRisk(returns, confidence)
	log.Debugf(log.StatisticsMgr, "calculated report over %v observations, total return %.6f",
		report.Observations, report.TotalReturn)
	return report, nil
}

// CalculateWithActivity extends Calculate with trading activity taken from
// the portfolio that produced the series
func CalculateWithActivity(p *portfolio.Portfolio, cfg Config) (*Report, error) {
	report, err := Calculate(p.Series(), cfg)
	if err != nil {
		return nil, err
	}
	report.Fills = p.FillCount()
	report.VolumeTraded = p.VolumeTraded().InexactFloat64()
	report.CommissionPaid = p.CommissionPaid().InexactFloat64()
	return report, nil
}

func intervalReturns(equity []float64) []float64 {
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, equity[i]/equity[i-1]-1)
	}
	return returns
}

func maxDrawdown(series []portfolio.EquityPoint, equity []float64) Swing {
	peak := ValueAtTime{Timestamp: series[0].Timestamp, Value: equity[0]}
	worst := Swing{Highest: peak, Lowest: peak}
	for i := 1; i < len(equity); i++ {
		if equity[i] > peak.Value {
			peak = ValueAtTime{Timestamp: series[i].Timestamp, Value: equity[i]}
			continue
		}
		if peak.Value == 0 {
			continue
		}
		dd := (peak.Value - equity[i]) / peak.Value
		if dd > worst.Drawdown {
			worst = Swing{
				Highest:  peak,
				Lowest:   ValueAtTime{Timestamp: series[i].Timestamp, Value: equity[i]},
				Drawdown: dd,
			}
		}
	}
	return worst
}
