package statistics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/portfolio"
)

func equitySeries(values ...float64) []portfolio.EquityPoint {
	series := make([]portfolio.EquityPoint, len(values))
	for i, v := range values {
		series[i] = portfolio.EquityPoint{
			Timestamp: time.Unix(int64(i), 0),
			Equity:    decimal.NewFromFloat(v),
		}
	}
	return series
}

func TestCalculateNotEnoughData(t *testing.T) {
	t.Parallel()
	_, err := Calculate(nil, Config{})
	assert.ErrorIs(t, err, ErrNotEnoughData)
	_, err = Calculate(equitySeries(100), Config{})
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()
	report, err := Calculate(equitySeries(100, 110, 90, 120), Config{})
	require.NoError(t, err)

	assert.InDelta(t, 0.1818, report.MaxDrawdown.Drawdown, 0.0001)
	assert.Equal(t, 110.0, report.MaxDrawdown.Highest.Value)
	assert.Equal(t, 90.0, report.MaxDrawdown.Lowest.Value)
	assert.Equal(t, time.Unix(1, 0), report.MaxDrawdown.Highest.Timestamp)
	assert.Equal(t, time.Unix(2, 0), report.MaxDrawdown.Lowest.Timestamp)
}

func TestMonotoneSeriesHasNoDrawdown(t *testing.T) {
	t.Parallel()
	report, err := Calculate(equitySeries(100, 105, 111, 120), Config{})
	require.NoError(t, err)
	assert.Zero(t, report.MaxDrawdown.Drawdown)
	assert.Zero(t, report.CalmarRatio)
	assert.Positive(t, report.SharpeRatio)
}

func TestFlatSeries(t *testing.T) {
	t.Parallel()
	report, err := Calculate(equitySeries(100, 100, 100), Config{})
	require.NoError(t, err)
	assert.Zero(t, report.SharpeRatio, "zero variance must not produce NaN")
	assert.Zero(t, report.SortinoRatio)
	assert.Zero(t, report.Volatility)
	assert.Zero(t, report.TotalReturn)
}

func TestTotalAndAnnualizedReturn(t *testing.T) {
	t.Parallel()
	report, err := Calculate(equitySeries(100, 105, 110), Config{IntervalsPerYear: 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.10, report.TotalReturn, 1e-12)
	// two intervals at two per year spans exactly one year
	assert.InDelta(t, 0.10, report.AnnualizedReturn, 1e-12)
	assert.Equal(t, 3, report.Observations)
}

func TestDefaultAnnualizationIs252(t *testing.T) {
	t.Parallel()
	series := equitySeries(100, 101, 100, 102, 101, 103)
	defaulted, err := Calculate(series, Config{})
	require.NoError(t, err)
	explicit, err := Calculate(series, Config{IntervalsPerYear: 252})
	require.NoError(t, err)
	assert.Equal(t, explicit.SharpeRatio, defaulted.SharpeRatio)
	assert.Equal(t, explicit.Volatility, defaulted.Volatility)
	assert.Equal(t, explicit.AnnualizedReturn, defaulted.AnnualizedReturn)
}

func TestValueAtRisk(t *testing.T) {
	t.Parallel()
	// returns: -0.5 repeated tail losses dominate the quantile
	report, err := Calculate(equitySeries(100, 50, 100, 50, 100), Config{VaRConfidence: 0.95})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, report.ValueAtRisk, 1e-9)
}

func TestCalculateWithActivity(t *testing.T) {
	t.Parallel()
	p, err := portfolio.New(decimal.NewFromInt(100000), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, p.OnFill("TEST", orderbook.Bid, 100, 50))
	p.MarkToMarket(time.Unix(1, 0), map[string]int64{"TEST": 100})
	p.MarkToMarket(time.Unix(2, 0), map[string]int64{"TEST": 110})

	report, err := CalculateWithActivity(p, Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fills)
	assert.Equal(t, 50.0, report.VolumeTraded)
	assert.Equal(t, 5.0, report.CommissionPaid)
	assert.Positive(t, report.TotalReturn)
}
