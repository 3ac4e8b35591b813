package math

import (
	"math"
	"sort"
)

// ArithmeticAverage is the basic form of calculating an average.
// Divide the sum of all values by the length of values
func ArithmeticAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumOfValues float64
	for x := range values {
		sumOfValues += values[x]
	}
	return sumOfValues / float64(len(values))
}

// PopulationStandardDeviation calculates standard deviation using population
// based calculation
func PopulationStandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := ArithmeticAverage(values)
	diffs := make([]float64, len(values))
	for x := range values {
		diffs[x] = math.Pow(values[x]-avg, 2)
	}
	return math.Sqrt(ArithmeticAverage(diffs))
}

// SampleStandardDeviation standard deviation is a statistic that
// measures the dispersion of a dataset relative to its mean and
// is calculated as the square root of the variance
func SampleStandardDeviation(vals []float64) float64 {
	if len(vals) <= 1 {
		return 0
	}
	mean := ArithmeticAverage(vals)
	var combined float64
	for i := range vals {
		combined += math.Pow(vals[i]-mean, 2)
	}
	avg := combined / (float64(len(vals)) - 1)
	return math.Sqrt(avg)
}

// FinancialGeometricAverage is a modified geometric average to assess
// the negative returns of investments. It adds +1 to each value so negative
// period returns remain differentiable, then subtracts 1 from the result.
// It should only be compared to other financial geometric averages
func FinancialGeometricAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	product := 1.0
	for i := range values {
		if values[i] <= -1 {
			// cannot lose more than 100%, figures are incorrect
			return 0
		}
		product *= values[i] + 1
	}
	return math.Pow(product, 1/float64(len(values))) - 1
}

// CalculateSharpeRatio returns the risk-adjusted return of a return series
// compared to the risk-free rate. Returns 0 rather than NaN when the series
// has no variance
func CalculateSharpeRatio(movementPerInterval []float64, riskFreeRate, average float64) float64 {
	if len(movementPerInterval) <= 1 {
		return 0
	}
	excessReturns := make([]float64, len(movementPerInterval))
	for i := range movementPerInterval {
		excessReturns[i] = movementPerInterval[i] - riskFreeRate
	}
	standardDeviation := SampleStandardDeviation(excessReturns)
	if standardDeviation == 0 {
		return 0
	}
	return (average - riskFreeRate) / standardDeviation
}

// CalculateSortinoRatio returns the sortino ratio of a return series compared
// to the risk-free rate, penalising downside deviation only
func CalculateSortinoRatio(movementPerInterval []float64, riskFreeRate, average float64) float64 {
	if len(movementPerInterval) == 0 {
		return 0
	}
	totalNegativeResultsSquared := 0.0
	for x := range movementPerInterval {
		if movementPerInterval[x]-riskFreeRate < 0 {
			totalNegativeResultsSquared += math.Pow(movementPerInterval[x]-riskFreeRate, 2)
		}
	}
	averageDownsideDeviation := math.Sqrt(totalNegativeResultsSquared / float64(len(movementPerInterval)))
	if averageDownsideDeviation == 0 {
		return 0
	}
	return (average - riskFreeRate) / averageDownsideDeviation
}

// CalculateCalmarRatio is a function of the average compounded annual rate of
// return versus its maximum drawdown
func CalculateCalmarRatio(highestEquity, lowestEquity, average float64) float64 {
	if highestEquity == 0 {
		return 0
	}
	drawdownDiff := (highestEquity - lowestEquity) / highestEquity
	if drawdownDiff == 0 {
		return 0
	}
	return average / drawdownDiff
}

// CalculateCompoundAnnualGrowthRate Calculates CAGR.
// Using years, intervals per year would be 1 and number of intervals would
// be the number of years
// Using days, intervals per year would be 365 and number of intervals would
// be the number of days
func CalculateCompoundAnnualGrowthRate(openValue, closeValue, intervalsPerYear, numberOfIntervals float64) float64 {
	if openValue == 0 || numberOfIntervals == 0 {
		return 0
	}
	k := math.Pow(closeValue/openValue, intervalsPerYear/numberOfIntervals) - 1
	return k * 100
}

// Percentile returns the linearly interpolated pct quantile of values,
// pct in [0, 1]
func Percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := pct * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	w := idx - float64(lo)
	return (1-w)*sorted[lo] + w*sorted[hi]
}

// CalculateValueAtRisk returns the historical value at risk of a return
// series at the given confidence level, expressed as a positive loss
// fraction. A confidence of 0.95 reports the loss exceeded in the worst 5%
// of intervals
func CalculateValueAtRisk(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	loss := -Percentile(returns, 1-confidence)
	if loss < 0 {
		return 0
	}
	return loss
}

// ZScore returns the number of standard deviations value sits from mean,
// 0 when the deviation is 0
func ZScore(value, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return (value - mean) / stdDev
}
