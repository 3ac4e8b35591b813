package signals

import (
	gctmath "github.com/quantforge/lobsim/common/math"
	"github.com/quantforge/lobsim/orderbook"
)

// SpreadTracker keeps a rolling window of spread observations and scores the
// latest value against the window's distribution
type SpreadTracker struct {
	window int
	values []float64
}

// NewSpreadTracker returns a tracker over the most recent window observations
func NewSpreadTracker(window int) *SpreadTracker {
	if window < 2 {
		window = 2
	}
	return &SpreadTracker{window: window}
}

// Update records a spread observation, evicting the oldest once the window
// is full
func (s *SpreadTracker) Update(spread float64) {
	s.values = append(s.values, spread)
	if len(s.values) > s.window {
		s.values = s.values[1:]
	}
}

// Ready reports whether the window holds enough observations for a
// meaningful score
func (s *SpreadTracker) Ready() bool {
	return len(s.values) >= s.window
}

// Mean returns the rolling average spread
func (s *SpreadTracker) Mean() float64 {
	return gctmath.ArithmeticAverage(s.values)
}

// StdDev returns the rolling sample standard deviation
func (s *SpreadTracker) StdDev() float64 {
	return gctmath.SampleStandardDeviation(s.values)
}

// ZScore scores a spread against the rolling window, 0 when the window has
// no variance
func (s *SpreadTracker) ZScore(spread float64) float64 {
	return gctmath.ZScore(spread, s.Mean(), s.StdDev())
}

// FlowTracker maintains exponentially decayed aggressor volume per side and
// a cumulative volume weighted trade price
type FlowTracker struct {
	decay    float64
	buyFlow  float64
	sellFlow float64
	notional float64
	volume   float64
}

// NewFlowTracker returns a tracker whose per side flow is multiplied by
// decay on every trade. decay outside (0, 1] falls back to 1 (no decay)
func NewFlowTracker(decay float64) *FlowTracker {
	if decay <= 0 || decay > 1 {
		decay = 1
	}
	return &FlowTracker{decay: decay}
}

// OnTrade folds an execution into the decayed flows and the VWAP state
func (f *FlowTracker) OnTrade(t orderbook.Trade) {
	f.buyFlow *= f.decay
	f.sellFlow *= f.decay
	q := float64(t.Quantity)
	if t.Aggressor == orderbook.Bid {
		f.buyFlow += q
	} else {
		f.sellFlow += q
	}
	f.notional += float64(t.Price) * q
	f.volume += q
}

// NetFlow returns (buy-sell)/(buy+sell) over the decayed flows, bounded to
// [-1, 1] and 0 before any trades
func (f *FlowTracker) NetFlow() float64 {
	total := f.buyFlow + f.sellFlow
	if total == 0 {
		return 0
	}
	return (f.buyFlow - f.sellFlow) / total
}

// VWAP returns the volume weighted average trade price since construction,
// 0 before any trades
func (f *FlowTracker) VWAP() float64 {
	if f.volume == 0 {
		return 0
	}
	return f.notional / f.volume
}

// Reset clears all accumulated state
func (f *FlowTracker) Reset() {
	f.buyFlow = 0
	f.sellFlow = 0
	f.notional = 0
	f.volume = 0
}
