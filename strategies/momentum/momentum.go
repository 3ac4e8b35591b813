// Package momentum trades mean reversion on the relative strength index of
// the mid price history
package momentum

import (
	"fmt"

	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/strategies/base"
)

const (
	// Name is the strategy's registry identifier
	Name        = "momentum"
	description = "Buys oversold and sells overbought readings of the mid price RSI"

	defaultPeriod      = 14
	defaultLow         = 30.0
	defaultHigh        = 70.0
	defaultTradeSize   = int64(10)
	defaultPositionCap = int64(100)
)

// Strategy implements RSI threshold execution
type Strategy struct {
	base.Strategy
	period      int
	low         float64
	high        float64
	tradeSize   int64
	positionCap int64

	mids []float64
}

// Name returns the strategy's registry identifier
func (s *Strategy) Name() string {
	return Name
}

// Description provides a one line summary for listings
func (s *Strategy) Description() string {
	return description
}

// SetDefaults restores the built in thresholds
func (s *Strategy) SetDefaults() {
	s.period = defaultPeriod
	s.low = defaultLow
	s.high = defaultHigh
	s.tradeSize = defaultTradeSize
	s.positionCap = defaultPositionCap
}

// SetCustomSettings accepts rsi-period, rsi-low, rsi-high, trade-size and
// position-cap
func (s *Strategy) SetCustomSettings(settings map[string]interface{}) error {
	for k, v := range settings {
		switch k {
		case "rsi-period":
			period, ok := base.ConvertInt(v)
			if !ok || period < 2 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.period = int(period)
		case "rsi-low":
			low, ok := base.ConvertFloat(v)
			if !ok || low <= 0 || low >= 100 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.low = low
		case "rsi-high":
			high, ok := base.ConvertFloat(v)
			if !ok || high <= 0 || high >= 100 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.high = high
		case "trade-size":
			size, ok := base.ConvertInt(v)
			if !ok || size <= 0 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.tradeSize = size
		case "position-cap":
			cap, ok := base.ConvertInt(v)
			if !ok || cap <= 0 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.positionCap = cap
		default:
			return fmt.Errorf("%w: unrecognised setting %s", base.ErrInvalidCustomSettings, k)
		}
	}
	if s.low >= s.high {
		return fmt.Errorf("%w: rsi-low %v must be below rsi-high %v",
			base.ErrInvalidCustomSettings, s.low, s.high)
	}
	return nil
}

// OnMarketEvent appends the latest mid to the history and crosses the
// spread when the RSI breaches a threshold. No orders are produced until
// the history covers a full period
func (s *Strategy) OnMarketEvent(_ data.Event, _ *orderbook.Book, snap signals.Snapshot) (base.Action, error) {
	if !snap.TwoSided {
		return base.Action{}, nil
	}
	s.mids = append(s.mids, snap.Mid)
	if len(s.mids) <= s.period {
		return base.Action{}, nil
	}
	// bound the history so long runs do not grow without limit
	if max := s.period * 10; len(s.mids) > max {
		s.mids = s.mids[len(s.mids)-max:]
	}

	rsi := indicators.RSI(s.mids, s.period)
	latest := rsi[len(rsi)-1]

	var action base.Action
	switch {
	case latest <= s.low && s.Inventory() < s.positionCap:
		action.Orders = append(action.Orders, base.OrderRequest{
			Side:     orderbook.Bid,
			Price:    snap.BestAsk,
			Quantity: s.tradeSize,
		})
	case latest >= s.high && s.Inventory() > -s.positionCap:
		action.Orders = append(action.Orders, base.OrderRequest{
			Side:     orderbook.Ask,
			Price:    snap.BestBid,
			Quantity: s.tradeSize,
		})
	}
	return action, nil
}
