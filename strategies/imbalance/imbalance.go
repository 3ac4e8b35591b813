// Package imbalance crosses the spread when resting volume leans far
// enough to one side of the book
package imbalance

import (
	"fmt"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/strategies/base"
)

const (
	// Name is the strategy's registry identifier
	Name        = "imbalance"
	description = "Trades in the direction of heavy order book imbalance"

	defaultThreshold   = 0.6
	defaultTradeSize   = int64(10)
	defaultPositionCap = int64(100)
)

// Strategy implements threshold execution on the depth imbalance signal
type Strategy struct {
	base.Strategy
	threshold   float64
	tradeSize   int64
	positionCap int64
}

// Name returns the strategy's registry identifier
func (s *Strategy) Name() string {
	return Name
}

// Description provides a one line summary for listings
func (s *Strategy) Description() string {
	return description
}

// SetDefaults restores the built in threshold and sizing
func (s *Strategy) SetDefaults() {
	s.threshold = defaultThreshold
	s.tradeSize = defaultTradeSize
	s.positionCap = defaultPositionCap
}

// SetCustomSettings accepts threshold, trade-size and position-cap
func (s *Strategy) SetCustomSettings(settings map[string]interface{}) error {
	for k, v := range settings {
		switch k {
		case "threshold":
			threshold, ok := base.ConvertFloat(v)
			if !ok || threshold <= 0 || threshold >= 1 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.threshold = threshold
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
	return nil
}

// OnMarketEvent buys into heavy bid side depth and sells into heavy ask
// side depth, always taking the touch
func (s *Strategy) OnMarketEvent(_ data.Event, _ *orderbook.Book, snap signals.Snapshot) (base.Action, error) {
	if !snap.TwoSided {
		return base.Action{}, nil
	}
	var action base.Action
	switch {
	case snap.Imbalance >= s.threshold && s.Inventory() < s.positionCap:
		action.Orders = append(action.Orders, base.OrderRequest{
			Side:     orderbook.Bid,
			Price:    snap.BestAsk,
			Quantity: s.tradeSize,
		})
	case snap.Imbalance <= -s.threshold && s.Inventory() > -s.positionCap:
		action.Orders = append(action.Orders, base.OrderRequest{
			Side:     orderbook.Ask,
			Price:    snap.BestBid,
			Quantity: s.tradeSize,
		})
	}
	return action, nil
}
