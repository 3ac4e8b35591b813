// Package marketmaker quotes both sides of the book around the microprice
// and backs off when inventory grows past its cap
package marketmaker

import (
	"fmt"
	"math"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/strategies/base"
)

const (
	// Name is the strategy's registry identifier
	Name        = "marketmaker"
	description = "Quotes a bid and an ask around the microprice, skewed against inventory"

	defaultSpreadBps    = 20.0
	defaultQuoteSize    = int64(10)
	defaultInventoryCap = int64(100)
)

// Strategy implements two sided quoting
type Strategy struct {
	base.Strategy
	spreadBps    float64
	quoteSize    int64
	inventoryCap int64

	lastBid int64
	lastAsk int64
}

// Name returns the strategy's registry identifier
func (s *Strategy) Name() string {
	return Name
}

// Description provides a one line summary for listings
func (s *Strategy) Description() string {
	return description
}

// SetDefaults restores the built in quoting parameters
func (s *Strategy) SetDefaults() {
	s.spreadBps = defaultSpreadBps
	s.quoteSize = defaultQuoteSize
	s.inventoryCap = defaultInventoryCap
}

// SetCustomSettings accepts spread-bps, quote-size and inventory-cap
func (s *Strategy) SetCustomSettings(settings map[string]interface{}) error {
	for k, v := range settings {
		switch k {
		case "spread-bps":
			bps, ok := base.ConvertFloat(v)
			if !ok || bps <= 0 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.spreadBps = bps
		case "quote-size":
			size, ok := base.ConvertInt(v)
			if !ok || size <= 0 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.quoteSize = size
		case "inventory-cap":
			cap, ok := base.ConvertInt(v)
			if !ok || cap <= 0 {
				return fmt.Errorf("%w: %s %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.inventoryCap = cap
		default:
			return fmt.Errorf("%w: unrecognised setting %s", base.ErrInvalidCustomSettings, k)
		}
	}
	return nil
}

// OnMarketEvent re-quotes whenever the fair value has moved the desired
// quote prices. A side is withheld while inventory on that side is capped
func (s *Strategy) OnMarketEvent(_ data.Event, _ *orderbook.Book, snap signals.Snapshot) (base.Action, error) {
	if !snap.TwoSided {
		return base.Action{}, nil
	}
	fair := snap.Microprice
	halfSpread := fair * s.spreadBps / 20000
	bid := int64(math.Floor(fair - halfSpread))
	ask := int64(math.Ceil(fair + halfSpread))
	if bid <= 0 || ask <= bid {
		return base.Action{}, nil
	}
	if bid == s.lastBid && ask == s.lastAsk {
		return base.Action{}, nil
	}

	action := base.Action{CancelAll: true}
	if s.Inventory() < s.inventoryCap {
		action.Orders = append(action.Orders, base.OrderRequest{
			Side:     orderbook.Bid,
			Price:    bid,
			Quantity: s.quoteSize,
		})
	}
	if s.Inventory() > -s.inventoryCap {
		action.Orders = append(action.Orders, base.OrderRequest{
			Side:     orderbook.Ask,
			Price:    ask,
			Quantity: s.quoteSize,
		})
	}
	s.lastBid = bid
	s.lastAsk = ask
	return action, nil
}
