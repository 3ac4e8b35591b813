// Package base provides the embeddable default strategy behaviour shared by
// all strategy implementations
package base

import (
	"errors"

	"github.com/quantforge/lobsim/orderbook"
)

var (
	// ErrCustomSettingsUnsupported is returned by strategies that take no
	// custom settings
	ErrCustomSettingsUnsupported = errors.New("custom settings not supported")
	// ErrInvalidCustomSettings is returned when a recognised setting
	// carries a bad value
	ErrInvalidCustomSettings = errors.New("invalid custom settings")
)

// OrderRequest is a limit order intent. The engine assigns the order ID
// when it places the request on the book
type OrderRequest struct {
	Side     orderbook.Side
	Price    int64
	Quantity int64
}

// Action is everything a strategy wants done in response to one event.
// Cancels are executed before placements
type Action struct {
	// CancelAll withdraws every resting order the strategy owns
	CancelAll bool
	Orders    []OrderRequest
}

// Strategy is embedded by implementations to inherit no-op lifecycle hooks
// and simple inventory tracking
type Strategy struct {
	inventory int64
}

// OnStart is called once before the first event
func (s *Strategy) OnStart() error {
	return nil
}

// OnEnd is called once after the last event
func (s *Strategy) OnEnd() {}

// OnTrade receives every market execution, own fills included
func (s *Strategy) OnTrade(_ orderbook.Trade) {}

// OnFill adjusts inventory for an own order execution
func (s *Strategy) OnFill(side orderbook.Side, _, quantity int64) {
	if side == orderbook.Bid {
		s.inventory += quantity
		return
	}
	s.inventory -= quantity
}

// Inventory returns the signed net quantity filled so far
func (s *Strategy) Inventory() int64 {
	return s.inventory
}

// SetCustomSettings rejects all settings
func (s *Strategy) SetCustomSettings(map[string]interface{}) error {
	return ErrCustomSettingsUnsupported
}
