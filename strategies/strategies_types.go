package strategies

import (
	"errors"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/strategies/base"
)

var (
	// ErrStrategyNotFound is returned when a requested strategy name
	// matches no registered strategy
	ErrStrategyNotFound = errors.New("strategy not found")
)

// Handler defines the strategy lifecycle. OnMarketEvent runs after the
// event has been applied to the book and its signals computed, the returned
// action is executed immediately
type Handler interface {
	Name() string
	Description() string
	OnStart() error
	OnMarketEvent(e data.Event, book *orderbook.Book, snap signals.Snapshot) (base.Action, error)
	OnTrade(t orderbook.Trade)
	OnFill(side orderbook.Side, price, quantity int64)
	OnEnd()
	SetCustomSettings(map[string]interface{}) error
	SetDefaults()
}
