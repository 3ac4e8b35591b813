// Package backtest drives a strategy over a recorded event feed, one event
// at a time, and collects the resulting performance statistics
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/log"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/portfolio"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/statistics"
	"github.com/quantforge/lobsim/strategies/base"
)

// New validates settings and assembles a ready to run engine
func New(settings *Settings) (*Engine, error) {
	if settings == nil {
		return nil, ErrNilSettings
	}
	if settings.Source == nil {
		return nil, ErrNilSource
	}
	if settings.Strategy == nil {
		return nil, ErrNilStrategy
	}
	if settings.Instrument == "" {
		return nil, ErrNoInstrument
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p, err := portfolio.New(settings.InitialCash, settings.CommissionBps)
	if err != nil {
		return nil, err
	}
	return &Engine{
		id:             id,
		settings:       *settings,
		book:           orderbook.New(settings.Instrument),
		portfolio:      p,
		strategyOrders: make(map[orderbook.OrderID]struct{}),
		nextOrderID:    strategyIDBase,
	}, nil
}

// ID returns the run identifier
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// State returns the engine lifecycle phase
func (e *Engine) State() State {
	return e.state
}

// Book exposes the reconstructed order book
func (e *Engine) Book() *orderbook.Book {
	return e.book
}

// Portfolio exposes the accounting state
func (e *Engine) Portfolio() *portfolio.Portfolio {
	return e.portfolio
}

// Progress returns run activity counters
func (e *Engine) Progress() Progress {
	return e.progress
}

// Run replays the feed to exhaustion or the first end of session marker.
// Malformed feed actions are logged and skipped, out of order events and
// strategy errors end the run as Failed. ctx is checked between events
func (e *Engine) Run(ctx context.Context) error {
	if e.state != Idle {
		return fmt.Errorf("%w: state %v", ErrNotRunnable, e.state)
	}
	e.state = Running
	log.Infof(log.BackTester, "run %v started for %v using strategy '%v'",
		e.id, e.settings.Instrument, e.settings.Strategy.Name())

	if err := e.settings.Strategy.OnStart(); err != nil {
		return e.fail(fmt.Errorf("strategy start: %w", err))
	}
	for {
		if err := ctx.Err(); err != nil {
			return e.fail(err)
		}
		event, ok := e.settings.Source.Next()
		if !ok {
			break
		}
		if event.Type == data.EOD {
			log.Debugf(log.BackTester, "run %v end of session at sequence %v",
				e.id, event.Sequence)
			break
		}
		if err := e.processEvent(event); err != nil {
			return e.fail(err)
		}
	}
	e.settings.Strategy.OnEnd()
	e.state = Finished
	log.Infof(log.BackTester, "run %v finished, %v events processed, %v skipped, %v fills",
		e.id, e.progress.EventsProcessed, e.progress.EventsSkipped, e.progress.Fills)
	counters := e.book.Counters()
	log.Debugf(log.OrderBookMgr, "run %v book saw %v adds, %v cancels, %v modifies, %v trades for %v volume",
		e.id, counters.OrdersAdded, counters.OrdersCancelled, counters.OrdersModified,
		counters.TradesExecuted, counters.VolumeTraded)
	return nil
}

func (e *Engine) fail(err error) error {
	e.state = Failed
	log.Errorf(log.BackTester, "run %v failed: %v", e.id, err)
	return err
}

// processEvent runs the full per event pipeline: ordering check, book
// application, signal computation, strategy invocation, action execution
// and the mark to market
func (e *Engine) processEvent(event data.Event) error {
	if event.Sequence <= e.lastSequence || event.Timestamp.Before(e.lastTimestamp) {
		return fmt.Errorf("%w: sequence %v after %v", ErrOutOfOrderEvent,
			event.Sequence, e.lastSequence)
	}
	e.lastSequence = event.Sequence
	e.lastTimestamp = event.Timestamp

	if err := e.applyToBook(event); err != nil {
		return err
	}

	snap := signals.Compute(e.book, e.settings.Signals)
	snap.Timestamp = event.Timestamp
	action, err := e.settings.Strategy.OnMarketEvent(event, e.book, snap)
	if err != nil {
		return fmt.Errorf("strategy event handling: %w", err)
	}
	if err := e.executeAction(event, action); err != nil {
		return err
	}

	e.markToMarket(event, snap)
	e.progress.EventsProcessed++
	return nil
}

func (e *Engine) applyToBook(event data.Event) error {
	var delta *orderbook.Delta
	var err error
	switch event.Type {
	case data.Add:
		delta, err = e.book.AddOrder(&orderbook.Order{
			ID:        event.OrderID,
			Side:      event.Side,
			Price:     event.Price,
			Quantity:  event.Quantity,
			Sequence:  event.Sequence,
			Timestamp: event.Timestamp,
		})
	case data.Cancel:
		err = e.book.CancelOrder(event.OrderID)
	case data.Modify:
		err = e.book.ModifyOrder(event.OrderID, event.Quantity)
	case data.Trade:
		// off book execution, no depth change
		e.lastTradePrice = event.Price
		e.settings.Strategy.OnTrade(orderbook.Trade{
			Price:     event.Price,
			Quantity:  event.Quantity,
			Aggressor: event.Side,
			Sequence:  event.Sequence,
			Timestamp: event.Timestamp,
		})
		return nil
	}
	if err != nil {
		if errors.Is(err, orderbook.ErrInvalidOrder) ||
			errors.Is(err, orderbook.ErrOrderNotFound) {
			log.Warnf(log.BackTester, "run %v skipping event %v: %v",
				e.id, event.Sequence, err)
			e.progress.EventsSkipped++
			return nil
		}
		return err
	}
	e.routeFills(delta)
	return nil
}

// executeAction performs the strategy's cancels, then its placements.
// Rejected placements are logged and skipped
func (e *Engine) executeAction(event data.Event, action base.Action) error {
	if action.CancelAll {
		for id := range e.strategyOrders {
			if err := e.book.CancelOrder(id); err != nil &&
				!errors.Is(err, orderbook.ErrOrderNotFound) {
				return err
			}
			delete(e.strategyOrders, id)
			e.progress.OrdersCancelled++
		}
	}
	for i := range action.Orders {
		req := action.Orders[i]
		e.nextOrderID++
		id := e.nextOrderID
		delta, err := e.book.AddOrder(&orderbook.Order{
			ID:        id,
			Side:      req.Side,
			Price:     req.Price,
			Quantity:  req.Quantity,
			Sequence:  e.lastSequence,
			Timestamp: event.Timestamp,
		})
		if err != nil {
			if errors.Is(err, orderbook.ErrInvalidOrder) {
				log.Warnf(log.BackTester, "run %v rejected strategy order: %v", e.id, err)
				continue
			}
			return err
		}
		e.progress.OrdersPlaced++
		if _, resting := e.book.Order(id); resting {
			e.strategyOrders[id] = struct{}{}
		}
		e.routeFills(delta)
	}
	return nil
}

// routeFills forwards every execution to the strategy and books the ones
// touching strategy owned orders into the portfolio
func (e *Engine) routeFills(delta *orderbook.Delta) {
	for i := range delta.Trades {
		t := delta.Trades[i]
		e.lastTradePrice = t.Price
		e.settings.Strategy.OnTrade(t)

		if _, ok := e.strategyOrders[t.MakerID]; ok {
			e.applyOwnFill(t.Aggressor.Opposite(), t.Price, t.Quantity)
			if _, resting := e.book.Order(t.MakerID); !resting {
				delete(e.strategyOrders, t.MakerID)
			}
		}
		if t.TakerID >= strategyIDBase {
			e.applyOwnFill(t.Aggressor, t.Price, t.Quantity)
		}
	}
}

func (e *Engine) applyOwnFill(side orderbook.Side, price, quantity int64) {
	e.progress.Fills++
	e.settings.Strategy.OnFill(side, price, quantity)
	if err := e.portfolio.OnFill(e.settings.Instrument, side, price, quantity); err != nil {
		log.Errorf(log.PortfolioMgr, "run %v could not book fill: %v", e.id, err)
	}
}

// markToMarket values the portfolio at the mid when the book is two sided,
// falling back to the last trade price
func (e *Engine) markToMarket(event data.Event, snap signals.Snapshot) {
	price := int64(snap.Mid)
	if !snap.TwoSided {
		price = e.lastTradePrice
	}
	e.portfolio.MarkToMarket(event.Timestamp, map[string]int64{
		e.settings.Instrument: price,
	})
}

// Results produces the statistics report of a finished run
func (e *Engine) Results() (*statistics.Report, error) {
	if e.state != Finished {
		return nil, fmt.Errorf("%w: state %v", ErrNotFinished, e.state)
	}
	return statistics.CalculateWithActivity(e.portfolio, e.settings.Statistics)
}

// Reset rewinds the source and restores the engine to Idle so the same
// settings can be replayed
func (e *Engine) Reset() error {
	if err := e.settings.Source.Reset(); err != nil {
		return err
	}
	e.book.Clear()
	e.portfolio.Reset()
	e.strategyOrders = make(map[orderbook.OrderID]struct{})
	e.nextOrderID = strategyIDBase
	e.lastSequence = 0
	e.lastTimestamp = time.Time{}
	e.lastTradePrice = 0
	e.progress = Progress{}
	e.state = Idle
	return nil
}
