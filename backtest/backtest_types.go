package backtest

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/portfolio"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/statistics"
	"github.com/quantforge/lobsim/strategies"
)

var (
	// ErrNilSettings is returned when no settings are supplied
	ErrNilSettings = errors.New("received nil settings")
	// ErrNilSource is returned when no event source is supplied
	ErrNilSource = errors.New("received nil event source")
	// ErrNilStrategy is returned when no strategy is supplied
	ErrNilStrategy = errors.New("received nil strategy")
	// ErrNoInstrument is returned when the instrument is empty
	ErrNoInstrument = errors.New("no instrument set")
	// ErrOutOfOrderEvent is returned when a feed event's sequence or
	// timestamp moves backwards, the run cannot continue
	ErrOutOfOrderEvent = errors.New("event out of order")
	// ErrNotRunnable is returned when Run is called on an engine that
	// already ran
	ErrNotRunnable = errors.New("run already started, reset before running again")
	// ErrNotFinished is returned when results are requested before the
	// run finished
	ErrNotFinished = errors.New("run has not finished")
)

// State is the engine lifecycle phase
type State uint8

// An engine starts Idle, moves to Running on Run and ends Finished or
// Failed
const (
	Idle State = iota
	Running
	Finished
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Settings fully describes one run. Each run needs its own Source, sources
// hold replay position
type Settings struct {
	Instrument    string
	Source        data.Source
	Strategy      strategies.Handler
	InitialCash   decimal.Decimal
	CommissionBps decimal.Decimal
	Signals       signals.Config
	Statistics    statistics.Config
}

// Progress summarises how far a run got
type Progress struct {
	EventsProcessed int64
	EventsSkipped   int64
	OrdersPlaced    int64
	OrdersCancelled int64
	Fills           int64
}

// Engine replays one event feed through a book, a strategy and a
// portfolio. Not safe for concurrent use, run engines in parallel via Sweep
type Engine struct {
	id       uuid.UUID
	settings Settings
	state    State

	book      *orderbook.Book
	portfolio *portfolio.Portfolio

	strategyOrders map[orderbook.OrderID]struct{}
	nextOrderID    orderbook.OrderID

	lastSequence   int64
	lastTimestamp  time.Time
	lastTradePrice int64
	progress       Progress
}

// strategy order IDs live in their own range so they can never collide
// with feed order IDs
const strategyIDBase orderbook.OrderID = 1 << 62
