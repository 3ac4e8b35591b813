package orderbook

import (
	"errors"
	"time"
)

var (
	// ErrInvalidOrder occurs when an order has a non-positive price or
	// quantity, or reuses a live order ID
	ErrInvalidOrder = errors.New("invalid order")
	// ErrOrderNotFound occurs when a cancel or modify references an unknown
	// or already terminal order ID
	ErrOrderNotFound = errors.New("order not found")
	// ErrCrossedBook occurs when the book invariant best bid < best ask is
	// violated after a mutation; it indicates internal corruption and is
	// never expected in correct operation
	ErrCrossedBook = errors.New("crossed book invariant violation")
)

// OrderID uniquely identifies an order within a book
type OrderID uint64

// Side denotes which half of the book an order rests on
type Side uint8

// Book sides
const (
	Bid Side = iota
	Ask
)

// String implements the stringer interface
func (s Side) String() string {
	switch s {
	case Bid:
		return "BID"
	case Ask:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side of the book
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

// Status defines an order's lifecycle state
type Status uint8

// Order lifecycle states
const (
	Active Status = iota
	PartiallyFilled
	Filled
	Cancelled
)

// String implements the stringer interface
func (s Status) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case PartiallyFilled:
		return "PARTIALLY_FILLED"
	case Filled:
		return "FILLED"
	case Cancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Order is a single resting or incoming limit order. Price is an integer
// tick count and quantity an integer lot count; floating point never enters
// the matching path. An order is owned by the price level that holds it and
// is unlinked on fill or cancel
type Order struct {
	ID        OrderID
	Side      Side
	Price     int64
	Quantity  int64 // remaining
	Original  int64
	Sequence  int64
	Timestamp time.Time
	Status    Status

	// intrusive level queue links, O(1) unlink on cancel
	next *Order
	prev *Order
}

// FilledQuantity returns the executed portion of the order
func (o *Order) FilledQuantity() int64 {
	return o.Original - o.Quantity
}

// Trade is an immutable record of a single match. It is created once by the
// matching step and never mutated; price improvement favours the resting
// side so Price is always the maker's price
type Trade struct {
	Price     int64
	Quantity  int64
	Aggressor Side
	MakerID   OrderID
	TakerID   OrderID
	Sequence  int64
	Timestamp time.Time
}

// LevelChange reports the aggregate quantity now resting at a price after a
// mutation; a zero TotalQuantity means the level was removed
type LevelChange struct {
	Side          Side
	Price         int64
	TotalQuantity int64
}

// Delta carries everything a single book mutation produced
type Delta struct {
	Trades  []Trade
	Changed []LevelChange
}

// PriceLevel is an aggregated view of one price tick for depth queries
type PriceLevel struct {
	Price         int64
	TotalQuantity int64
	OrderCount    int
}

// Stats is a point in time aggregate of the whole book
type Stats struct {
	BestBid     int64
	BestAsk     int64
	BidVolume   int64
	AskVolume   int64
	BidLevels   int
	AskLevels   int
	TotalOrders int
	LastPrice   int64
}

// Counters tracks cumulative operations applied to a book over its lifetime
type Counters struct {
	OrdersAdded     uint64
	OrdersCancelled uint64
	OrdersModified  uint64
	TradesExecuted  uint64
	VolumeTraded    uint64
}
