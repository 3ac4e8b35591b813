package data

import (
	"errors"
	"time"

	"github.com/quantforge/lobsim/orderbook"
)

var (
	// ErrParse is returned when a feed row cannot be decoded
	ErrParse = errors.New("could not parse market event")
	// ErrUnknownEventType is returned for an unrecognised event type token
	ErrUnknownEventType = errors.New("unknown market event type")
)

// EventType enumerates the feed actions a market event can carry
type EventType uint8

// Feed actions, EOD marks the end of a session and carries no order fields
const (
	Add EventType = iota
	Cancel
	Modify
	Trade
	EOD
)

func (t EventType) String() string {
	switch t {
	case Add:
		return "ADD"
	case Cancel:
		return "CANCEL"
	case Modify:
		return "MODIFY"
	case Trade:
		return "TRADE"
	case EOD:
		return "EOD"
	}
	return "UNKNOWN"
}

// Event is one observed market action. Sequence is strictly increasing
// across a feed and breaks timestamp ties, arrival order is authoritative
type Event struct {
	Sequence   int64
	Timestamp  time.Time
	Type       EventType
	Instrument string
	Side       orderbook.Side
	Price      int64
	Quantity   int64
	OrderID    orderbook.OrderID
}

// Source is a finite, replayable stream of market events
type Source interface {
	// Next returns the next event, ok is false once the source is
	// exhausted
	Next() (Event, bool)
	// Reset rewinds the source to its first event
	Reset() error
}
