package portfolio

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidFill is returned when a fill carries a non positive price
	// or quantity
	ErrInvalidFill = errors.New("invalid fill")
	// ErrNegativeCash is returned when initial funds are negative
	ErrNegativeCash = errors.New("initial cash cannot be negative")
)

// Position is the signed holding in a single instrument. Quantity is
// positive when long and negative when short. AverageCost tracks the
// volume weighted entry price of the open quantity only
type Position struct {
	Instrument  string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	RealizedPNL decimal.Decimal
}

// EquityPoint is one mark to market observation
type EquityPoint struct {
	Timestamp     time.Time
	Equity        decimal.Decimal
	Cash          decimal.Decimal
	UnrealizedPNL decimal.Decimal
	RealizedPNL   decimal.Decimal
}

// Portfolio tracks cash, per instrument positions and the equity series
// produced by successive marks. Not safe for concurrent use
type Portfolio struct {
	initialCash    decimal.Decimal
	cash           decimal.Decimal
	commissionRate decimal.Decimal
	positions      map[string]*Position
	lastMarks      map[string]decimal.Decimal
	series         []EquityPoint
	fillCount      int
	volumeTraded   decimal.Decimal
	commissionPaid decimal.Decimal
}
