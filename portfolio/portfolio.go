// Package portfolio keeps cash and position accounting for a simulation
// run using decimal arithmetic throughout
package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantforge/lobsim/orderbook"
)

var tenThousand = decimal.NewFromInt(10000)

// New returns a portfolio funded with initialCash. commissionBps is charged
// on the notional of every fill
func New(initialCash, commissionBps decimal.Decimal) (*Portfolio, error) {
	if initialCash.IsNegative() {
		return nil, ErrNegativeCash
	}
	return &Portfolio{
		initialCash:    initialCash,
		cash:           initialCash,
		commissionRate: commissionBps.Div(tenThousand),
		positions:      make(map[string]*Position),
		lastMarks:      make(map[string]decimal.Decimal),
	}, nil
}

// OnFill applies one execution. side is the side of this portfolio's own
// order, so a Bid fill increases the position and an Ask fill decreases it.
// Reducing a position realises P&L against the average cost, crossing
// through zero closes the old position and opens the remainder at the fill
// price
func (p *Portfolio) OnFill(instrument string, side orderbook.Side, price, quantity int64) error {
	if price <= 0 || quantity <= 0 {
		return fmt.Errorf("%w: price %v quantity %v", ErrInvalidFill, price, quantity)
	}
	px := decimal.NewFromInt(price)
	qty := decimal.NewFromInt(quantity)
	notional := px.Mul(qty)
	commission := notional.Mul(p.commissionRate)

	signed := qty
	if side == orderbook.Ask {
		signed = qty.Neg()
		p.cash = p.cash.Add(notional)
	} else {
		p.cash = p.cash.Sub(notional)
	}
	p.cash = p.cash.Sub(commission)
	p.commissionPaid = p.commissionPaid.Add(commission)
	p.fillCount++
	p.volumeTraded = p.volumeTraded.Add(qty)

	pos, ok := p.positions[instrument]
	if !ok {
		pos = &Position{Instrument: instrument}
		p.positions[instrument] = pos
	}
	p.applyToPosition(pos, px, signed)
	return nil
}

func (p *Portfolio) applyToPosition(pos *Position, price, signed decimal.Decimal) {
	if pos.Quantity.IsZero() || pos.Quantity.Sign() == signed.Sign() {
		// extending: blend the entry price
		total := pos.Quantity.Add(signed)
		weighted := pos.AverageCost.Mul(pos.Quantity.Abs()).Add(price.Mul(signed.Abs()))
		pos.AverageCost = weighted.Div(total.Abs())
		pos.Quantity = total
		return
	}

	closing := decimal.Min(pos.Quantity.Abs(), signed.Abs())
	direction := decimal.NewFromInt(int64(pos.Quantity.Sign()))
	pos.RealizedPNL = pos.RealizedPNL.Add(
		price.Sub(pos.AverageCost).Mul(closing).Mul(direction))

	remainder := signed.Abs().Sub(pos.Quantity.Abs())
	switch {
	case remainder.IsPositive():
		// flipped through zero, remainder opens at the fill price
		pos.Quantity = remainder.Mul(decimal.NewFromInt(int64(signed.Sign())))
		pos.AverageCost = price
	case remainder.IsZero():
		pos.Quantity = decimal.Zero
		pos.AverageCost = decimal.Zero
	default:
		pos.Quantity = pos.Quantity.Add(signed)
	}
}

// MarkToMarket values every position at the supplied prices and appends an
// equity observation. Instruments missing from marks reuse their previous
// mark, falling back to average cost before any mark exists
func (p *Portfolio) MarkToMarket(ts time.Time, marks map[string]int64) EquityPoint {
	for instrument, price := range marks {
		if price > 0 {
			p.lastMarks[instrument] = decimal.NewFromInt(price)
		}
	}
	var unrealized, realized decimal.Decimal
	for instrument, pos := range p.positions {
		realized = realized.Add(pos.RealizedPNL)
		if pos.Quantity.IsZero() {
			continue
		}
		mark, ok := p.lastMarks[instrument]
		if !ok {
			mark = pos.AverageCost
		}
		unrealized = unrealized.Add(mark.Sub(pos.AverageCost).Mul(pos.Quantity))
	}
	point := EquityPoint{
		Timestamp:     ts,
		Cash:          p.cash,
		UnrealizedPNL: unrealized,
		RealizedPNL:   realized,
		Equity:        p.cash.Add(p.positionValue()),
	}
	p.series = append(p.series, point)
	return point
}

func (p *Portfolio) positionValue() decimal.Decimal {
	var value decimal.Decimal
	for instrument, pos := range p.positions {
		if pos.Quantity.IsZero() {
			continue
		}
		mark, ok := p.lastMarks[instrument]
		if !ok {
			mark = pos.AverageCost
		}
		value = value.Add(mark.Mul(pos.Quantity))
	}
	return value
}

// Cash returns the current cash balance
func (p *Portfolio) Cash() decimal.Decimal {
	return p.cash
}

// InitialCash returns the funding amount
func (p *Portfolio) InitialCash() decimal.Decimal {
	return p.initialCash
}

// Equity returns cash plus the marked value of all open positions
func (p *Portfolio) Equity() decimal.Decimal {
	return p.cash.Add(p.positionValue())
}

// Position returns the holding for an instrument. ok is false when the
// instrument has never been traded
func (p *Portfolio) Position(instrument string) (Position, bool) {
	pos, ok := p.positions[instrument]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// RealizedPNL sums realised P&L across all instruments, net of nothing,
// commissions are reflected in cash only
func (p *Portfolio) RealizedPNL() decimal.Decimal {
	var total decimal.Decimal
	for _, pos := range p.positions {
		total = total.Add(pos.RealizedPNL)
	}
	return total
}

// Series returns the recorded equity observations in mark order
func (p *Portfolio) Series() []EquityPoint {
	return p.series
}

// FillCount returns the number of fills applied
func (p *Portfolio) FillCount() int {
	return p.fillCount
}

// VolumeTraded returns the cumulative filled quantity
func (p *Portfolio) VolumeTraded() decimal.Decimal {
	return p.volumeTraded
}

// CommissionPaid returns cumulative commissions charged
func (p *Portfolio) CommissionPaid() decimal.Decimal {
	return p.commissionPaid
}

// Reset restores the funded state, dropping positions, marks and the
// equity series
func (p *Portfolio) Reset() {
	p.cash = p.initialCash
	p.positions = make(map[string]*Position)
	p.lastMarks = make(map[string]decimal.Decimal)
	p.series = nil
	p.fillCount = 0
	p.volumeTraded = decimal.Zero
	p.commissionPaid = decimal.Zero
}
