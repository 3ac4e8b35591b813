package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/lobsim/orderbook"
)

const instrument = "TEST"

func newPortfolio(t *testing.T) *Portfolio {
	t.Helper()
	p, err := New(decimal.NewFromInt(100000), decimal.Zero)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, ErrNegativeCash)

	p, err := New(decimal.NewFromInt(500), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(500)))
	assert.True(t, p.Equity().Equal(decimal.NewFromInt(500)))
}

func TestOnFillValidation(t *testing.T) {
	t.Parallel()
	p := newPortfolio(t)
	assert.ErrorIs(t, p.OnFill(instrument, orderbook.Bid, 0, 10), ErrInvalidFill)
	assert.ErrorIs(t, p.OnFill(instrument, orderbook.Bid, 10, 0), ErrInvalidFill)
}

func TestWeightedAverageCost(t *testing.T) {
	t.Parallel()
	p := newPortfolio(t)
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 10, 100))
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 12, 100))

	pos, ok := p.Position(instrument)
	require.True(t, ok)
	assert.True(t, pos.Quantity.Equal(decimal.NewFromInt(200)))
	assert.True(t, pos.AverageCost.Equal(decimal.NewFromInt(11)), "got %v", pos.AverageCost)
	assert.True(t, pos.RealizedPNL.IsZero())
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(100000-1000-1200)))
}

func TestRealizeOnReduce(t *testing.T) {
	t.Parallel()
	p := newPortfolio(t)
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 10, 100))
	require.NoError(t, p.OnFill(instrument, orderbook.Ask, 13, 40))

	pos, ok := p.Position(instrument)
	require.True(t, ok)
	assert.True(t, pos.Quantity.Equal(decimal.NewFromInt(60)))
	assert.True(t, pos.AverageCost.Equal(decimal.NewFromInt(10)), "cost basis unchanged on reduce")
	assert.True(t, pos.RealizedPNL.Equal(decimal.NewFromInt(120)), "got %v", pos.RealizedPNL)
}

func TestFlipThroughZero(t *testing.T) {
	t.Parallel()
	p := newPortfolio(t)
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 10, 100))
	require.NoError(t, p.OnFill(instrument, orderbook.Ask, 14, 150))

	pos, ok := p.Position(instrument)
	require.True(t, ok)
	assert.True(t, pos.Quantity.Equal(decimal.NewFromInt(-50)))
	assert.True(t, pos.AverageCost.Equal(decimal.NewFromInt(14)), "remainder opens at fill price")
	assert.True(t, pos.RealizedPNL.Equal(decimal.NewFromInt(400)))
}

func TestShortSideRealization(t *testing.T) {
	t.Parallel()
	p := newPortfolio(t)
	require.NoError(t, p.OnFill(instrument, orderbook.Ask, 20, 50))
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 15, 50))

	pos, ok := p.Position(instrument)
	require.True(t, ok)
	assert.True(t, pos.Quantity.IsZero())
	assert.True(t, pos.RealizedPNL.Equal(decimal.NewFromInt(250)), "short covered below entry profits")
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(100000+1000-750)))
}

func TestCommission(t *testing.T) {
	t.Parallel()
	p, err := New(decimal.NewFromInt(100000), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 100, 100))

	// 10bps on a 10000 notional is 10
	assert.True(t, p.CommissionPaid().Equal(decimal.NewFromInt(10)))
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(100000-10000-10)))
}

func TestMarkToMarket(t *testing.T) {
	t.Parallel()
	p := newPortfolio(t)
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 10, 100))

	point := p.MarkToMarket(time.Unix(1, 0), map[string]int64{instrument: 12})
	assert.True(t, point.UnrealizedPNL.Equal(decimal.NewFromInt(200)))
	assert.True(t, point.Equity.Equal(decimal.NewFromInt(100000-1000+1200)))

	// missing mark reuses the previous one
	point = p.MarkToMarket(time.Unix(2, 0), nil)
	assert.True(t, point.UnrealizedPNL.Equal(decimal.NewFromInt(200)))

	require.Len(t, p.Series(), 2)
	assert.Equal(t, time.Unix(1, 0), p.Series()[0].Timestamp)
}

func TestReset(t *testing.T) {
	t.Parallel()
	p := newPortfolio(t)
	require.NoError(t, p.OnFill(instrument, orderbook.Bid, 10, 100))
	p.MarkToMarket(time.Unix(1, 0), map[string]int64{instrument: 11})

	p.Reset()
	assert.True(t, p.Cash().Equal(p.InitialCash()))
	assert.Empty(t, p.Series())
	assert.Zero(t, p.FillCount())
	_, ok := p.Position(instrument)
	assert.False(t, ok)
}
