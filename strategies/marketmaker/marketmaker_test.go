package marketmaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/strategies/base"
)

func twoSided(bid, ask int64, micro float64) signals.Snapshot {
	return signals.Snapshot{
		BestBid:    bid,
		BestAsk:    ask,
		Mid:        (float64(bid) + float64(ask)) / 2,
		Microprice: micro,
		TwoSided:   true,
	}
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	require.NoError(t, s.SetCustomSettings(map[string]interface{}{
		"spread-bps":    50.0,
		"quote-size":    int64(5),
		"inventory-cap": 20,
	}))
	assert.Equal(t, 50.0, s.spreadBps)
	assert.Equal(t, int64(5), s.quoteSize)
	assert.Equal(t, int64(20), s.inventoryCap)

	err := s.SetCustomSettings(map[string]interface{}{"spread-bps": -1.0})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)
	err = s.SetCustomSettings(map[string]interface{}{"wibble": 1})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)
}

func TestOnMarketEventQuotesBothSides(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	action, err := s.OnMarketEvent(data.Event{}, nil, twoSided(9990, 10010, 10000))
	require.NoError(t, err)
	assert.True(t, action.CancelAll)
	require.Len(t, action.Orders, 2)

	var bid, ask *base.OrderRequest
	for i := range action.Orders {
		if action.Orders[i].Side == orderbook.Bid {
			bid = &action.Orders[i]
		} else {
			ask = &action.Orders[i]
		}
	}
	require.NotNil(t, bid)
	require.NotNil(t, ask)
	assert.Less(t, bid.Price, ask.Price)
	assert.LessOrEqual(t, float64(bid.Price), 10000.0)
	assert.GreaterOrEqual(t, float64(ask.Price), 10000.0)
}

func TestOnMarketEventOneSidedBook(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	action, err := s.OnMarketEvent(data.Event{}, nil, signals.Snapshot{BestBid: 100})
	require.NoError(t, err)
	assert.False(t, action.CancelAll)
	assert.Empty(t, action.Orders)
}

func TestOnMarketEventUnchangedQuotes(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	snap := twoSided(9990, 10010, 10000)
	action, err := s.OnMarketEvent(data.Event{}, nil, snap)
	require.NoError(t, err)
	require.Len(t, action.Orders, 2)

	action, err = s.OnMarketEvent(data.Event{}, nil, snap)
	require.NoError(t, err)
	assert.Empty(t, action.Orders, "identical fair value must not re-quote")
}

func TestInventoryCapSuppressesSide(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{"inventory-cap": 10}))

	s.OnFill(orderbook.Bid, 10000, 10)
	action, err := s.OnMarketEvent(data.Event{}, nil, twoSided(9990, 10010, 10000))
	require.NoError(t, err)
	require.Len(t, action.Orders, 1, "long at cap must only quote the ask")
	assert.Equal(t, orderbook.Ask, action.Orders[0].Side)
}
