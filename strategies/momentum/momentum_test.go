package momentum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/strategies/base"
)

func snapAt(mid float64) signals.Snapshot {
	return signals.Snapshot{
		BestBid:  int64(mid) - 1,
		BestAsk:  int64(mid) + 1,
		Mid:      mid,
		TwoSided: true,
	}
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	require.NoError(t, s.SetCustomSettings(map[string]interface{}{
		"rsi-period": 5,
		"rsi-low":    20.0,
		"rsi-high":   80.0,
		"trade-size": 2,
	}))
	assert.Equal(t, 5, s.period)
	assert.Equal(t, 20.0, s.low)
	assert.Equal(t, 80.0, s.high)

	err := s.SetCustomSettings(map[string]interface{}{"rsi-period": 1})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)

	s.SetDefaults()
	err = s.SetCustomSettings(map[string]interface{}{"rsi-low": 80.0, "rsi-high": 20.0})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)
}

func TestNoOrdersBeforeWarmup(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	for i := 0; i < s.period; i++ {
		action, err := s.OnMarketEvent(data.Event{}, nil, snapAt(100))
		require.NoError(t, err)
		assert.Empty(t, action.Orders)
	}
}

func TestBuysOversold(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{"rsi-period": 2}))

	var last base.Action
	for _, mid := range []float64{100, 98, 96, 94} {
		var err error
		last, err = s.OnMarketEvent(data.Event{}, nil, snapAt(mid))
		require.NoError(t, err)
	}
	require.Len(t, last.Orders, 1, "strictly falling mids are maximally oversold")
	assert.Equal(t, orderbook.Bid, last.Orders[0].Side)
	assert.Equal(t, int64(95), last.Orders[0].Price, "takes the ask")
}

func TestSellsOverbought(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{"rsi-period": 2}))

	var last base.Action
	for _, mid := range []float64{100, 102, 104, 106} {
		var err error
		last, err = s.OnMarketEvent(data.Event{}, nil, snapAt(mid))
		require.NoError(t, err)
	}
	require.Len(t, last.Orders, 1)
	assert.Equal(t, orderbook.Ask, last.Orders[0].Side)
	assert.Equal(t, int64(105), last.Orders[0].Price, "hits the bid")
}

func TestPositionCapStopsBuying(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{
		"rsi-period":   2,
		"position-cap": 10,
	}))
	s.OnFill(orderbook.Bid, 100, 10)

	var last base.Action
	for _, mid := range []float64{100, 98, 96, 94} {
		var err error
		last, err = s.OnMarketEvent(data.Event{}, nil, snapAt(mid))
		require.NoError(t, err)
	}
	assert.Empty(t, last.Orders)
}
