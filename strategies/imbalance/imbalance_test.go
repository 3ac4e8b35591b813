package imbalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/orderbook"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/strategies/base"
)

func snapWithImbalance(im float64) signals.Snapshot {
	return signals.Snapshot{
		BestBid:   99,
		BestAsk:   101,
		Imbalance: im,
		TwoSided:  true,
	}
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	require.NoError(t, s.SetCustomSettings(map[string]interface{}{
		"threshold":  0.8,
		"trade-size": 5,
	}))
	assert.Equal(t, 0.8, s.threshold)
	assert.Equal(t, int64(5), s.tradeSize)

	err := s.SetCustomSettings(map[string]interface{}{"threshold": 1.5})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)
}

func TestOnMarketEvent(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	action, err := s.OnMarketEvent(data.Event{}, nil, snapWithImbalance(0.7))
	require.NoError(t, err)
	require.Len(t, action.Orders, 1)
	assert.Equal(t, orderbook.Bid, action.Orders[0].Side)
	assert.Equal(t, int64(101), action.Orders[0].Price)

	action, err = s.OnMarketEvent(data.Event{}, nil, snapWithImbalance(-0.7))
	require.NoError(t, err)
	require.Len(t, action.Orders, 1)
	assert.Equal(t, orderbook.Ask, action.Orders[0].Side)
	assert.Equal(t, int64(99), action.Orders[0].Price)

	action, err = s.OnMarketEvent(data.Event{}, nil, snapWithImbalance(0.2))
	require.NoError(t, err)
	assert.Empty(t, action.Orders, "inside the threshold")
}

func TestOneSidedBookProducesNothing(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()

	action, err := s.OnMarketEvent(data.Event{}, nil, signals.Snapshot{Imbalance: 1})
	require.NoError(t, err)
	assert.Empty(t, action.Orders)
}

func TestPositionCap(t *testing.T) {
	t.Parallel()
	s := new(Strategy)
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{"position-cap": 10}))

	s.OnFill(orderbook.Ask, 100, 10)
	action, err := s.OnMarketEvent(data.Event{}, nil, snapWithImbalance(-0.9))
	require.NoError(t, err)
	assert.Empty(t, action.Orders, "short at cap must not sell more")
}
