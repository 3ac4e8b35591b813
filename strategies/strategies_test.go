package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStrategyByName(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"marketmaker", "MarketMaker", "momentum", "imbalance"} {
		h, err := LoadStrategyByName(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, h.Name())
		assert.NotEmpty(t, h.Description())
	}

	_, err := LoadStrategyByName("rocket")
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestLoadStrategyByNameReturnsFreshInstance(t *testing.T) {
	t.Parallel()
	first, err := LoadStrategyByName("imbalance")
	require.NoError(t, err)
	second, err := LoadStrategyByName("imbalance")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestGetStrategiesUniqueNames(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, h := range GetStrategies() {
		assert.False(t, seen[h.Name()], "duplicate strategy name %v", h.Name())
		seen[h.Name()] = true
	}
	assert.Len(t, seen, 3)
}
