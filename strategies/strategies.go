// Package strategies ties together the available strategy implementations
// and loads them by name
package strategies

import (
	"fmt"
	"strings"

	"github.com/quantforge/lobsim/log"
	"github.com/quantforge/lobsim/strategies/imbalance"
	"github.com/quantforge/lobsim/strategies/marketmaker"
	"github.com/quantforge/lobsim/strategies/momentum"
)

// LoadStrategyByName returns a fresh instance of the strategy matching
// name, case insensitively, with its defaults applied
func LoadStrategyByName(name string) (Handler, error) {
	for _, h := range GetStrategies() {
		if !strings.EqualFold(name, h.Name()) {
			continue
		}
		h.SetDefaults()
		log.Debugf(log.StrategyMgr, "loaded strategy '%v'", h.Name())
		return h, nil
	}
	return nil, fmt.Errorf("strategy '%v' %w", name, ErrStrategyNotFound)
}

// GetStrategies returns one instance of every registered strategy
func GetStrategies() []Handler {
	return []Handler{
		new(marketmaker.Strategy),
		new(momentum.Strategy),
		new(imbalance.Strategy),
	}
}
