package orderbook

import "sort"

// ladder holds one side of the book: price levels sorted best first (bids
// descending, asks ascending) with a map for O(1) level lookup by price.
// Insertion and removal find the slot with a binary search over the price
// slice
type ladder struct {
	side   Side
	prices []int64
	levels map[int64]*level
}

func newLadder(side Side) *ladder {
	return &ladder{
		side:   side,
		levels: make(map[int64]*level),
	}
}

// slot returns the index at which price belongs in the best-first ordering
func (l *ladder) slot(price int64) int {
	if l.side == Bid {
		return sort.Search(len(l.prices), func(i int) bool {
			return l.prices[i] <= price
		})
	}
	return sort.Search(len(l.prices), func(i int) bool {
		return l.prices[i] >= price
	})
}

func (l *ladder) get(price int64) (*level, bool) {
	lv, ok := l.levels[price]
	return lv, ok
}

// getOrCreate returns the level at price, creating and slotting it into the
// correct rank when no order currently rests there
func (l *ladder) getOrCreate(price int64) *level {
	if lv, ok := l.levels[price]; ok {
		return lv
	}
	lv := newLevel(price, l.side)
	l.levels[price] = lv
	i := l.slot(price)
	l.prices = append(l.prices, 0)
	copy(l.prices[i+1:], l.prices[i:])
	l.prices[i] = price
	return lv
}

// remove drops an empty level from the ladder
func (l *ladder) remove(price int64) {
	if _, ok := l.levels[price]; !ok {
		return
	}
	delete(l.levels, price)
	i := l.slot(price)
	if i < len(l.prices) && l.prices[i] == price {
		l.prices = append(l.prices[:i], l.prices[i+1:]...)
	}
}

// best returns the top of the ladder
func (l *ladder) best() (*level, bool) {
	if len(l.prices) == 0 {
		return nil, false
	}
	return l.levels[l.prices[0]], true
}

// at returns the level at rank i, 0 being the best price
func (l *ladder) at(i int) (*level, bool) {
	if i < 0 || i >= len(l.prices) {
		return nil, false
	}
	return l.levels[l.prices[i]], true
}

func (l *ladder) depth() int {
	return len(l.prices)
}

// volume sums resting quantity over the top n levels; n <= 0 covers the
// whole side
func (l *ladder) volume(n int) int64 {
	if n <= 0 || n > len(l.prices) {
		n = len(l.prices)
	}
	var total int64
	for i := 0; i < n; i++ {
		total += l.levels[l.prices[i]].totalQuantity
	}
	return total
}
