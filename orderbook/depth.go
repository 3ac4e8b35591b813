package orderbook

// BestBid returns the highest resting bid price and its aggregate quantity;
// ok is false when no bids rest
func (b *Book) BestBid() (price, quantity int64, ok bool) {
	lv, ok := b.bids.best()
	if !ok {
		return 0, 0, false
	}
	return lv.price, lv.totalQuantity, true
}

// BestAsk returns the lowest resting ask price and its aggregate quantity;
// ok is false when no asks rest
func (b *Book) BestAsk() (price, quantity int64, ok bool) {
	lv, ok := b.asks.best()
	if !ok {
		return 0, 0, false
	}
	return lv.price, lv.totalQuantity, true
}

// MidPrice returns the midpoint of the touch in ticks, 0 when either side
// is empty
func (b *Book) MidPrice() int64 {
	bid, _, okBid := b.BestBid()
	ask, _, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0
	}
	return (bid + ask) / 2
}

// Spread returns best ask minus best bid in ticks, 0 when either side is
// empty
func (b *Book) Spread() int64 {
	bid, _, okBid := b.BestBid()
	ask, _, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0
	}
	return ask - bid
}

// LastPrice returns the price of the most recent trade, 0 before any trade
func (b *Book) LastPrice() int64 {
	return b.lastPrice
}

// DepthAt returns total resting quantity over the top n levels of a side;
// n <= 0 covers the whole side
func (b *Book) DepthAt(side Side, n int) int64 {
	return b.side(side).volume(n)
}

// Levels returns aggregated views of the top n levels of a side, best
// first; n <= 0 returns every level
func (b *Book) Levels(side Side, n int) []PriceLevel {
	lad := b.side(side)
	if n <= 0 || n > lad.depth() {
		n = lad.depth()
	}
	out := make([]PriceLevel, 0, n)
	for i := 0; i < n; i++ {
		lv, ok := lad.at(i)
		if !ok {
			break
		}
		out = append(out, lv.snapshot())
	}
	return out
}

// OrdersAt returns copies of the orders resting at a price in queue order
func (b *Book) OrdersAt(side Side, price int64) []Order {
	lv, ok := b.side(side).get(price)
	if !ok {
		return nil
	}
	out := make([]Order, 0, lv.orderCount)
	for cur := lv.head; cur != nil; cur = cur.next {
		c := *cur
		c.next = nil
		c.prev = nil
		out = append(out, c)
	}
	return out
}

// Stats aggregates the whole book for reporting and diagnostics
func (b *Book) Stats() Stats {
	s := Stats{
		BidLevels:   b.bids.depth(),
		AskLevels:   b.asks.depth(),
		BidVolume:   b.bids.volume(0),
		AskVolume:   b.asks.volume(0),
		TotalOrders: len(b.orders),
		LastPrice:   b.lastPrice,
	}
	if lv, ok := b.bids.best(); ok {
		s.BestBid = lv.price
	}
	if lv, ok := b.asks.best(); ok {
		s.BestAsk = lv.price
	}
	return s
}
