// Package signals derives microstructure readings from order book state.
// The snapshot functions are pure, anything carrying history across events
// lives in a tracker type owned by the caller
package signals

import (
	"github.com/quantforge/lobsim/orderbook"
)

// Imbalance returns (bidVolume-askVolume)/(bidVolume+askVolume) over the top
// n levels per side, bounded to [-1, 1]. An empty book yields 0
func Imbalance(b *orderbook.Book, n int) float64 {
	bid := b.DepthAt(orderbook.Bid, n)
	ask := b.DepthAt(orderbook.Ask, n)
	total := bid + ask
	if total == 0 {
		return 0
	}
	return float64(bid-ask) / float64(total)
}

// Mid returns the arithmetic midpoint of the best bid and ask, 0 when
// either side is empty
func Mid(b *orderbook.Book) float64 {
	bid, _, okBid := b.BestBid()
	ask, _, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0
	}
	return (float64(bid) + float64(ask)) / 2
}

// Spread returns best ask minus best bid, 0 when either side is empty
func Spread(b *orderbook.Book) int64 {
	return b.Spread()
}

// Microprice weights each best price by the volume resting on the opposite
// side, so a heavy bid pulls the price toward the ask. Falls back to the
// midpoint when top of book volume is zero and to 0 on a one sided book
func Microprice(b *orderbook.Book) float64 {
	bidPrice, bidQty, okBid := b.BestBid()
	askPrice, askQty, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0
	}
	total := bidQty + askQty
	if total == 0 {
		return (float64(bidPrice) + float64(askPrice)) / 2
	}
	return (float64(bidPrice)*float64(askQty) + float64(askPrice)*float64(bidQty)) / float64(total)
}

// DepthWeightedMid returns the volume weighted average price across the top
// n levels of both sides. A one sided book yields that side's weighted
// average, an empty book yields 0
func DepthWeightedMid(b *orderbook.Book, n int) float64 {
	var notional, volume float64
	for _, side := range []orderbook.Side{orderbook.Bid, orderbook.Ask} {
		for _, lv := range b.Levels(side, n) {
			notional += float64(lv.Price) * float64(lv.TotalQuantity)
			volume += float64(lv.TotalQuantity)
		}
	}
	if volume == 0 {
		return 0
	}
	return notional / volume
}

// Compute evaluates every snapshot signal against the current book state
func Compute(b *orderbook.Book, cfg Config) Snapshot {
	depth := cfg.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}
	bidPrice, _, okBid := b.BestBid()
	askPrice, _, okAsk := b.BestAsk()
	snap := Snapshot{
		BestBid:          bidPrice,
		BestAsk:          askPrice,
		BidDepth:         b.DepthAt(orderbook.Bid, depth),
		AskDepth:         b.DepthAt(orderbook.Ask, depth),
		Imbalance:        Imbalance(b, depth),
		DepthWeightedMid: DepthWeightedMid(b, depth),
		LastPrice:        b.LastPrice(),
		TwoSided:         okBid && okAsk,
	}
	if snap.TwoSided {
		snap.Spread = askPrice - bidPrice
		snap.Mid = (float64(bidPrice) + float64(askPrice)) / 2
		snap.Microprice = Microprice(b)
	}
	return snap
}
