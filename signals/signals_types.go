package signals

import "time"

// Config controls how many price levels per side feed the depth
// sensitive signals
type Config struct {
	Depth int
}

// DefaultDepth is used when Config.Depth is zero or negative
const DefaultDepth = 5

// Snapshot is a point in time reading of the book consumed by strategies.
// All fields are derived from book state alone, never from prior snapshots
type Snapshot struct {
	Timestamp        time.Time
	BestBid          int64
	BestAsk          int64
	BidDepth         int64
	AskDepth         int64
	Spread           int64
	Mid              float64
	Imbalance        float64
	Microprice       float64
	DepthWeightedMid float64
	LastPrice        int64
	// TwoSided is false when either side of the book is empty, in which
	// case Mid, Spread and Microprice are zero
	TwoSided bool
}
