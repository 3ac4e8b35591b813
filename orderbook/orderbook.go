package orderbook

import (
	"fmt"
)

// Book reconstructs the full price-time priority state of a single
// instrument. It is deliberately unsynchronised: a book belongs to exactly
// one backtest run and is mutated by one goroutine at a time, matching the
// strictly sequential event model
type Book struct {
	instrument string
	bids       *ladder
	asks       *ladder
	orders     map[OrderID]*Order
	lastPrice  int64
	counters   Counters
}

// New returns an empty book for the given instrument
func New(instrument string) *Book {
	return &Book{
		instrument: instrument,
		bids:       newLadder(Bid),
		asks:       newLadder(Ask),
		orders:     make(map[OrderID]*Order),
	}
}

// Instrument returns the instrument this book reconstructs
func (b *Book) Instrument() string {
	return b.instrument
}

func (b *Book) side(s Side) *ladder {
	if s == Bid {
		return b.bids
	}
	return b.asks
}

// AddOrder inserts a new limit order. It first matches against the opposite
// side's best levels while the order price crosses, consuming resting
// orders strictly in time priority and trading at the resting order's
// price. Any remainder rests at the back of its level's queue. The returned
// delta carries trades generated and every level whose aggregate changed
func (b *Book) AddOrder(o *Order) (*Delta, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil order", ErrInvalidOrder)
	}
	if o.Price <= 0 || o.Quantity <= 0 {
		return nil, fmt.Errorf("%w: order %d seq %d price %d quantity %d",
			ErrInvalidOrder, o.ID, o.Sequence, o.Price, o.Quantity)
	}
	if _, ok := b.orders[o.ID]; ok {
		return nil, fmt.Errorf("%w: order %d seq %d duplicate ID",
			ErrInvalidOrder, o.ID, o.Sequence)
	}

	o.Original = o.Quantity
	o.Status = Active

	delta := &Delta{}
	touched := make(map[levelKey]struct{})

	opposite := b.side(o.Side.Opposite())
	for o.Quantity > 0 {
		best, ok := opposite.best()
		if !ok || !crosses(o, best.price) {
			break
		}
		for o.Quantity > 0 && !best.empty() {
			maker := best.head
			matched := min64(o.Quantity, maker.Quantity)

			trade := Trade{
				Price:     maker.Price,
				Quantity:  matched,
				Aggressor: o.Side,
				MakerID:   maker.ID,
				TakerID:   o.ID,
				Sequence:  o.Sequence,
				Timestamp: o.Timestamp,
			}
			delta.Trades = append(delta.Trades, trade)

			o.Quantity -= matched
			best.consume(maker, matched)
			b.lastPrice = maker.Price
			b.counters.TradesExecuted++
			b.counters.VolumeTraded += uint64(matched)

			if maker.Quantity == 0 {
				maker.Status = Filled
				best.unlink(maker)
				delete(b.orders, maker.ID)
			} else {
				maker.Status = PartiallyFilled
			}
		}
		touched[levelKey{side: best.side, price: best.price}] = struct{}{}
		if best.empty() {
			opposite.remove(best.price)
		}
	}

	if o.Quantity > 0 {
		if o.Quantity < o.Original {
			o.Status = PartiallyFilled
		}
		lv := b.side(o.Side).getOrCreate(o.Price)
		lv.push(o)
		b.orders[o.ID] = o
		touched[levelKey{side: o.Side, price: o.Price}] = struct{}{}
	} else {
		o.Status = Filled
	}

	b.counters.OrdersAdded++
	b.collectChanges(delta, touched)

	if err := b.checkInvariant(o); err != nil {
		return delta, err
	}
	return delta, nil
}

// CancelOrder removes a resting order via the identifier index, dropping
// its level when it empties
func (b *Book) CancelOrder(id OrderID) error {
	o, ok := b.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %d", ErrOrderNotFound, id)
	}
	side := b.side(o.Side)
	lv, ok := side.get(o.Price)
	if !ok {
		return fmt.Errorf("%w: order %d has no level at price %d", ErrOrderNotFound, id, o.Price)
	}
	lv.unlink(o)
	if lv.empty() {
		side.remove(o.Price)
	}
	o.Status = Cancelled
	delete(b.orders, id)
	b.counters.OrdersCancelled++
	return nil
}

// ModifyOrder changes a resting order's remaining quantity. A decrease is
// applied in place and keeps time priority; an increase is treated as
// cancel plus add, re-queueing the order at the back of its level, matching
// standard exchange behaviour
func (b *Book) ModifyOrder(id OrderID, newQuantity int64) error {
	if newQuantity <= 0 {
		return fmt.Errorf("%w: order %d modify quantity %d", ErrInvalidOrder, id, newQuantity)
	}
	o, ok := b.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %d", ErrOrderNotFound, id)
	}
	lv, ok := b.side(o.Side).get(o.Price)
	if !ok {
		return fmt.Errorf("%w: order %d has no level at price %d", ErrOrderNotFound, id, o.Price)
	}
	switch {
	case newQuantity < o.Quantity:
		lv.reduce(o, newQuantity)
	case newQuantity > o.Quantity:
		lv.unlink(o)
		o.Quantity = newQuantity
		if newQuantity > o.Original {
			o.Original = newQuantity
		}
		lv.push(o)
	}
	b.counters.OrdersModified++
	return nil
}

// Order returns the live order for id, or false when the id is unknown or
// terminal
func (b *Book) Order(id OrderID) (*Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// QueuePosition returns the resting quantity ahead of the order at its
// price level
func (b *Book) QueuePosition(id OrderID) (int64, error) {
	o, ok := b.orders[id]
	if !ok {
		return 0, fmt.Errorf("%w: order %d", ErrOrderNotFound, id)
	}
	lv, ok := b.side(o.Side).get(o.Price)
	if !ok {
		return 0, fmt.Errorf("%w: order %d has no level at price %d", ErrOrderNotFound, id, o.Price)
	}
	var ahead int64
	for cur := lv.head; cur != nil && cur != o; cur = cur.next {
		ahead += cur.Quantity
	}
	return ahead, nil
}

// Clear empties both sides of the book, the identifier index and the
// operation counters
func (b *Book) Clear() {
	b.bids = newLadder(Bid)
	b.asks = newLadder(Ask)
	b.orders = make(map[OrderID]*Order)
	b.lastPrice = 0
	b.counters = Counters{}
}

// Counters returns cumulative operation counts for the life of the book
func (b *Book) Counters() Counters {
	return b.counters
}

type levelKey struct {
	side  Side
	price int64
}

func (b *Book) collectChanges(delta *Delta, touched map[levelKey]struct{}) {
	for key := range touched {
		change := LevelChange{Side: key.side, Price: key.price}
		if lv, ok := b.side(key.side).get(key.price); ok {
			change.TotalQuantity = lv.totalQuantity
		}
		delta.Changed = append(delta.Changed, change)
	}
}

// checkInvariant verifies best bid < best ask whenever both sides rest.
// Matching resolves every cross before returning, so a violation here means
// internal corruption and is fatal to the run
func (b *Book) checkInvariant(o *Order) error {
	bb, okBid := b.bids.best()
	ba, okAsk := b.asks.best()
	if okBid && okAsk && bb.price >= ba.price {
		return fmt.Errorf("%w: order %d seq %d left best bid %d >= best ask %d",
			ErrCrossedBook, o.ID, o.Sequence, bb.price, ba.price)
	}
	return nil
}

func crosses(o *Order, restingPrice int64) bool {
	if o.Side == Bid {
		return o.Price >= restingPrice
	}
	return o.Price <= restingPrice
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
