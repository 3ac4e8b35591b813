package orderbook

// level maintains the FIFO order queue resting at a single price. Queue
// order is strictly arrival order; new orders always join the tail. The
// intrusive links on Order give O(1) unlink without scanning the queue
type level struct {
	price         int64
	side          Side
	totalQuantity int64
	orderCount    int
	head          *Order
	tail          *Order
}

func newLevel(price int64, side Side) *level {
	return &level{price: price, side: side}
}

// push appends an order to the back of the queue
func (l *level) push(o *Order) {
	o.next = nil
	o.prev = l.tail
	if l.tail != nil {
		l.tail.next = o
	} else {
		l.head = o
	}
	l.tail = o
	l.totalQuantity += o.Quantity
	l.orderCount++
}

// unlink removes an order from the queue wherever it sits
func (l *level) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	l.totalQuantity -= o.Quantity
	l.orderCount--
	o.next = nil
	o.prev = nil
}

// reduce lowers an order's remaining quantity in place, preserving its
// queue position
func (l *level) reduce(o *Order, newQuantity int64) {
	l.totalQuantity -= o.Quantity - newQuantity
	o.Quantity = newQuantity
}

// consume decrements the front order's remaining quantity after a match
func (l *level) consume(o *Order, quantity int64) {
	o.Quantity -= quantity
	l.totalQuantity -= quantity
}

func (l *level) empty() bool {
	return l.head == nil
}

// snapshot returns the aggregated view used by depth queries
func (l *level) snapshot() PriceLevel {
	return PriceLevel{
		Price:         l.price,
		TotalQuantity: l.totalQuantity,
		OrderCount:    l.orderCount,
	}
}
