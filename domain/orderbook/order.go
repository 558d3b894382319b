// Package orderbook implements the per-ticker matching engine: the
// quantity-only crossing algorithm and its three lookup indices (by
// (ticker,side), by ticker, and by trader name). It is the Go analogue
// of the original multi_index order table, reworked around one mutex
// per book instead of lock-free epoch reclamation — see DESIGN.md.
package orderbook

import "matchsrv/internal/wire"

// Order is a resting or in-flight order. Quantity is the amount
// originally requested; Balance is the amount still unfilled and is
// mutated in place as the order crosses against the book. An order is
// "open" (eligible to rest in the book) iff Balance > 0.
//
// The next/prev fields are intrusive links into the three index
// buckets this order currently belongs to. They are valid only while
// the order is resting — Process clears them on removal.
type Order struct {
	Ticker   string
	Trader   string
	TraderID int32
	Quantity int32
	Balance  int32
	Side     wire.Side

	// ConnID is an opaque handle into the connection registry, not a
	// pointer — the order book has no reason to know about net.Conn or
	// registry internals. See the internal/registry entry in
	// DESIGN.md.
	ConnID uint64

	sideNext, sidePrev     *Order
	tickerNext, tickerPrev *Order
	traderNext, traderPrev *Order
}

// Open reports whether o still has unfilled quantity.
func (o *Order) Open() bool {
	return o.Balance > 0
}

// Reset clears o to its zero value so it can be returned to a pool and
// reused for a later incoming order without leaking stale link
// pointers into a freed bucket.
func (o *Order) Reset() {
	*o = Order{}
}
