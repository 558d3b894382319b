package orderbook

import (
	"sort"
	"sync"

	"matchsrv/internal/wire"
)

type sideKey struct {
	ticker string
	side   wire.Side
}

// Book holds every resting order across all tickers, indexed three
// ways, and runs the quantity-only crossing algorithm. One Book is
// shared by every connection; Process is the only method that mutates
// it, and every method, reads included, holds a single mutex. The three
// bucket maps take the place of the original's multi_index_container.
type Book struct {
	mu sync.Mutex

	bySide   map[sideKey]*sideBucket
	byTicker map[string]*tickerBucket
	byTrader map[string]*traderBucket
}

// New returns an empty book.
func New() *Book {
	return &Book{
		bySide:   make(map[sideKey]*sideBucket),
		byTicker: make(map[string]*tickerBucket),
		byTrader: make(map[string]*traderBucket),
	}
}

func opposite(s wire.Side) wire.Side {
	if s == wire.Buy {
		return wire.Sell
	}
	return wire.Buy
}

// Process runs incoming against the resting orders on the opposite
// side of its ticker and returns every order (resting or incoming)
// that transitioned to fully filled as a result. incoming is inserted
// into the book iff it still has open balance once crossing stops.
//
// incoming.Balance <= 0 on entry (a zero-quantity order) is always
// notified immediately and never inserted, regardless of whether the
// opposite side is empty — see SPEC_FULL.md §9 decision 3.
func (b *Book) Process(incoming *Order) []*Order {
	if incoming.Balance <= 0 {
		return []*Order{incoming}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := sideKey{incoming.Ticker, opposite(incoming.Side)}
	bucket := b.bySide[key]
	if bucket == nil || bucket.empty() {
		b.insert(incoming)
		return nil
	}

	var notifications []*Order
	mustAdd := false
	curr := bucket.head
	for curr != nil {
		next := curr.sideNext

		rhsBal := int64(curr.Balance) - int64(incoming.Balance)
		lhsBal := int64(incoming.Balance) - int64(curr.Balance)

		if rhsBal <= 0 {
			curr.Balance = 0
			notifications = append(notifications, curr)
			b.erase(curr)
		} else {
			curr.Balance = int32(rhsBal)
		}

		if lhsBal <= 0 {
			incoming.Balance = 0
			notifications = append(notifications, incoming)
			mustAdd = false
			break
		}
		incoming.Balance = int32(lhsBal)
		mustAdd = true
		curr = next
	}

	if mustAdd {
		b.insert(incoming)
	}
	return notifications
}

// insert links o into all three index buckets. Callers must hold mu.
func (b *Book) insert(o *Order) {
	sk := sideKey{o.Ticker, o.Side}
	sb := b.bySide[sk]
	if sb == nil {
		sb = &sideBucket{}
		b.bySide[sk] = sb
	}
	sb.pushBack(o)

	tb := b.byTicker[o.Ticker]
	if tb == nil {
		tb = &tickerBucket{}
		b.byTicker[o.Ticker] = tb
	}
	tb.pushBack(o)

	rb := b.byTrader[o.Trader]
	if rb == nil {
		rb = &traderBucket{}
		b.byTrader[o.Trader] = rb
	}
	rb.pushBack(o)
}

// erase unlinks o from all three index buckets and drops any bucket
// left empty by the removal. Callers must hold mu.
func (b *Book) erase(o *Order) {
	sk := sideKey{o.Ticker, o.Side}
	if sb := b.bySide[sk]; sb != nil {
		sb.remove(o)
		if sb.empty() {
			delete(b.bySide, sk)
		}
	}
	if tb := b.byTicker[o.Ticker]; tb != nil {
		tb.remove(o)
		if tb.empty() {
			delete(b.byTicker, o.Ticker)
		}
	}
	if rb := b.byTrader[o.Trader]; rb != nil {
		rb.remove(o)
		if rb.empty() {
			delete(b.byTrader, o.Trader)
		}
	}
}

// ByTicker returns a snapshot of every resting order for ticker, both
// sides, in book order. Used by the diagnostics API; takes the same
// lock as Process so it never observes a partial match.
func (b *Book) ByTicker(ticker string) []Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	tb := b.byTicker[ticker]
	if tb == nil {
		return nil
	}
	out := make([]Order, 0)
	for o := tb.head; o != nil; o = o.tickerNext {
		out = append(out, *o)
	}
	return out
}

// ByTrader returns a snapshot of every resting order for trader.
func (b *Book) ByTrader(trader string) []Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	rb := b.byTrader[trader]
	if rb == nil {
		return nil
	}
	out := make([]Order, 0)
	for o := rb.head; o != nil; o = o.traderNext {
		out = append(out, *o)
	}
	return out
}

// Tickers returns every ticker with at least one resting order, sorted
// for deterministic enumeration.
func (b *Book) Tickers() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.byTicker))
	for t := range b.byTicker {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// OpenOrders reports the total number of resting orders across every
// ticker and side. Intended for the metrics/stats surface.
func (b *Book) OpenOrders() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, sb := range b.bySide {
		for o := sb.head; o != nil; o = o.sideNext {
			n++
		}
	}
	return n
}
