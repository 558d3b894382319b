package orderbook

import (
	"testing"

	"matchsrv/internal/wire"
)

func newOrder(ticker, trader string, traderID, qty int32, side wire.Side) *Order {
	return &Order{
		Ticker:   ticker,
		Trader:   trader,
		TraderID: traderID,
		Quantity: qty,
		Balance:  qty,
		Side:     side,
	}
}

func notifiedTraders(ns []*Order) []string {
	out := make([]string, len(ns))
	for i, o := range ns {
		out[i] = o.Trader
	}
	return out
}

// S1: resting BUY order with nothing to cross against.
func TestRestingOrderNoCross(t *testing.T) {
	b := New()
	a := newOrder("IBM", "A", 1, 100, wire.Buy)

	ns := b.Process(a)
	if len(ns) != 0 {
		t.Fatalf("notifications = %v, want none", ns)
	}
	got := b.ByTicker("IBM")
	if len(got) != 1 || got[0].Trader != "A" || got[0].Balance != 100 {
		t.Fatalf("book = %+v, want [A bal=100]", got)
	}
}

// S2: exact cross, both sides fully filled.
func TestExactCrossBothFilled(t *testing.T) {
	b := New()
	a := newOrder("IBM", "A", 1, 100, wire.Buy)
	b.Process(a)

	bob := newOrder("IBM", "B", 2, 100, wire.Sell)
	ns := b.Process(bob)

	if got := notifiedTraders(ns); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("notifications = %v, want [A B]", got)
	}
	if got := b.ByTicker("IBM"); len(got) != 0 {
		t.Fatalf("book = %+v, want empty", got)
	}
}

// S3: aggressor smaller than resting order; resting order survives at
// a reduced balance and is never itself notified.
func TestPartialFillRestingSurvives(t *testing.T) {
	b := New()
	a := newOrder("IBM", "A", 1, 100, wire.Buy)
	b.Process(a)

	bob := newOrder("IBM", "B", 2, 40, wire.Sell)
	ns := b.Process(bob)

	if got := notifiedTraders(ns); len(got) != 1 || got[0] != "B" {
		t.Fatalf("notifications = %v, want [B] only", got)
	}
	got := b.ByTicker("IBM")
	if len(got) != 1 || got[0].Trader != "A" || got[0].Balance != 60 {
		t.Fatalf("book = %+v, want [A bal=60]", got)
	}
}

// S4: aggressor walks multiple resting orders in FIFO order, consuming
// the first fully and partially filling the second.
func TestAggressorWalksMultipleRestingOrders(t *testing.T) {
	b := New()
	a := newOrder("IBM", "A", 1, 30, wire.Buy)
	b.Process(a)
	c := newOrder("IBM", "C", 3, 40, wire.Buy)
	b.Process(c)

	bob := newOrder("IBM", "B", 2, 50, wire.Sell)
	ns := b.Process(bob)

	if got := notifiedTraders(ns); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("notifications = %v, want [A B]", got)
	}
	got := b.ByTicker("IBM")
	if len(got) != 1 || got[0].Trader != "C" || got[0].Balance != 20 {
		t.Fatalf("book = %+v, want [C bal=20]", got)
	}
}

// S5: same-side orders never cross each other.
func TestSameSideOrdersDoNotCross(t *testing.T) {
	b := New()
	a := newOrder("IBM", "A", 1, 100, wire.Buy)
	b.Process(a)

	d := newOrder("IBM", "D", 4, 100, wire.Buy)
	ns := b.Process(d)

	if len(ns) != 0 {
		t.Fatalf("notifications = %v, want none", ns)
	}
	got := b.ByTicker("IBM")
	if len(got) != 2 {
		t.Fatalf("book = %+v, want 2 resting orders", got)
	}
}

// S6: a zero-quantity order is always notified and never rests in the
// book, whether or not the opposite side is empty. See SPEC_FULL.md §9
// decision 3.
func TestZeroQuantityOrderNeverRests(t *testing.T) {
	b := New()
	x := newOrder("IBM", "X", 9, 0, wire.Buy)

	ns := b.Process(x)
	if len(ns) != 1 || ns[0].Trader != "X" {
		t.Fatalf("notifications = %v, want [X]", ns)
	}
	if got := b.ByTicker("IBM"); len(got) != 0 {
		t.Fatalf("book = %+v, want empty", got)
	}

	// Same check against a non-empty opposite side: the resting order
	// must be left completely untouched.
	a := newOrder("IBM", "A", 1, 100, wire.Sell)
	b.Process(a)
	y := newOrder("IBM", "Y", 10, 0, wire.Buy)
	ns = b.Process(y)
	if len(ns) != 1 || ns[0].Trader != "Y" {
		t.Fatalf("notifications = %v, want [Y]", ns)
	}
	got := b.ByTicker("IBM")
	if len(got) != 1 || got[0].Trader != "A" || got[0].Balance != 100 {
		t.Fatalf("book = %+v, want [A bal=100] untouched", got)
	}
}

// Invariant: every resting order has 0 < Balance <= Quantity, and the
// ticker index holds as many orders as the (ticker,side) index after a
// sequence of crossing orders.
func TestInvariantsHoldAcrossSequence(t *testing.T) {
	b := New()
	b.Process(newOrder("IBM", "A", 1, 30, wire.Buy))
	b.Process(newOrder("IBM", "C", 3, 40, wire.Buy))
	b.Process(newOrder("AAPL", "E", 5, 10, wire.Sell))
	b.Process(newOrder("IBM", "B", 2, 50, wire.Sell))

	for _, ticker := range b.Tickers() {
		for _, o := range b.ByTicker(ticker) {
			if o.Balance <= 0 || o.Balance > o.Quantity {
				t.Errorf("order %+v violates 0 < Balance <= Quantity", o)
			}
		}
	}

	totalByTicker := 0
	for _, ticker := range b.Tickers() {
		totalByTicker += len(b.ByTicker(ticker))
	}
	if totalByTicker != b.OpenOrders() {
		t.Errorf("ticker index total = %d, OpenOrders = %d", totalByTicker, b.OpenOrders())
	}
}

func TestTraderIndexReflectsRestingOrders(t *testing.T) {
	b := New()
	b.Process(newOrder("IBM", "A", 1, 30, wire.Buy))
	b.Process(newOrder("AAPL", "A", 1, 20, wire.Buy))

	got := b.ByTrader("A")
	if len(got) != 2 {
		t.Fatalf("ByTrader(A) = %+v, want 2 orders", got)
	}
}
