package registry

import (
	"net"
	"testing"
)

func pipeConn(id uint64, traderID int32) *Conn {
	client, _ := net.Pipe()
	return &Conn{ID: id, TraderID: traderID, Conn: client}
}

func TestInsertAndLookup(t *testing.T) {
	r := New()
	c := pipeConn(1, 42)

	if ok := r.Insert(c); !ok {
		t.Fatal("Insert() = false, want true")
	}

	got, ok := r.Lookup(1)
	if !ok || got != c {
		t.Fatalf("Lookup(1) = %v, %v; want %v, true", got, ok, c)
	}
	got, ok = r.LookupTrader(42)
	if !ok || got != c {
		t.Fatalf("LookupTrader(42) = %v, %v; want %v, true", got, ok, c)
	}
}

func TestInsertRejectsDuplicateTraderID(t *testing.T) {
	r := New()
	first := pipeConn(1, 42)
	second := pipeConn(2, 42)

	if ok := r.Insert(first); !ok {
		t.Fatal("first Insert() = false, want true")
	}
	if ok := r.Insert(second); ok {
		t.Fatal("second Insert() with duplicate trader id = true, want false")
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

func TestRemoveByID(t *testing.T) {
	r := New()
	c := pipeConn(1, 42)
	r.Insert(c)

	r.RemoveByID(1)

	if _, ok := r.Lookup(1); ok {
		t.Fatal("Lookup(1) ok=true after RemoveByID")
	}
	if _, ok := r.LookupTrader(42); ok {
		t.Fatal("LookupTrader(42) ok=true after RemoveByID")
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestRemoveByIDAllowsReuseOfTraderID(t *testing.T) {
	r := New()
	first := pipeConn(1, 42)
	r.Insert(first)
	r.RemoveByID(1)

	second := pipeConn(2, 42)
	if ok := r.Insert(second); !ok {
		t.Fatal("Insert() after removal of prior holder = false, want true")
	}
}
