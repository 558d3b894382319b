package tradefeed

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap/zaptest"

	"matchsrv/domain/orderbook"
	"matchsrv/internal/wire"
)

func TestEventMarshalsExpectedFields(t *testing.T) {
	o := &orderbook.Order{
		Ticker:   "IBM",
		Trader:   "A",
		TraderID: 1,
		Quantity: 100,
		Side:     wire.Buy,
	}
	ev := Event{
		Ticker:   o.Ticker,
		Trader:   o.Trader,
		TraderID: o.TraderID,
		Side:     o.Side.String(),
		Quantity: o.Quantity,
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["ticker"] != "IBM" || got["side"] != "BUY" {
		t.Errorf("got %v, want ticker=IBM side=BUY", got)
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	p := &Publisher{
		log:    zaptest.NewLogger(t),
		events: make(chan Event, 1),
		done:   make(chan struct{}),
	}
	o := &orderbook.Order{Ticker: "IBM", Trader: "A", Side: wire.Buy}

	p.Publish(o) // fills the buffer
	p.Publish(o) // must not block; dropped and logged

	if len(p.events) != 1 {
		t.Fatalf("events buffered = %d, want 1", len(p.events))
	}
}
