package matchserver

import (
	"time"

	"go.uber.org/zap"

	"matchsrv/domain/orderbook"
	"matchsrv/internal/wire"
)

// processorLoop is one processor worker: it pulls orders off the work
// queue, runs them through the book, and writes a notification frame
// back to every client whose order was fully filled as a result.
// Mirrors original_source/socket_server.cpp's processor_thread.
func (s *Server) processorLoop() {
	for {
		order, ok := s.work.Pop()
		if !ok {
			return
		}
		s.processOrder(order)
	}
}

func (s *Server) processOrder(order *orderbook.Order) {
	start := time.Now()
	notifications := s.book.Process(order)
	if s.metrics != nil {
		s.metrics.ObserveMatch(time.Since(start))
	}

	for _, o := range notifications {
		s.notify(o)
		if s.publisher != nil {
			s.publisher.Publish(o)
		}
		if s.metrics != nil {
			s.metrics.FillsEmitted.Inc()
		}
		o.Reset()
		s.pool.Put(o)
	}
}

// notify writes o's fill back to the client that submitted it. A
// connection that has since closed is skipped with a warning — the
// weak-reference "upgrade failed" case from the original design.
func (s *Server) notify(o *orderbook.Order) {
	conn, ok := s.registry.Lookup(o.ConnID)
	if !ok {
		s.log.Warn("cannot notify, connection closed", zap.Int32("trader_id", o.TraderID))
		return
	}
	frame, err := wire.Encode(wire.Frame{
		Stock:    o.Ticker,
		Trader:   o.Trader,
		TraderID: o.TraderID,
		Quantity: o.Quantity,
		Balance:  o.Balance,
		Side:     o.Side,
	})
	if err != nil {
		s.log.Error("failed to encode notification frame", zap.Error(err))
		return
	}
	if _, err := conn.Write(frame); err != nil {
		s.log.Warn("write to client failed", zap.Int32("trader_id", o.TraderID), zap.Error(err))
	}
}
