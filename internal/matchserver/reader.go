package matchserver

import (
	"errors"
	"io"
	"net"

	"go.uber.org/zap"

	"matchsrv/domain/orderbook"
	"matchsrv/internal/registry"
	"matchsrv/internal/wire"
)

// readerLoop is one reader worker: it pulls accepted sockets off the
// socket queue, performs the trader-id handshake, and then reads order
// frames until the client disconnects or sends something malformed.
// Mirrors original_source/socket_server.cpp's reader_thread.
func (s *Server) readerLoop() {
	for {
		conn, ok := s.sockets.Pop()
		if !ok {
			return
		}
		s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(netConn net.Conn) {
	handshake := make([]byte, wire.HandshakeSize)
	if _, err := io.ReadFull(netConn, handshake); err != nil {
		s.log.Warn("bad protocol: expected trader-id handshake after connect", zap.Error(err))
		netConn.Close()
		return
	}
	traderID, err := wire.DecodeHandshake(handshake)
	if err != nil {
		s.log.Warn("bad trader-id handshake", zap.Error(err))
		netConn.Close()
		return
	}

	conn := &registry.Conn{
		ID:       s.seq.Next(),
		TraderID: traderID,
		Conn:     netConn,
	}
	if ok := s.registry.Insert(conn); !ok {
		s.log.Warn("duplicate trader-id handshake, rejecting", zap.Int32("trader_id", traderID))
		netConn.Close()
		return
	}
	if s.metrics != nil {
		s.metrics.ConnectionsOpened.Inc()
	}
	s.log.Info("trader connected", zap.Int32("trader_id", traderID), zap.Uint64("conn_id", conn.ID))

	for {
		buf := make([]byte, wire.FrameSize)
		if _, err := io.ReadFull(netConn, buf); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Info("client closed connection", zap.Int32("trader_id", traderID))
			} else {
				s.log.Warn("bad protocol: short or failed frame read", zap.Int32("trader_id", traderID), zap.Error(err))
			}
			break
		}

		frame, err := wire.Decode(buf)
		if err != nil {
			s.log.Warn("protocol error decoding frame", zap.Int32("trader_id", traderID), zap.Error(err))
			break
		}

		order := s.pool.Get()
		*order = orderbook.Order{
			Ticker:   frame.Stock,
			Trader:   frame.Trader,
			TraderID: frame.TraderID,
			Quantity: frame.Quantity,
			Balance:  frame.Quantity,
			Side:     frame.Side,
			ConnID:   conn.ID,
		}
		if s.metrics != nil {
			s.metrics.OrdersReceived.Inc()
		}
		s.work.Push(order)
	}

	s.registry.RemoveByID(conn.ID)
	if s.metrics != nil {
		s.metrics.ConnectionsClosed.Inc()
	}
	netConn.Close()
}
