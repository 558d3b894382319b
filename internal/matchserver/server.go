// Package matchserver assembles the TCP matching server: the listener
// loop, the accepted-socket queue, the shared worker pool running the
// reader and processor roles, the order book, and the connection
// registry. Grounded on original_source/socket_server.hpp/.cpp — see
// DESIGN.md.
package matchserver

import (
	"fmt"
	"net"

	"go.uber.org/zap"

	"matchsrv/domain/orderbook"
	"matchsrv/infra/memory"
	"matchsrv/infra/metrics"
	"matchsrv/infra/sequence"
	"matchsrv/infra/tradefeed"
	"matchsrv/internal/queue"
	"matchsrv/internal/registry"
	"matchsrv/internal/workerpool"
)

// Server is the assembled matching server. Construct with New, then
// call Run.
type Server struct {
	port        int
	nReaders    int
	nProcessors int
	book        *orderbook.Book
	registry    *registry.Registry
	pool        *memory.Pool[orderbook.Order]
	seq         *sequence.Sequencer
	log         *zap.Logger
	metrics     *metrics.Registry
	publisher   *tradefeed.Publisher // nil disables trade-feed publishing

	sockets *queue.Queue[net.Conn]
	work    *queue.Queue[*orderbook.Order]
	workers *workerpool.Pool

	listener net.Listener
}

// Option configures optional collaborators on a Server.
type Option func(*Server)

// WithMetrics attaches a metrics registry; without it, metrics calls
// are skipped.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Server) { s.metrics = m }
}

// WithPublisher attaches a trade-feed publisher; without it, fills are
// not published anywhere beyond the client socket.
func WithPublisher(p *tradefeed.Publisher) Option {
	return func(s *Server) { s.publisher = p }
}

// New builds a Server listening on port with nReaders reader workers
// and nProcessors processor workers sharing one worker pool, matching
// the original's single thread_pool_t expanded by nreaders+nprocessors.
func New(port, nReaders, nProcessors int, log *zap.Logger, opts ...Option) *Server {
	s := &Server{
		port:        port,
		nReaders:    nReaders,
		nProcessors: nProcessors,
		book:        orderbook.New(),
		registry:    registry.New(),
		pool:        memory.NewPool(func() *orderbook.Order { return &orderbook.Order{} }),
		seq:         sequence.New(0),
		log:         log,
		sockets:     queue.New[net.Conn](),
		work:        queue.New[*orderbook.Order](),
		workers:     workerpool.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book exposes the underlying order book for the diagnostics API.
func (s *Server) Book() *orderbook.Book { return s.book }

// Registry exposes the underlying connection registry for the
// diagnostics API.
func (s *Server) Registry() *registry.Registry { return s.registry }

// Run binds the listening socket, starts the reader and processor
// roles, and then accepts connections until the listener is closed or
// accept fails fatally. It blocks, mirroring the original's run().
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("matchserver: listen: %w", err)
	}
	s.listener = ln

	s.workers.Grow(s.nReaders + s.nProcessors)
	for i := 0; i < s.nReaders; i++ {
		s.workers.Post(s.readerLoop)
	}
	for i := 0; i < s.nProcessors; i++ {
		s.workers.Post(s.processorLoop)
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("matchserver: accept: %w", err)
		}
		s.log.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))
		s.sockets.Push(conn)
	}
}

// Close stops accepting new connections and signals every worker to
// drain. It does not wait for workers to exit; call Wait for that.
func (s *Server) Close() error {
	s.sockets.Close()
	s.work.Close()
	s.workers.Stop()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Wait blocks until every reader and processor worker has exited.
func (s *Server) Wait() {
	s.workers.Join()
}
