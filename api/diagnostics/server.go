// Package diagnostics exposes a read-only HTTP view of the order book
// and connection registry, plus Prometheus metrics. Grounded on
// uhyunpark-hyperlicked/pkg/api/server.go's gorilla/mux + rs/cors
// setup; spec.md never names this surface but §3 calls out the
// ticker- and trader-name indices as existing for "enumeration" with
// no caller — this is that caller.
package diagnostics

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"matchsrv/domain/orderbook"
	"matchsrv/infra/metrics"
	"matchsrv/internal/registry"
)

// Server is the diagnostics HTTP server. It never mutates the book or
// registry; its reads briefly take the book and registry mutexes, the
// same locks the matching path uses, to copy a snapshot.
type Server struct {
	book *orderbook.Book
	reg  *registry.Registry
	met  *metrics.Registry
	log  *zap.Logger

	handler http.Handler
}

// New builds the router. gatherer is the Prometheus registry that met
// was registered on; cmd/server passes its own *prometheus.Registry.
func New(book *orderbook.Book, reg *registry.Registry, met *metrics.Registry, gatherer prometheus.Gatherer, log *zap.Logger) *Server {
	s := &Server{book: book, reg: reg, met: met, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/books/{ticker}", s.handleBook).Methods(http.MethodGet)
	r.HandleFunc("/traders/{name}", s.handleTrader).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	s.handler = cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet},
	}).Handler(r)
	return s
}

// ListenAndServe starts the HTTP server on addr. It blocks until the
// server stops; callers typically run it in its own goroutine.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.handler)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	writeJSON(w, s.book.ByTicker(ticker))
}

func (s *Server) handleTrader(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	writeJSON(w, s.book.ByTrader(name))
}

type statsResponse struct {
	OpenOrders  int `json:"open_orders"`
	Connections int `json:"connections"`
	Fills       int `json:"fills"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, statsResponse{
		OpenOrders:  s.book.OpenOrders(),
		Connections: s.reg.Len(),
		Fills:       int(testutil.ToFloat64(s.met.FillsEmitted)),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
