// Package registry implements the connection table used to turn a
// notified Order back into the socket it should be written to. It is
// the Go reworking of the original conn_info weak_ptr back-reference
// (original_source/conn_info.hpp): instead of a weak pointer into a
// shared_ptr-managed connection, an Order carries an opaque uint64
// handle and every lookup goes through this registry under its own
// lock — see the internal/registry entry in DESIGN.md.
package registry

import (
	"net"
	"sync"
)

// Conn is one live, handshaken connection. Writes to Conn are
// serialized by writeMu so the reader (which only ever reads) and the
// processor (which writes notifications back) never interleave two
// partial frames on the same socket.
type Conn struct {
	ID       uint64
	TraderID int32
	net.Conn

	writeMu sync.Mutex
}

// Write serializes writes to the underlying socket under writeMu. This
// is the only lock held across a blocking socket operation anywhere in
// this server — see SPEC_FULL.md §5.
func (c *Conn) Write(b []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.Write(b)
}

// Registry maps connection ids and trader ids to their live Conn. A
// trader id is registered exactly once for the lifetime of the
// connection that claims it; see SPEC_FULL.md §9 decision 1 for the
// duplicate-handshake rejection this enables.
type Registry struct {
	mu       sync.Mutex
	byID     map[uint64]*Conn
	byTrader map[int32]*Conn
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byID:     make(map[uint64]*Conn),
		byTrader: make(map[int32]*Conn),
	}
}

// Insert registers c under both its connection id and trader id. It
// reports false without modifying the registry if traderID is already
// claimed by a different connection — the reject-on-duplicate behavior
// of the original's ordered_unique trader-id index.
func (r *Registry) Insert(c *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byTrader[c.TraderID]; taken {
		return false
	}
	r.byID[c.ID] = c
	r.byTrader[c.TraderID] = c
	return true
}

// RemoveByID drops the connection identified by id, if present.
func (r *Registry) RemoveByID(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	delete(r.byTrader, c.TraderID)
}

// Lookup resolves a connection id back to its Conn. This is the
// "upgrade" half of the weak back-reference: it reports false if the
// connection already closed and was removed, exactly as a weak_ptr's
// lock() would return an empty shared_ptr.
func (r *Registry) Lookup(id uint64) (*Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	return c, ok
}

// LookupTrader resolves a trader id to its live connection.
func (r *Registry) LookupTrader(traderID int32) (*Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byTrader[traderID]
	return c, ok
}

// Len reports the number of live connections. Intended for
// diagnostics/metrics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
