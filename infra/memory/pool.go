package memory

import "sync"

// Pool is a typed wrapper around sync.Pool, used to reuse *Order
// values across connections instead of allocating one per incoming
// frame.
type Pool[T any] struct {
	p *sync.Pool
}

// NewPool returns a pool that calls ctor to create values it doesn't
// have one to reuse.
func NewPool[T any](ctor func() *T) *Pool[T] {
	return &Pool[T]{
		p: &sync.Pool{
			New: func() any { return ctor() },
		},
	}
}

// Get returns a value from the pool, calling ctor if the pool is
// empty. The caller owns the value until it calls Put.
func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

// Put returns v to the pool. Callers must reset v's fields before
// calling Put; the pool does not do this for them.
func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}
