// Package workerpool implements the bounded set of long-lived workers
// that execute posted tasks, the Go analogue of the original
// boost::asio io_service thread pool (thread_pool.hpp). Unlike that
// singleton, a Pool here is an explicit server-scoped value — see
// SPEC_FULL.md §4.3 / design note "Global singleton pool".
package workerpool

import (
	"sync"

	"matchsrv/internal/queue"
)

// Pool owns a growable set of goroutines draining a shared task queue.
type Pool struct {
	tasks   *queue.Queue[func()]
	wg      sync.WaitGroup
	mu      sync.Mutex
	workers int
}

// New returns an empty pool. Use Grow to add workers.
func New() *Pool {
	return &Pool{tasks: queue.New[func()]()}
}

// Grow adds n long-lived workers to the pool. Idempotent in the sense
// that calling it repeatedly only ever adds workers, never removes them.
func (p *Pool) Grow(n int) {
	p.mu.Lock()
	p.workers += n
	p.mu.Unlock()

	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		task, ok := p.tasks.Pop()
		if !ok {
			return
		}
		task()
	}
}

// Post queues a task for execution by the next idle worker. Intended
// for the reader and processor roles, which post a loop that runs for
// the lifetime of the server — one task occupies one worker, same as
// the original posting one reader_thread/processor_thread per pooled
// OS thread.
func (p *Pool) Post(task func()) {
	p.tasks.Push(task)
}

// Stop signals every worker to drain and exit once its current task
// returns. Workers blocked inside a long-running task (as the reader
// and processor roles are) only observe this after that task itself
// returns, which for this server only happens on shutdown of the
// underlying queue/socket — see SPEC_FULL.md §5 on cancellation.
func (p *Pool) Stop() {
	p.tasks.Close()
}

// Join blocks until every worker has exited.
func (p *Pool) Join() {
	p.wg.Wait()
}

// Size reports the number of workers ever added to the pool.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.workers
}
