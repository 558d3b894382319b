package workerpool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPostRunsOnWorker(t *testing.T) {
	p := New()
	p.Grow(2)
	defer func() {
		p.Stop()
		p.Join()
	}()

	var n atomic.Int32
	done := make(chan struct{})
	p.Post(func() {
		n.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("posted task never ran")
	}
	if got := n.Load(); got != 1 {
		t.Errorf("task ran %d times, want 1", got)
	}
}

func TestStopAndJoin(t *testing.T) {
	p := New()
	p.Grow(3)

	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		p.Post(func() { done <- struct{}{} })
	}
	for i := 0; i < 3; i++ {
		<-done
	}

	joined := make(chan struct{})
	go func() {
		p.Stop()
		p.Join()
		close(joined)
	}()

	select {
	case <-joined:
	case <-time.After(time.Second):
		t.Fatal("Join never returned after Stop")
	}
}

func TestGrowIsAdditive(t *testing.T) {
	p := New()
	p.Grow(2)
	p.Grow(3)
	if got := p.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}
	p.Stop()
	p.Join()
}
