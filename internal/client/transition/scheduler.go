// Package transition runs cosmetic view switches after a short pause.
//
// Every callback is a one-shot timer owned by a Scheduler. Stopping the
// scheduler, typically when the REPL exits, cancels whatever is still
// pending; a callback never runs after Stop returns.
package transition

import (
	"sync"
	"time"
)

type Scheduler struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*time.Timer
	stopped bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[uint64]*time.Timer)}
}

// Schedule runs fn once after delay and returns a function that cancels it.
// Cancelling twice, or after fn ran, is harmless. A non-positive delay still
// runs fn asynchronously. Scheduling on a stopped Scheduler does nothing.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return func() {}
	}

	s.nextID++
	id := s.nextID
	s.pending[id] = time.AfterFunc(delay, func() {
		if s.claim(id) {
			fn()
		}
	})

	return func() { s.cancel(id) }
}

// Pending returns the number of callbacks that have not fired or been
// cancelled yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending callback and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}

// claim removes id from pending and reports whether the caller may run it.
func (s *Scheduler) claim(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

func (s *Scheduler) cancel(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[id]; ok {
		t.Stop()
		delete(s.pending, id)
	}
}
