package order

import (
	"sync"
	"time"
)

// Scheduler runs the settlement simulation: one deferred job per order,
// fired after a fixed delay. Unlike a fire-and-forget timer, every job has
// an explicit handle so a conflicting transition (user cancel) can stop it
// before it fires.
type Scheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[int]*time.Timer
}

// NewScheduler returns a Scheduler firing jobs after the given delay.
func NewScheduler(delay time.Duration) *Scheduler {
	return &Scheduler{
		delay:  delay,
		timers: make(map[int]*time.Timer),
	}
}

// Schedule registers fn to run once after the delay. Scheduling twice for
// the same order replaces the earlier job.
func (s *Scheduler) Schedule(orderID int, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[orderID]; ok {
		t.Stop()
	}
	s.timers[orderID] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		delete(s.timers, orderID)
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops the pending job for the order, if any. It returns true when a
// job was stopped before firing; false means the job already fired (or none
// was scheduled) and the caller must rely on the state machine guard.
func (s *Scheduler) Cancel(orderID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[orderID]
	if !ok {
		return false
	}
	delete(s.timers, orderID)
	return t.Stop()
}

// Stop cancels every pending job. Called on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
