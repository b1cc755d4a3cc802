package engine

import (
	"sync"
	"time"
)

// Scheduler is a single-threaded cooperative task queue with a timer facility.
// All deferred dispatch (Node.Post) and timer continuations run on one loop
// goroutine, one task per tick, in FIFO order. The queue is unbounded; the
// engine applies no backpressure and provides no cancellation of queued work.
type Scheduler struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	done chan struct{}
}

// NewScheduler starts the loop goroutine and returns the running scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{done: make(chan struct{})}
	s.cond = sync.NewCond(&s.mu)
	go s.loop()
	return s
}

func (s *Scheduler) loop() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 && s.closed {
			s.mu.Unlock()
			return
		}
		task := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		task()
	}
}

// Defer enqueues fn to run on a later tick of the loop and returns
// immediately. Tasks deferred after Close are dropped.
func (s *Scheduler) Defer(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, fn)
	s.cond.Signal()
}

// After arranges for fn to run on the loop once d has elapsed. The wait is
// non-blocking; other tasks keep running while the timer is pending, and any
// number of timers may be outstanding at once.
func (s *Scheduler) After(d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() {
		s.Defer(fn)
	})
}

// Barrier blocks until every task queued before it has run. It is the
// synchronization point for callers that need to observe the effects of a
// Defer. Returns immediately on a closed scheduler.
func (s *Scheduler) Barrier() {
	ran := make(chan struct{})
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, func() { close(ran) })
	s.cond.Signal()
	s.mu.Unlock()

	<-ran
}

// Close drains the remaining queue and stops the loop. Close blocks until the
// loop goroutine has exited.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	<-s.done
}
