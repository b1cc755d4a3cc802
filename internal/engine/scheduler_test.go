package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunsDeferredInOrder(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var order []int
	for i := 1; i <= 5; i++ {
		i := i
		s.Defer(func() { order = append(order, i) })
	}
	s.Barrier()

	if len(order) != 5 {
		t.Fatalf("expected 5 tasks to run, got %d", len(order))
	}
	for i, got := range order {
		if got != i+1 {
			t.Fatalf("tasks out of order: %v", order)
		}
	}
}

func TestSchedulerDeferReturnsBeforeTaskRuns(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var ran atomic.Bool
	gate := make(chan struct{})

	// Hold the loop so the deferred task cannot run before we check the flag.
	s.Defer(func() { <-gate })
	s.Defer(func() { ran.Store(true) })

	if ran.Load() {
		t.Fatal("task ran before the loop yielded")
	}
	close(gate)
	s.Barrier()
	if !ran.Load() {
		t.Fatal("task never ran")
	}
}

func TestSchedulerAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	fired := make(chan time.Time, 1)
	start := time.Now()
	s.After(20*time.Millisecond, func() { fired <- time.Now() })

	select {
	case at := <-fired:
		if elapsed := at.Sub(start); elapsed < 20*time.Millisecond {
			t.Fatalf("timer fired early after %v", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestSchedulerManyPendingTimers(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	const timers = 50
	var fired atomic.Int32
	done := make(chan struct{})
	for i := 0; i < timers; i++ {
		s.After(10*time.Millisecond, func() {
			if fired.Add(1) == timers {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("only %d of %d timers fired", fired.Load(), timers)
	}
}

func TestSchedulerTimersDoNotBlockQueue(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var ran atomic.Bool
	s.After(500*time.Millisecond, func() {})
	s.Defer(func() { ran.Store(true) })
	s.Barrier()

	if !ran.Load() {
		t.Fatal("pending timer blocked an immediate task")
	}
}

func TestSchedulerCloseDrainsQueue(t *testing.T) {
	s := NewScheduler()

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		s.Defer(func() { ran.Add(1) })
	}
	s.Close()

	if got := ran.Load(); got != 10 {
		t.Fatalf("expected queued tasks to drain on close, ran %d", got)
	}

	// After close, Defer and Barrier are safe no-ops.
	s.Defer(func() { ran.Add(1) })
	s.Barrier()
	if got := ran.Load(); got != 10 {
		t.Fatalf("task ran after close: %d", got)
	}
}
