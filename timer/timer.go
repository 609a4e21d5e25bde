// Package timer implements cooperative deadline and interrupt
// polling: a read-only Timer for workers, with one writer (the
// caller, or a signal handler) publishing the interrupt flag atomically.
package timer

import (
	"sync/atomic"
	"time"
)

// Timer tracks an optional deadline and a cooperative interrupt flag.
// Every outer iteration of reduction, local search, and LNS polls
// NeedsToEnd; there is no other suspension point.
type Timer struct {
	deadline    time.Time
	hasDeadline bool
	interrupted atomic.Bool
}

// New returns a Timer with no deadline. Use NewWithLimit for one with a
// deadline.
func New() *Timer {
	return &Timer{}
}

// NewWithLimit returns a Timer whose deadline is limit from now. A
// non-positive limit means no deadline.
func NewWithLimit(limit time.Duration) *Timer {
	t := &Timer{}
	if limit > 0 {
		t.deadline = time.Now().Add(limit)
		t.hasDeadline = true
	}
	return t
}

// Interrupt sets the cooperative stop flag; safe to call from a signal
// handler or any other goroutine, exactly once or many times.
func (t *Timer) Interrupt() { t.interrupted.Store(true) }

// Interrupted reports whether Interrupt has been called.
func (t *Timer) Interrupted() bool { return t.interrupted.Load() }

// NeedsToEnd reports whether the deadline has passed or Interrupt has been
// called. It is the single suspension-point check threaded through every
// algorithm's outer loop.
func (t *Timer) NeedsToEnd() bool {
	if t.interrupted.Load() {
		return true
	}
	return t.hasDeadline && !time.Now().Before(t.deadline)
}

// Remaining returns the time left until the deadline, or the largest
// representable duration if there is none.
func (t *Timer) Remaining() time.Duration {
	if !t.hasDeadline {
		return time.Duration(1<<63 - 1)
	}
	return time.Until(t.deadline)
}
