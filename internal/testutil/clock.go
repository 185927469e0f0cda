// Package testutil provides deterministic doubles for scheduler tests.
package testutil

import (
	"sync"

	"github.com/roach88/ledd/internal/sched"
)

// ManualClock is a settable tick source for tests.
//
// Unlike sched.WallClock it only moves when told to, so a test can walk a
// program through its deadlines one transition at a time. Advancing past
// the uint32 boundary exercises the wraparound path.
//
// Thread-safety: all methods take an internal mutex so transport
// goroutines in controller tests may read while the test advances.
type ManualClock struct {
	mu  sync.Mutex
	now sched.Ticks
}

// NewManualClock creates a clock at tick 0.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// NewManualClockAt creates a clock at a specific tick. Used by the
// wraparound tests to start near the top of the counter.
func NewManualClockAt(start sched.Ticks) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current tick.
func (c *ManualClock) Now() sched.Ticks {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d ticks, wrapping at 2^32.
func (c *ManualClock) Advance(d sched.Ticks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set moves the clock to an absolute tick.
func (c *ManualClock) Set(t sched.Ticks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
