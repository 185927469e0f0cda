// Package sched implements the ledd output scheduler.
//
// The scheduler drives a single binary output (an LED, a relay coil)
// through time-bounded programs: a finite blink cycle, a timed hold, or a
// repeating multi-step pattern. It is the heart of ledd - everything else
// in the repository is plumbing that feeds it command lines or carries its
// replies.
//
// ARCHITECTURE:
//
// Cooperative polling:
// The Executor never blocks and never sleeps. Timing is achieved purely by
// comparing a monotonic millisecond clock against stored deadlines on each
// Poll() call. The controller loop polls once per iteration, so timing
// resolution is bounded by loop latency, which must stay well under the
// 10 ms duration floor enforced at parse time.
//
// Single-writer ownership:
// All Executor state is owned by the controller's run loop goroutine.
// There is no locking inside the Executor - data races are structurally
// impossible because exactly one goroutine mutates it.
//
// Wraparound safety:
// Ticks is a uint32 millisecond counter that wraps at 2^32 (about 49.7
// days). Every deadline comparison is a wrapping subtraction interpreted
// as a signed quantity, so a counter wrap mid-program never causes a
// missed or duplicated transition. NEVER compare Ticks with < or >.
//
// Preemption:
// Any accepted command destructively replaces the running program. Stop()
// clears all mode-specific sub-state and forces the output off; a
// partially-applied program is never observable.
package sched
