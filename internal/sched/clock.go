package sched

import "time"

// Ticks is a monotonically increasing millisecond counter that wraps at
// 2^32. All deadline arithmetic on Ticks must go through Due or Since;
// direct ordered comparison breaks at the wrap boundary.
type Ticks uint32

// Clock supplies the current tick count.
//
// Implemented by WallClock (production) and testutil.ManualClock (tests).
type Clock interface {
	Now() Ticks
}

// Due reports whether deadline has been reached at now.
//
// The subtraction wraps and the difference is interpreted as signed, so
// the result is correct as long as now and deadline are within 2^31 ms
// (~24.8 days) of each other. Program durations are capped at 600 s by
// the parser, far inside that window.
func Due(now, deadline Ticks) bool {
	return int32(now-deadline) >= 0
}

// Since returns the ticks elapsed from then to now, wrap-safe.
func Since(now, then Ticks) Ticks {
	return now - then
}

// WallClock derives Ticks from the process monotonic clock.
//
// time.Since reads the runtime's monotonic reading, so the counter never
// jumps on wall-clock adjustments. The uint32 truncation provides the
// documented wrap behavior.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a WallClock starting at tick 0.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns milliseconds since the clock was created, modulo 2^32.
func (c *WallClock) Now() Ticks {
	return Ticks(time.Since(c.start).Milliseconds())
}
