package testutil

import "sync"

// FakeOutput records every driver call for assertions.
//
// Calls records each Set as issued, including redundant writes of the
// same level (the executor keeps mirror and driver in lockstep, so
// redundant writes are expected around stop). Toggles counts only actual
// level changes, which is what the blink/pattern toggle-count properties
// care about.
type FakeOutput struct {
	mu    sync.Mutex
	on    bool
	calls []bool
}

// NewFakeOutput creates a FakeOutput at level off.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the call and the new level.
func (o *FakeOutput) Set(on bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, on)
	o.on = on
}

// On returns the last driven level.
func (o *FakeOutput) On() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.on
}

// Calls returns a copy of every Set call in order.
func (o *FakeOutput) Calls() []bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]bool, len(o.calls))
	copy(out, o.calls)
	return out
}

// Toggles counts level changes, starting from off.
func (o *FakeOutput) Toggles() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	last := false
	for _, c := range o.calls {
		if c != last {
			n++
			last = c
		}
	}
	return n
}

// Reset clears the recorded calls but keeps the current level.
func (o *FakeOutput) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = nil
}
