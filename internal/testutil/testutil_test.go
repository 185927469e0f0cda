package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/ledd/internal/sched"
)

func TestManualClock_StartsAtZero(t *testing.T) {
	c := NewManualClock()
	assert.Equal(t, sched.Ticks(0), c.Now())
}

func TestManualClock_AdvanceAndSet(t *testing.T) {
	c := NewManualClock()
	c.Advance(100)
	assert.Equal(t, sched.Ticks(100), c.Now())
	c.Set(5)
	assert.Equal(t, sched.Ticks(5), c.Now())
}

func TestManualClock_AdvanceWrapsAtBoundary(t *testing.T) {
	c := NewManualClockAt(^sched.Ticks(0) - 1)
	c.Advance(3)
	assert.Equal(t, sched.Ticks(1), c.Now())
}

func TestFakeOutput_TogglesCountsLevelChanges(t *testing.T) {
	o := NewFakeOutput()
	o.Set(true)
	o.Set(true) // redundant write, not a toggle
	o.Set(false)
	o.Set(false)
	o.Set(true)

	assert.Equal(t, 3, o.Toggles())
	assert.True(t, o.On())
	assert.Len(t, o.Calls(), 5)
}

func TestFakeOutput_ResetKeepsLevel(t *testing.T) {
	o := NewFakeOutput()
	o.Set(true)
	o.Reset()
	assert.Empty(t, o.Calls())
	assert.True(t, o.On())
}
