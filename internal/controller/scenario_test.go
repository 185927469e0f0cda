package controller_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/ledd/internal/sched"
)

// The scenario tests replay bench transcripts against golden files: every
// input line (prefixed "> ") followed by exactly the replies and notices
// the device emits, in order. Timing is driven by the manual clock, so
// the transcripts are fully deterministic.

func assertGolden(t *testing.T, name string, h *harness) {
	t.Helper()
	g := goldie.New(t)
	g.Assert(t, name, []byte(strings.Join(h.transcript, "\n")+"\n"))
}

func TestScenario_Set(t *testing.T) {
	h := newHarness(t)
	h.send("SET 1")
	assert.True(t, h.ctrl.OutputOn())
	h.send("SET 0")
	assert.False(t, h.ctrl.OutputOn())
	h.send("STOP")
	assertGolden(t, "set_and_stop", h)
}

func TestScenario_Blink(t *testing.T) {
	h := newHarness(t)
	h.send("BLINK 3 100 50")
	h.run(460)

	assert.Equal(t, sched.ModeIdle, h.ctrl.Mode())
	assert.False(t, h.ctrl.OutputOn())
	assertGolden(t, "blink", h)
}

func TestScenario_Hold(t *testing.T) {
	h := newHarness(t)
	h.send("HOLD 200")
	h.run(199)
	assert.True(t, h.ctrl.OutputOn(), "still held before the deadline")
	h.run(10)

	assert.Equal(t, sched.ModeIdle, h.ctrl.Mode())
	assert.False(t, h.ctrl.OutputOn())
	assertGolden(t, "hold", h)
}

func TestScenario_Pattern(t *testing.T) {
	h := newHarness(t)
	h.send("PATTERN 2 2 100 100")
	h.run(410)

	assert.Equal(t, sched.ModeIdle, h.ctrl.Mode())
	assert.False(t, h.ctrl.OutputOn())
	assertGolden(t, "pattern", h)
}

func TestScenario_InvalidCommands(t *testing.T) {
	h := newHarness(t)
	h.send("BLINK 0 100 100")
	h.send("PATTERN 1 3 10 20")
	h.send("NOPE 1")
	h.send("SET 2")
	h.send("HOLD")

	assert.Equal(t, sched.ModeIdle, h.ctrl.Mode())
	assertGolden(t, "invalid", h)
}

func TestScenario_Preemption(t *testing.T) {
	h := newHarness(t)
	h.send("BLINK 10 100 100")
	h.run(150)
	h.send("HOLD 200")
	h.run(250)

	assert.Equal(t, sched.ModeIdle, h.ctrl.Mode())
	assert.False(t, h.ctrl.OutputOn())
	assertGolden(t, "preempt", h)
}
