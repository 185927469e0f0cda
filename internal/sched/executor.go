package sched

import "log/slog"

// MaxPatternSteps is the capacity of the pattern duration sequence.
// Longer sequences are rejected at parse time, never at runtime.
const MaxPatternSteps = 50

// Notifier receives asynchronous completion notices ("BLINK done",
// "HOLD done", "PATTERN done") when a timed program finishes on its own.
type Notifier func(msg string)

// Executor holds the current program and its timing state.
//
// All methods must be called from the single goroutine that owns the
// Executor (the controller run loop). The Executor itself never blocks:
// Poll compares the clock against the armed deadline and fires at most
// one transition.
//
// INVARIANTS:
//   - The logical output mirror and the driver's signal move in lockstep:
//     every mutation of the mirror immediately drives the Output.
//   - Mode-specific sub-state exists only while its mode is active; Stop
//     and every Start* discard it wholesale.
type Executor struct {
	clock  Clock
	out    Output
	notify Notifier

	on   bool    // last commanded logical state, authoritative mirror
	prog program // nil when Idle
}

// NewExecutor creates an Executor in Idle with the output driven off.
func NewExecutor(clock Clock, out Output, notify Notifier) *Executor {
	e := &Executor{clock: clock, out: out, notify: notify}
	e.setOutput(false)
	return e
}

// Mode returns the active program mode.
func (e *Executor) Mode() Mode {
	if e.prog == nil {
		return ModeIdle
	}
	return e.prog.mode()
}

// OutputOn returns the logical output mirror.
func (e *Executor) OutputOn() bool { return e.on }

// Stop cancels the running program, clears all sub-state, and forces the
// output off. Safe to call in any mode, including Idle.
func (e *Executor) Stop() {
	if e.prog != nil {
		slog.Debug("program cancelled", "mode", e.prog.mode())
	}
	e.prog = nil
	e.setOutput(false)
}

// Set drives the output to the given level with no timer armed.
// The caller applies the unconditional stop first.
func (e *Executor) Set(on bool) {
	e.prog = nil
	e.setOutput(on)
}

// StartBlink arms a blink program: cycles full on+off cycles, output
// starting ON, first deadline one on-duration from now.
func (e *Executor) StartBlink(cycles uint16, onMS, offMS Ticks) {
	now := e.clock.Now()
	e.setOutput(true)
	e.prog = &blinkProgram{
		next:       now + onMS,
		cyclesLeft: cycles,
		onMS:       onMS,
		offMS:      offMS,
	}
	slog.Debug("blink armed", "cycles", cycles, "on_ms", onMS, "off_ms", offMS)
}

// StartHold arms a hold program: output ON until the deadline, then off.
func (e *Executor) StartHold(durationMS Ticks) {
	now := e.clock.Now()
	e.setOutput(true)
	e.prog = &holdProgram{until: now + durationMS}
	slog.Debug("hold armed", "duration_ms", durationMS)
}

// StartPattern arms a pattern program over the given duration sequence,
// output starting ON. The slice is copied; the caller may reuse it.
// len(durations) must be in [1, MaxPatternSteps] - enforced by the
// parser, asserted here only by the bounds of the copy.
func (e *Executor) StartPattern(repeat uint8, durations []Ticks) {
	now := e.clock.Now()
	durs := make([]Ticks, len(durations))
	copy(durs, durations)
	e.setOutput(true)
	e.prog = &patternProgram{
		next:        now + durs[0],
		durations:   durs,
		repeatCount: repeat,
	}
	slog.Debug("pattern armed", "repeat", repeat, "steps", len(durs))
}

// Poll advances the running program if its deadline has passed.
//
// At most one transition fires per call. The output change and the new
// deadline are updated together within the call, so a reader between
// polls never observes a stale pairing of level and deadline.
func (e *Executor) Poll() {
	if e.prog == nil {
		return
	}
	now := e.clock.Now()
	if !Due(now, e.prog.deadline()) {
		return
	}
	done := e.prog.advance(e, now)
	if done == "" {
		return
	}
	mode := e.prog.mode()
	e.prog = nil
	e.setOutput(false)
	slog.Debug("program finished", "mode", mode)
	if e.notify != nil {
		e.notify(done)
	}
}

// setOutput updates the mirror and immediately drives the hardware.
func (e *Executor) setOutput(on bool) {
	e.on = on
	e.out.Set(on)
}
