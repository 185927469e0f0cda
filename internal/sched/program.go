package sched

// Mode identifies which program the Executor is running.
type Mode uint8

const (
	// ModeIdle means no timer is armed; the output holds its last level.
	ModeIdle Mode = iota
	// ModeBlinking runs a finite number of on/off cycles.
	ModeBlinking
	// ModeHolding keeps the output on until a single deadline.
	ModeHolding
	// ModePatterning walks a repeating sequence of alternating durations.
	ModePatterning
)

// String returns the mode name as used in logs.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeBlinking:
		return "blinking"
	case ModeHolding:
		return "holding"
	case ModePatterning:
		return "patterning"
	default:
		return "unknown"
	}
}

// program is the mode-specific state of a running timed program.
//
// Exactly one program value exists while a program runs; Idle is the
// absence of one. Keeping blink, hold, and pattern sub-state in separate
// concrete types makes a field access outside its owning mode a
// compile-time impossibility rather than a runtime convention.
type program interface {
	mode() Mode
	deadline() Ticks
	// advance fires the transition that became due at now. It returns a
	// non-empty done message when the program has finished; the Executor
	// then drops the program and forces the output off.
	advance(e *Executor, now Ticks) (done string)
}

// blinkProgram counts down full on+off cycles.
//
// The decrement happens on the ON->OFF edge, but the done check happens
// on the following OFF-edge expiry. The ordering is deliberate: the last
// cycle's OFF phase always runs to completion before "BLINK done" is
// emitted, so total program time is exactly cycles*(on+off).
type blinkProgram struct {
	next       Ticks
	cyclesLeft uint16
	onMS       Ticks
	offMS      Ticks
}

func (p *blinkProgram) mode() Mode      { return ModeBlinking }
func (p *blinkProgram) deadline() Ticks { return p.next }

func (p *blinkProgram) advance(e *Executor, now Ticks) string {
	if e.on {
		// ON phase expired: start the OFF phase of this cycle.
		e.setOutput(false)
		p.next = now + p.offMS
		p.cyclesLeft--
		return ""
	}
	// OFF phase expired: either start the next cycle or finish without
	// re-illuminating.
	if p.cyclesLeft == 0 {
		return "BLINK done"
	}
	e.setOutput(true)
	p.next = now + p.onMS
	return ""
}

// holdProgram keeps the output on until a single deadline.
type holdProgram struct {
	until Ticks
}

func (p *holdProgram) mode() Mode      { return ModeHolding }
func (p *holdProgram) deadline() Ticks { return p.until }

func (p *holdProgram) advance(e *Executor, now Ticks) string {
	return "HOLD done"
}

// patternProgram walks an alternating on/off duration sequence, starting
// ON, repeating the whole sequence a fixed number of times.
type patternProgram struct {
	next        Ticks
	durations   []Ticks
	stepIndex   uint8
	repeatCount uint8
	repeatsDone uint8
}

func (p *patternProgram) mode() Mode      { return ModePatterning }
func (p *patternProgram) deadline() Ticks { return p.next }

func (p *patternProgram) advance(e *Executor, now Ticks) string {
	p.stepIndex++
	if int(p.stepIndex) == len(p.durations) {
		p.stepIndex = 0
		p.repeatsDone++
		// Completion is checked before the toggle: a finished final
		// repeat must not re-toggle the output.
		if p.repeatsDone == p.repeatCount {
			return "PATTERN done"
		}
	}
	e.setOutput(!e.on)
	p.next = now + p.durations[p.stepIndex]
	return ""
}
