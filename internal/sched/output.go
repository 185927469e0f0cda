package sched

import "log/slog"

// Output maps a logical on/off intent to a physical signal.
//
// Set is a pure side effect: no error conditions, no blocking. Polarity
// (active-high vs active-low) is the implementation's concern; callers
// always speak in logical terms where true means "illuminated".
type Output interface {
	Set(on bool)
}

// FuncOutput adapts a function to the Output interface.
type FuncOutput func(on bool)

// Set calls the wrapped function.
func (f FuncOutput) Set(on bool) { f(on) }

// Inverted wraps an Output for active-low wiring: logical on becomes a
// physical low level. Use when the driver itself has no polarity support.
func Inverted(out Output) Output {
	return FuncOutput(func(on bool) { out.Set(!on) })
}

// LogOutput logs each transition instead of driving hardware. It is the
// default when no GPIO section is configured, for development on machines
// without a character device.
type LogOutput struct{}

// Set logs the requested level at debug.
func (LogOutput) Set(on bool) {
	slog.Debug("output set", "on", on)
}
