// Package gpio drives the output through the Linux GPIO character
// device.
package gpio

import (
	"fmt"
	"log/slog"

	gpiocdev "github.com/warthog618/go-gpiocdev"
)

// Output is a sched.Output backed by one requested GPIO line.
//
// Polarity is handled in the kernel via the active-low line flag, so Set
// always speaks logically: true means "illuminated" regardless of wiring.
type Output struct {
	line *gpiocdev.Line
}

// Open requests the line as an output, initially inactive.
func Open(chip string, offset int, activeLow bool) (*Output, error) {
	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("ledd"),
	}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	line, err := gpiocdev.RequestLine(chip, offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s line %d: %w", chip, offset, err)
	}
	slog.Info("gpio output ready", "chip", chip, "line", offset, "active_low", activeLow)
	return &Output{line: line}, nil
}

// Set drives the line. Errors are logged and swallowed: the scheduler's
// Set contract is a pure side effect, and a transient cdev error must not
// derail a running program.
func (o *Output) Set(on bool) {
	v := 0
	if on {
		v = 1
	}
	if err := o.line.SetValue(v); err != nil {
		slog.Error("gpio set failed", "value", v, "error", err)
	}
}

// Close releases the line, leaving it inactive.
func (o *Output) Close() error {
	o.Set(false)
	return o.line.Close()
}
