package proto

import (
	"strconv"
	"strings"
)

// Range bounds for command arguments. These mirror the device contract;
// the scheduler assumes every loaded program respects them.
const (
	MinDurationMS = 10
	MaxDurationMS = 60000
	MaxHoldMS     = 600000
	MaxBlinkCount = 100
	MaxPatternRep = 50
	MaxPatternLen = 50
)

// Command is a validated program request. Concrete types are SetCommand,
// BlinkCommand, HoldCommand, PatternCommand, and StopCommand.
type Command interface {
	Verb() string
}

// SetCommand is an immediate output set with no timing state.
type SetCommand struct {
	On bool
}

// Verb returns "SET".
func (SetCommand) Verb() string { return "SET" }

// BlinkCommand runs Count full on+off cycles.
type BlinkCommand struct {
	Count uint16
	OnMS  uint32
	OffMS uint32
}

// Verb returns "BLINK".
func (BlinkCommand) Verb() string { return "BLINK" }

// HoldCommand keeps the output on for DurationMS, then off.
type HoldCommand struct {
	DurationMS uint32
}

// Verb returns "HOLD".
func (HoldCommand) Verb() string { return "HOLD" }

// PatternCommand alternates the output through Durations, starting ON,
// repeating the whole sequence Repeat times.
type PatternCommand struct {
	Repeat    uint8
	Durations []uint32
}

// Verb returns "PATTERN".
func (PatternCommand) Verb() string { return "PATTERN" }

// StopCommand cancels the running program and forces the output off.
type StopCommand struct{}

// Verb returns "STOP".
func (StopCommand) Verb() string { return "STOP" }

// Parse tokenizes one line into a validated command.
//
// A line with no tokens returns (nil, nil): empty and whitespace-only
// lines are silently ignored, with no reply and no stop. An unknown verb
// returns a CodeMalformedCommand error; every other failure means the
// verb was recognized (and the caller has therefore already stopped the
// scheduler) but an argument was missing, non-numeric, or out of range.
func Parse(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, nil
	}
	verb, args := tokens[0], tokens[1:]
	switch verb {
	case "SET":
		return parseSet(args)
	case "BLINK":
		return parseBlink(args)
	case "HOLD":
		return parseHold(args)
	case "PATTERN":
		return parsePattern(args)
	case "STOP":
		return StopCommand{}, nil
	default:
		return nil, errUnknownCommand()
	}
}

func parseSet(args []string) (Command, error) {
	state, err := field("SET", "state", args, 0, 0, 1)
	if err != nil {
		return nil, err
	}
	return SetCommand{On: state == 1}, nil
}

func parseBlink(args []string) (Command, error) {
	count, err := field("BLINK", "count", args, 0, 1, MaxBlinkCount)
	if err != nil {
		return nil, err
	}
	onMS, err := field("BLINK", "on_ms", args, 1, MinDurationMS, MaxDurationMS)
	if err != nil {
		return nil, err
	}
	offMS, err := field("BLINK", "off_ms", args, 2, MinDurationMS, MaxDurationMS)
	if err != nil {
		return nil, err
	}
	return BlinkCommand{Count: uint16(count), OnMS: onMS, OffMS: offMS}, nil
}

func parseHold(args []string) (Command, error) {
	d, err := field("HOLD", "duration", args, 0, MinDurationMS, MaxHoldMS)
	if err != nil {
		return nil, err
	}
	return HoldCommand{DurationMS: d}, nil
}

func parsePattern(args []string) (Command, error) {
	repeat, err := field("PATTERN", "repeat", args, 0, 1, MaxPatternRep)
	if err != nil {
		return nil, err
	}
	n, err := field("PATTERN", "count", args, 1, 1, MaxPatternLen)
	if err != nil {
		return nil, err
	}
	// Durations are validated one at a time so a shortfall is diagnosed
	// at the first absent token, not as a generic count mismatch.
	durs := make([]uint32, 0, n)
	for i := uint32(0); i < n; i++ {
		d, err := field("PATTERN", "duration", args, int(2+i), MinDurationMS, MaxDurationMS)
		if err != nil {
			return nil, err
		}
		durs = append(durs, d)
	}
	return PatternCommand{Repeat: uint8(repeat), Durations: durs}, nil
}

// field extracts and validates the numeric argument at index i.
func field(verb, name string, args []string, i int, lo, hi uint32) (uint32, error) {
	if i >= len(args) {
		return 0, errMissing(verb, name)
	}
	v, err := strconv.ParseUint(args[i], 10, 32)
	if err != nil {
		return 0, errNotANumber(verb, name)
	}
	if uint32(v) < lo || uint32(v) > hi {
		return 0, errOutOfRange(verb, name, lo, hi)
	}
	return uint32(v), nil
}
