package proto

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes command validation failures.
type ErrorCode string

const (
	// CodeMalformedCommand indicates an unknown command token. This is
	// the only failure rejected before the unconditional stop: an
	// unrecognized verb leaves the running program untouched.
	CodeMalformedCommand ErrorCode = "MALFORMED_COMMAND"

	// CodeMissingArgument indicates fewer tokens than the verb requires.
	CodeMissingArgument ErrorCode = "MISSING_ARGUMENT"

	// CodeInvalidNumber indicates a token that is not a decimal number
	// where one is required (empty, trailing characters, sign).
	CodeInvalidNumber ErrorCode = "INVALID_NUMBER"

	// CodeOutOfRange indicates a numeric value outside the documented
	// bound for its field.
	CodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// CommandError is a command validation failure.
//
// All command errors are local and recoverable: each produces exactly one
// ERR reply line and nothing else. Message is the wire text after the
// "ERR " prefix.
type CommandError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface with the wire message.
func (e *CommandError) Error() string {
	return e.Message
}

// IsMalformed reports whether err is an unknown-command failure.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) && ce.Code == CodeMalformedCommand
}

func errUnknownCommand() *CommandError {
	return &CommandError{Code: CodeMalformedCommand, Message: "unknown command"}
}

func errMissing(verb, field string) *CommandError {
	return &CommandError{
		Code:    CodeMissingArgument,
		Message: fmt.Sprintf("%s missing %s", verb, field),
	}
}

func errNotANumber(verb, field string) *CommandError {
	return &CommandError{
		Code:    CodeInvalidNumber,
		Message: fmt.Sprintf("%s %s invalid", verb, field),
	}
}

func errOutOfRange(verb, field string, lo, hi uint32) *CommandError {
	return &CommandError{
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("%s %s %d..%d", verb, field, lo, hi),
	}
}
