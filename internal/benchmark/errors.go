package benchmark

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by configuration validation. They wrap into the
// *Error type below, so callers can use errors.Is.
var (
	// ErrMissingParameter means the configuration lacks a value for one of
	// the space's parameters.
	ErrMissingParameter = errors.New("configuration missing parameter")
	// ErrOutOfBounds means a value lies outside its parameter's bounds.
	ErrOutOfBounds = errors.New("parameter value out of bounds")
	// ErrInvalidValue means a value has the wrong shape for its parameter
	// kind, e.g. a non-integral value for an integer parameter.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Error is a benchmark error with operation and component context.
type Error struct {
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Err is the underlying error, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("benchmark: %s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("benchmark: %s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("benchmark: %s: %v", e.Message, e.Err)
	default:
		return "benchmark: " + e.Message
	}
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOp adds operation context to the error.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// wrapError wraps an existing error with additional context. If err is
// nil, wrapError returns nil.
func wrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}
