package apperr

import (
	"context"
	"errors"
	"fmt"
)

// Error is a classified failure.
// Message is safe to show to users; Err keeps the underlying cause for
// logs and errors.Is checks.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. The message defaults to err.Error().
// Wrap returns nil when err is nil.
func Wrap(kind Kind, err error, message string) *Error {
	if err == nil {
		return nil
	}
	if message == "" {
		message = err.Error()
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil && e.Message != e.Err.Error() {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
// Unclassified context deadlines and cancellations map to Timeout;
// anything else is Generic.
func KindOf(err error) Kind {
	if err == nil {
		return Generic
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Timeout
	}
	return Generic
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// ExitCode returns the exit code for err, or ExitOK when err is nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return KindOf(err).ExitCode()
}

// message returns the user-facing message of err.
func message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if KindOf(err) == Timeout {
		return "request timed out"
	}
	return err.Error()
}
