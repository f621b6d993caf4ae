// Package errors wraps errors with stack traces and provides helpers for exit codes,
// multi-errors and panic recovery.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New creates a new error with a stack trace. If val is already an error, it is wrapped
// unless it already carries a stack trace. A nil error yields nil.
func New(val any) error {
	if val == nil {
		return nil
	}

	if err, ok := val.(error); ok {
		if err == nil {
			return nil
		}

		if ContainsStackTrace(err) {
			return err
		}
	}

	return goerrors.Wrap(val, 1)
}

// Errorf creates a new error from the format specifier and wraps it with a stack trace.
// The %w verb is supported.
func Errorf(format string, args ...any) error {
	return goerrors.Wrap(fmt.Errorf(format, args...), 1)
}

// ErrorWithExitCode is used to set the process exit code of the app.
type ErrorWithExitCode struct {
	Err      error
	ExitCode int
}

func (err ErrorWithExitCode) Error() string {
	return err.Err.Error()
}

func (err ErrorWithExitCode) Unwrap() error {
	return err.Err
}

// ExitCode returns the exit code carried by err, or defaultCode when err does not carry one.
func ExitCode(err error, defaultCode int) int {
	var exitErr ErrorWithExitCode
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}

	var exitErrPtr *ErrorWithExitCode
	if errors.As(err, &exitErrPtr) && exitErrPtr != nil {
		return exitErrPtr.ExitCode
	}

	return defaultCode
}
