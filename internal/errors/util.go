package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorStack returns the stack traces of all errors found in err's tree, one per wrapped error.
func ErrorStack(err error) string {
	var stacks []string

	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if err, ok := err.(interface{ ErrorStack() string }); ok {
				stacks = append(stacks, err.ErrorStack())
				break
			}
		}
	}

	return strings.Join(stacks, "\n")
}

// ContainsStackTrace reports whether err or any error it wraps carries a stack trace.
func ContainsStackTrace(err error) bool {
	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if _, ok := err.(interface{ ErrorStack() string }); ok {
				return true
			}
		}
	}

	return false
}

// Recover recovers from a panic and passes the cause to onPanic as an error with a stack trace.
// It must be called from a defer statement.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, ok := rec.(error)
		if !ok {
			err = fmt.Errorf("%v", rec) //nolint:err113
		}

		onPanic(New(err))
	}
}

// UnwrapMultiErrors flattens nested multi-errors (anything implementing `Unwrap() []error`) into a slice.
func UnwrapMultiErrors(err error) []error {
	if err == nil {
		return nil
	}

	var (
		queue  = []error{err}
		result []error
	)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var multi interface{ Unwrap() []error }

		found := false

		for e := current; e != nil; e = errors.Unwrap(e) {
			if m, ok := e.(interface{ Unwrap() []error }); ok {
				multi = m
				found = true

				break
			}
		}

		if found {
			queue = append(queue, multi.Unwrap()...)
			continue
		}

		result = append(result, current)
	}

	return result
}
