package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MultiError collects errors from concurrent tasks. The zero value is ready to use.
type MultiError struct {
	inner *multierror.Error
}

// Error renders every wrapped error as an indented bullet list.
func (errs *MultiError) Error() string {
	wrapped := UnwrapMultiErrors(errs)

	lines := make([]string, 0, len(wrapped))
	for _, err := range wrapped {
		lines = append(lines, addIndent(err.Error()))
	}

	if len(wrapped) == 1 {
		return fmt.Sprintf("error occurred:\n\n%s\n", strings.Join(lines, "\n\n"))
	}

	return fmt.Sprintf("%d errors occurred:\n\n%s\n", len(wrapped), strings.Join(lines, "\n\n"))
}

// WrappedErrors returns the errors this MultiError is wrapping.
func (errs *MultiError) WrappedErrors() []error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	return errs.inner.WrappedErrors()
}

func (errs *MultiError) Unwrap() []error {
	return errs.WrappedErrors()
}

// Len returns the number of collected errors.
func (errs *MultiError) Len() int {
	return len(errs.WrappedErrors())
}

// ErrorOrNil returns nil when no errors were collected.
func (errs *MultiError) ErrorOrNil() error {
	if errs == nil || errs.inner == nil || errs.inner.ErrorOrNil() == nil {
		return nil
	}

	return errs
}

// Append returns a MultiError containing the existing errors followed by appendErrs.
// Nil errors are ignored.
func (errs *MultiError) Append(appendErrs ...error) *MultiError {
	var inner *multierror.Error
	if errs != nil {
		inner = errs.inner
	}

	for _, err := range appendErrs {
		if err != nil {
			inner = multierror.Append(inner, err)
		}
	}

	return &MultiError{inner: inner}
}

func addIndent(str string) string {
	str = strings.ReplaceAll(str, "\r\n", "\n")
	lines := strings.Split(str, "\n")

	for i, line := range lines {
		if i == 0 {
			lines[i] = "* " + line
			continue
		}

		lines[i] = "  " + line
	}

	return strings.Join(lines, "\n")
}
