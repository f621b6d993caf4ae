package filter

import "fmt"

// InvalidSelectorError is returned for a project selector that is not a valid glob.
type InvalidSelectorError struct {
	Err     error
	Pattern string
}

func (err InvalidSelectorError) Error() string {
	return fmt.Sprintf("invalid project selector %q: %v", err.Pattern, err.Err)
}

func (err InvalidSelectorError) Unwrap() error {
	return err.Err
}
