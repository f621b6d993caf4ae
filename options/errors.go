package options

import (
	"fmt"
	"strings"
)

// InvalidValueError is returned for an option set to a value it does not accept.
type InvalidValueError struct {
	Value   any
	Name    string
	Allowed []string
}

func (err InvalidValueError) Error() string {
	if len(err.Allowed) == 0 {
		return fmt.Sprintf("invalid value %v for %s", err.Value, err.Name)
	}

	return fmt.Sprintf("invalid value %v for %s, supported values: %s", err.Value, err.Name, strings.Join(err.Allowed, ", "))
}
