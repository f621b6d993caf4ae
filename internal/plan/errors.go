package plan

import "fmt"

// IllegalTransitionError is returned when a slot is moved to a state its current state does
// not lead to.
type IllegalTransitionError struct {
	Project string
	From    State
	To      State
}

func (err IllegalTransitionError) Error() string {
	return fmt.Sprintf("project %s: illegal transition from %s to %s", err.Project, err.From, err.To)
}

// ProjectFailedError wraps the error a runner returned for a project.
type ProjectFailedError struct {
	Err     error
	Project string
}

func (err ProjectFailedError) Error() string {
	return fmt.Sprintf("project %s failed: %v", err.Project, err.Err)
}

func (err ProjectFailedError) Unwrap() error {
	return err.Err
}
