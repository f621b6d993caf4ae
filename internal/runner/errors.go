package runner

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/gruntwork-io/treehook/internal/errors"
)

// ErrShellOperator is wrapped by ParseCommandError for command lines using shell operators.
var ErrShellOperator = errors.New("shell operators are not supported, wrap the command in `sh -c`")

// ParseCommandError is returned for a command line that is not valid shell syntax.
type ParseCommandError struct {
	Err  error
	Line string
}

func (err ParseCommandError) Error() string {
	return fmt.Sprintf("failed to parse command %q: %v", err.Line, err.Err)
}

func (err ParseCommandError) Unwrap() error {
	return err.Err
}

// EmptyCommandError is returned for a command line with no executable.
type EmptyCommandError struct {
	Line string
}

func (err EmptyCommandError) Error() string {
	return fmt.Sprintf("command %q has no executable", err.Line)
}

// ProcessExecutionError is returned when the command cannot be started or exits non-zero.
type ProcessExecutionError struct {
	Err        error
	WorkingDir string
	Command    string
	Args       []string
}

func (err ProcessExecutionError) Error() string {
	return fmt.Sprintf("Failed to execute \"%s %s\" in %s: %v",
		err.Command,
		strings.Join(err.Args, " "),
		err.WorkingDir,
		err.Err,
	)
}

func (err ProcessExecutionError) Unwrap() error {
	return err.Err
}

// ExitStatus returns the exit code of the process, or an error when it never ran to exit.
func (err ProcessExecutionError) ExitStatus() (int, error) {
	var exitErr *exec.ExitError
	if errors.As(err.Err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return 0, err
}
