package workspace

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/treehook/internal/boundary"
)

// NoWorkspaceError is returned when no directory between the working directory and the
// repository boundary holds a configuration file.
type NoWorkspaceError struct {
	Dir      string
	Marker   string
	Boundary boundary.Boundary
}

func (err NoWorkspaceError) Error() string {
	if !err.Boundary.Found() {
		return fmt.Sprintf("no %s found in %s or any of its parent directories", err.Marker, err.Dir)
	}

	return fmt.Sprintf("no %s found in %s or any of its parent directories up to the repository root %s", err.Marker, err.Dir, err.Boundary)
}

// ConfigNotFoundError is returned when the explicitly given configuration file does not exist.
type ConfigNotFoundError struct {
	Path string
}

func (err ConfigNotFoundError) Error() string {
	return "configuration file not found: " + err.Path
}

// ConfigsNotStagedError is returned when configuration files have changes that are not staged.
type ConfigsNotStagedError struct {
	Paths []string
}

func (err ConfigsNotStagedError) Error() string {
	if len(err.Paths) == 1 {
		return fmt.Sprintf("configuration file is not staged, run `git add %s` to stage it", err.Paths[0])
	}

	return "The following configuration files are not staged, `git add` them first:\n  " + strings.Join(err.Paths, "\n  ")
}

// NoBoundaryWarning is recorded in single-config mode when no repository boundary exists and
// the working directory is used as the workspace root.
type NoBoundaryWarning struct {
	Dir string
}

func (w NoBoundaryWarning) Error() string {
	return fmt.Sprintf("not inside a git repository, using %s as the workspace root", w.Dir)
}
