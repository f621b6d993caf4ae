package files

import "fmt"

// FileOutsideWorkspaceError is returned when an explicitly listed file lies outside the
// workspace root.
type FileOutsideWorkspaceError struct {
	Path string
	Root string
}

func (err FileOutsideWorkspaceError) Error() string {
	return fmt.Sprintf("file %s is outside of the workspace root %s", err.Path, err.Root)
}
