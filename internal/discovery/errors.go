package discovery

import "fmt"

// WalkWarning reports a directory that could not be read. Its subtree is skipped and the
// walk continues with its siblings.
type WalkWarning struct {
	Err error
	Dir string
}

func (w WalkWarning) Error() string {
	return fmt.Sprintf("skipping unreadable directory %s: %v", w.Dir, w.Err)
}

func (w WalkWarning) Unwrap() error {
	return w.Err
}

// SymlinkCycleWarning reports a symlink pointing at one of its own ancestors.
type SymlinkCycleWarning struct {
	Link   string
	Target string
}

func (w SymlinkCycleWarning) Error() string {
	return fmt.Sprintf("skipping symlink %s: it points to its ancestor %s", w.Link, w.Target)
}
