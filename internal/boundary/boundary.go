// Package boundary detects the repository boundary that limits workspace traversal.
//
// The boundary is the nearest ancestor directory containing a `.git` entry. A `.git` directory
// marks a regular repository and a `.git` file marks a linked worktree or a submodule. Both
// stop the upward search and neither is ever descended into.
package boundary

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gruntwork-io/treehook/internal/errors"
)

// MarkerName is the name of the repository boundary marker.
const MarkerName = ".git"

// Boundary is the outer search limit of a workspace.
type Boundary struct {
	// Root is the directory containing the marker. Empty when no boundary was found.
	Root string
}

// Found reports whether a boundary was detected.
func (b Boundary) Found() bool {
	return b.Root != ""
}

// Contains reports whether dir is the boundary root or lies below it. An unbounded
// Boundary contains every path.
func (b Boundary) Contains(dir string) bool {
	if !b.Found() {
		return true
	}

	rel, err := filepath.Rel(b.Root, dir)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !hasParentPrefix(rel))
}

func (b Boundary) String() string {
	if !b.Found() {
		return "<none>"
	}

	return b.Root
}

// IsMarkerName reports whether a directory entry name is the boundary marker.
func IsMarkerName(name string) bool {
	return name == MarkerName
}

// IsBoundary reports whether dir contains the boundary marker, either as a directory
// or as a file.
func IsBoundary(dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, MarkerName))
	return err == nil
}

// WalkUp calls stop for start and each of its ancestors, innermost first, and returns the
// first directory for which stop returns true. The walk always terminates at the filesystem
// root; ok is false when stop never matched.
func WalkUp(start string, stop func(dir string) bool) (dir string, ok bool) {
	dir = filepath.Clean(start)

	for {
		if stop(dir) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// Find returns the nearest boundary at or above start. A missing boundary is not an error;
// the returned Boundary is then unbounded.
func Find(start string) (Boundary, error) {
	absStart, err := filepath.Abs(start)
	if err != nil {
		return Boundary{}, errors.New(err)
	}

	if _, err := os.Stat(absStart); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Boundary{}, errors.New(StartDirNotFoundError{Dir: absStart})
		}

		return Boundary{}, errors.New(err)
	}

	root, ok := WalkUp(absStart, IsBoundary)
	if !ok {
		return Boundary{}, nil
	}

	return Boundary{Root: root}, nil
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
