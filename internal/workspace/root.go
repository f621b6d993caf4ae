package workspace

import (
	"os"
	"path/filepath"

	"github.com/gruntwork-io/treehook/internal/boundary"
	"github.com/gruntwork-io/treehook/internal/config"
	"github.com/gruntwork-io/treehook/internal/errors"
)

// HasConfig reports whether dir holds a configuration file.
func HasConfig(dir string) bool {
	return hasConfigFile(dir, config.DefaultFilename)
}

// FindRoot returns the workspace root for dir: the nearest directory at or above dir holding a
// configuration file. The search never goes past the boundary b.
func FindRoot(dir string, b boundary.Boundary) (string, error) {
	return findRoot(dir, b, config.DefaultFilename)
}

func findRoot(dir string, b boundary.Boundary, filename string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.New(err)
	}

	found, ok := boundary.WalkUp(dir, func(current string) bool {
		return hasConfigFile(current, filename) || (b.Found() && current == b.Root)
	})
	if !ok || !hasConfigFile(found, filename) {
		return "", errors.New(NoWorkspaceError{Dir: dir, Boundary: b, Marker: filename})
	}

	return found, nil
}

func hasConfigFile(dir, filename string) bool {
	info, err := os.Stat(filepath.Join(dir, filename))
	return err == nil && info.Mode().IsRegular()
}
