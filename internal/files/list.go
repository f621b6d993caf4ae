package files

import (
	"context"
	"path/filepath"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/util"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/pkg/log"
)

// ListSource uses explicitly given paths and glob patterns, relative to Dir.
type ListSource struct {
	// Dir is the invocation directory. Defaults to the workspace root.
	Dir      string
	Patterns []string
}

func (source *ListSource) Name() string {
	return "list"
}

// Files resolves the patterns. Globs support `**`; directories are ignored. An entry outside
// the workspace root is a FileOutsideWorkspaceError.
func (source *ListSource) Files(_ context.Context, l log.Logger, ws *workspace.Workspace) ([]string, error) {
	dir := source.Dir
	if dir == "" {
		dir = ws.Root
	}

	var paths []string

	for _, pattern := range source.Patterns {
		if util.IsGlob(pattern) {
			matches, err := util.GlobCanonicalPath(dir, pattern)
			if err != nil {
				return nil, err
			}

			if len(matches) == 0 {
				l.Debugf("Pattern %s matched no files", pattern)
			}

			paths = append(paths, matches...)

			continue
		}

		path, err := util.CanonicalPath(pattern, dir)
		if err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	files := make([]string, 0, len(paths))

	for _, path := range paths {
		rel, err := filepath.Rel(ws.Root, path)
		if err != nil {
			return nil, errors.New(err)
		}

		rel = filepath.ToSlash(rel)
		if util.IsOutside(rel) || filepath.IsAbs(rel) {
			return nil, errors.New(FileOutsideWorkspaceError{Path: path, Root: ws.Root})
		}

		if util.IsDir(path) {
			l.Debugf("Ignoring directory %s", path)
			continue
		}

		files = append(files, rel)
	}

	return files, nil
}
