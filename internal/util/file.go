// Package util contains path and collection helpers shared across treehook packages.
package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/mattn/go-zglob"
	homedir "github.com/mitchellh/go-homedir"
)

// CanonicalPath returns the canonical version of the given path, relative to the given base path.
// A canonical path is an absolute path with all relative components (e.g. "../") resolved, which
// makes it safe to compare paths as strings. Symlinks are not resolved.
func CanonicalPath(path, basePath string) (string, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return "", errors.New(err)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(basePath, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.New(err)
	}

	return filepath.Clean(absPath), nil
}

// GlobCanonicalPath expands the given glob paths relative to basePath, supporting `**`,
// and returns the canonical paths of the matches.
func GlobCanonicalPath(basePath string, globPaths ...string) ([]string, error) {
	if len(globPaths) == 0 {
		return []string{}, nil
	}

	basePath, err := CanonicalPath("", basePath)
	if err != nil {
		return nil, err
	}

	var paths []string

	for _, globPath := range globPaths {
		globPath, err = CanonicalPath(globPath, basePath)
		if err != nil {
			return nil, err
		}

		// filepath.Glob does not treat ** as zero or more directories.
		matches, err := zglob.Glob(globPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return nil, errors.New(err)
		}

		paths = append(paths, matches...)
	}

	for i := range paths {
		if paths[i], err = CanonicalPath(paths[i], basePath); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// IsGlob reports whether path contains glob meta characters.
func IsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// Return true if the path points to a directory
func IsDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}

// SplitPath splits the given path into a list.
// E.g. "foo/bar/boo.txt" -> ["foo", "bar", "boo.txt"]
func SplitPath(path string) []string {
	return strings.Split(CleanPath(path), "/")
}

// CleanPath cleans path and converts it to use / as the separator.
func CleanPath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// HasPathPrefix returns true if path starts with the given path prefix
// E.g. path="/foo/bar/biz", prefix="/foo/bar" -> true
// E.g. path="/foo/bar/biz", prefix="/foo/ba" -> false (because ba is not a directory path)
func HasPathPrefix(path, prefix string) bool {
	return ListHasPrefix(SplitPath(path), SplitPath(prefix))
}

// IsOutside reports whether the slash relative path escapes its base directory.
func IsOutside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}
