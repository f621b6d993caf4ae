package component

import (
	"iter"
	"path"
	"slices"
	"strings"
)

// FileSet is a sorted set of slash separated paths relative to the workspace root.
// The zero value is an empty set.
type FileSet struct {
	paths []string
}

// NewFileSet normalizes, sorts and de-duplicates paths.
func NewFileSet(paths ...string) FileSet {
	normalized := make([]string, 0, len(paths))

	for _, p := range paths {
		p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
		if p == "." || p == "" {
			continue
		}

		normalized = append(normalized, p)
	}

	slices.Sort(normalized)

	return FileSet{paths: slices.Compact(normalized)}
}

// Len returns the number of files.
func (set FileSet) Len() int {
	return len(set.paths)
}

// Empty reports whether the set has no files.
func (set FileSet) Empty() bool {
	return len(set.paths) == 0
}

// Paths returns a copy of the sorted paths.
func (set FileSet) Paths() []string {
	return slices.Clone(set.paths)
}

// All iterates over the sorted paths.
func (set FileSet) All() iter.Seq[string] {
	return slices.Values(set.paths)
}

// Contains reports whether p is in the set.
func (set FileSet) Contains(p string) bool {
	_, found := slices.BinarySearch(set.paths, p)
	return found
}

// Union returns the files present in either set.
func (set FileSet) Union(other FileSet) FileSet {
	merged := make([]string, 0, len(set.paths)+len(other.paths))

	i, j := 0, 0
	for i < len(set.paths) && j < len(other.paths) {
		switch strings.Compare(set.paths[i], other.paths[j]) {
		case -1:
			merged = append(merged, set.paths[i])
			i++
		case 1:
			merged = append(merged, other.paths[j])
			j++
		default:
			merged = append(merged, set.paths[i])
			i++
			j++
		}
	}

	merged = append(merged, set.paths[i:]...)
	merged = append(merged, other.paths[j:]...)

	return FileSet{paths: merged}
}

// Intersects reports whether both sets share at least one file.
func (set FileSet) Intersects(other FileSet) bool {
	i, j := 0, 0
	for i < len(set.paths) && j < len(other.paths) {
		switch strings.Compare(set.paths[i], other.paths[j]) {
		case -1:
			i++
		case 1:
			j++
		default:
			return true
		}
	}

	return false
}

// Filter returns the files for which keep returns true.
func (set FileSet) Filter(keep func(p string) bool) FileSet {
	var kept []string

	for _, p := range set.paths {
		if keep(p) {
			kept = append(kept, p)
		}
	}

	return FileSet{paths: kept}
}

// Partition splits the set into the files for which keep returns true and the rest.
func (set FileSet) Partition(keep func(p string) bool) (kept, rest FileSet) {
	for _, p := range set.paths {
		if keep(p) {
			kept.paths = append(kept.paths, p)
		} else {
			rest.paths = append(rest.paths, p)
		}
	}

	return kept, rest
}

// RelativeTo returns the paths relative to the directory dir, itself relative to the
// workspace root. Paths outside dir are omitted.
func (set FileSet) RelativeTo(dir string) []string {
	if dir == RootRelativePath || dir == "" {
		return set.Paths()
	}

	prefix := dir + "/"
	rel := make([]string, 0, len(set.paths))

	for _, p := range set.paths {
		if trimmed, ok := strings.CutPrefix(p, prefix); ok {
			rel = append(rel, trimmed)
		}
	}

	return rel
}

// Equal reports whether both sets hold the same files.
func (set FileSet) Equal(other FileSet) bool {
	return slices.Equal(set.paths, other.paths)
}

// fromSorted wraps paths that are already sorted and unique.
func fromSorted(paths []string) FileSet {
	return FileSet{paths: paths}
}
