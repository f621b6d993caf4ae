package component

import "slices"

// Assignment maps each project, by index, to the files it owns.
//
// Owned subsets are pairwise disjoint. Their union, plus Dropped and Unowned, equals the
// filtered workspace file set.
type Assignment struct {
	files   []FileSet
	dropped []FileSet
	// Unowned holds files no project contains. Empty whenever the root is a project.
	Unowned FileSet
}

// NewAssignment returns an empty assignment for n projects.
func NewAssignment(n int) *Assignment {
	return &Assignment{
		files:   make([]FileSet, n),
		dropped: make([]FileSet, n),
	}
}

// Len returns the number of projects.
func (assignment *Assignment) Len() int {
	return len(assignment.files)
}

// Files returns the files owned by the project at index i.
func (assignment *Assignment) Files(i int) FileSet {
	return assignment.files[i]
}

// Dropped returns the files the project at index i owned but its own filters rejected.
func (assignment *Assignment) Dropped(i int) FileSet {
	return assignment.dropped[i]
}

// SetFiles sets the owned files of the project at index i from sorted, unique paths.
func (assignment *Assignment) SetFiles(i int, sortedPaths []string) {
	assignment.files[i] = fromSorted(sortedPaths)
}

// Narrow splits the owned files of project i, keeping those for which keep returns true.
// Rejected files are recorded as dropped.
func (assignment *Assignment) Narrow(i int, keep func(p string) bool) {
	kept, dropped := assignment.files[i].Partition(keep)

	assignment.files[i] = kept
	assignment.dropped[i] = assignment.dropped[i].Union(dropped)
}

// Owned returns the union of all owned files.
func (assignment *Assignment) Owned() FileSet {
	var all []string

	for _, set := range assignment.files {
		all = append(all, set.paths...)
	}

	slices.Sort(all)

	return fromSorted(all)
}
