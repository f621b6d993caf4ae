// Package queue provides the project run queue.
//
// Projects run innermost first: a project runs before every project enclosing it, so a
// nested project is done with its files before an outer project runs. The algorithm for
// populating the queue is as follows:
//
//  1. Sort the discovered projects by depth, deepest first.
//  2. Break ties between projects of equal depth by relative path, ascending.
//  3. Assign each project its position in the queue as Index and link every project to its
//     nearest enclosing project.
//
// The workspace root has depth 0 and is therefore always the last entry. Projects of equal
// depth never enclose each other, so they form a level that may run concurrently.
package queue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gruntwork-io/treehook/internal/component"
)

type Queue struct {
	entries component.Projects
}

// Entries returns the queue entries in run order.
func (q *Queue) Entries() component.Projects {
	return q.entries
}

// Len returns the number of entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Levels splits the entries into runs of equal depth, deepest first.
func (q *Queue) Levels() []component.Projects {
	return Levels(q.entries)
}

// Levels splits projects, already in queue order, into runs of equal depth. The runs share
// the backing array of projects.
func Levels(projects component.Projects) []component.Projects {
	var levels []component.Projects

	for i := 0; i < len(projects); {
		j := i + 1
		for j < len(projects) && projects[j].Depth == projects[i].Depth {
			j++
		}

		levels = append(levels, projects[i:j:j])
		i = j
	}

	return levels
}

// NewQueue creates a new queue from the discovered projects. The input is not modified; the
// projects themselves get their Index and Parent set.
func NewQueue(projects component.Projects) *Queue {
	entries := slices.Clone(projects)

	slices.SortStableFunc(entries, Compare)

	entries.LinkParents()

	return &Queue{
		entries: entries,
	}
}

// Compare orders a before b when a must run first: deeper projects first, then by relative
// path.
func Compare(a, b *component.Project) int {
	if c := cmp.Compare(b.Depth, a.Depth); c != 0 {
		return c
	}

	return strings.Compare(a.RelativePath, b.RelativePath)
}
