// Package plan turns a discovered workspace and its file assignment into an execution plan,
// and dispatches the plan to a runner.
//
// The plan holds one slot per project, in execution order. A slot moves through
//
//	Pending -> Dispatched -> Completed
//	                      -> Skipped
//	Pending -> Skipped
//
// and nothing else. Projects that own no files start out Skipped.
package plan

import (
	"context"
	"iter"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/distribute"
	"github.com/gruntwork-io/treehook/internal/files"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/pkg/log"
)

// Plan is the ordered list of slots for a workspace.
type Plan struct {
	Workspace *workspace.Workspace
	// Unowned are files no project contains. Only non-empty when the root has no project.
	Unowned component.FileSet
	entries []*Entry
}

// New builds the plan for ws from an assignment indexed like ws.Projects.
func New(ws *workspace.Workspace, assignment *component.Assignment) *Plan {
	entries := make([]*Entry, len(ws.Projects))

	for i, project := range ws.Projects {
		entries[i] = newEntry(project, assignment.Files(i), assignment.Dropped(i))
	}

	return &Plan{
		Workspace: ws,
		Unowned:   assignment.Unowned,
		entries:   entries,
	}
}

// Build collects the files of ws from source, distributes them and builds the plan.
func Build(ctx context.Context, l log.Logger, ws *workspace.Workspace, source files.Source) (*Plan, error) {
	fileSet, err := files.Collect(ctx, l, ws, source)
	if err != nil {
		return nil, err
	}

	assignment, err := distribute.Distribute(ctx, ws.Projects, fileSet)
	if err != nil {
		return nil, err
	}

	if !assignment.Unowned.Empty() {
		l.Warnf("%d files are not inside any project", assignment.Unowned.Len())
	}

	return New(ws, assignment), nil
}

// Entries returns the slots in execution order.
func (p *Plan) Entries() []*Entry {
	return p.entries
}

// Len returns the number of slots.
func (p *Plan) Len() int {
	return len(p.entries)
}

// All yields every project with its files, in execution order.
func (p *Plan) All() iter.Seq2[*component.Project, component.FileSet] {
	return func(yield func(*component.Project, component.FileSet) bool) {
		for _, entry := range p.entries {
			if !yield(entry.Project, entry.Files) {
				return
			}
		}
	}
}

// Select returns the slots for which keep returns true, in execution order.
func (p *Plan) Select(keep func(entry *Entry) bool) []*Entry {
	var selected []*Entry

	for _, entry := range p.entries {
		if keep(entry) {
			selected = append(selected, entry)
		}
	}

	return selected
}

// Runnable returns the slots that have files to run on.
func (p *Plan) Runnable() []*Entry {
	return p.Select(func(entry *Entry) bool {
		return entry.State() == Pending
	})
}

// Summary is the serializable form of a slot.
type Summary struct {
	Project string   `json:"project"`
	Path    string   `json:"path"`
	Config  string   `json:"config"`
	State   string   `json:"state"`
	Files   []string `json:"files"`
	Dropped []string `json:"dropped,omitempty"`
	Index   int      `json:"index"`
	Depth   int      `json:"depth"`
	Parent  int      `json:"parent"`
}

// Summaries returns the serializable form of every slot, in execution order.
func (p *Plan) Summaries() []Summary {
	summaries := make([]Summary, len(p.entries))

	for i, entry := range p.entries {
		files := entry.Files.Paths()
		if files == nil {
			files = []string{}
		}

		summaries[i] = Summary{
			Project: entry.Project.String(),
			Path:    entry.Project.Path,
			Config:  entry.Project.ConfigPath,
			State:   entry.State().String(),
			Files:   files,
			Dropped: entry.Dropped.Paths(),
			Index:   entry.Project.Index,
			Depth:   entry.Project.Depth,
			Parent:  entry.Project.Parent,
		}
	}

	return summaries
}
