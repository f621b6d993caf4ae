// Package distribute partitions the collected files among the projects of a workspace.
//
// Every file belongs to the deepest project whose directory contains it, and the workspace
// root project owns whatever no nested project claims. Ownership is found by looking up the
// file's ancestor directories, innermost first, in a map from relative path to project, so
// the cost per file is bounded by its depth and does not grow with the number of projects.
//
// After partitioning, each nested project's own `files`/`exclude` patterns are applied to its
// share, matched against paths relative to the project directory. Files rejected there are
// dropped and never handed to an enclosing project.
package distribute

import (
	"context"
	"runtime"
	"strings"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// minChunkSize is the smallest number of files handed to one worker.
const minChunkSize = 512

// Distribute assigns every file to the project owning it. projects must be in execution
// order; the assignment is indexed the same way.
func Distribute(ctx context.Context, projects component.Projects, files component.FileSet) (*component.Assignment, error) {
	var assignment *component.Assignment

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, "distribute_files", map[string]any{"projects": len(projects), "files": files.Len()}, func(ctx context.Context) error {
		owners, err := findOwners(ctx, projects, files.Paths())
		if err != nil {
			return err
		}

		assignment = assign(projects, files.Paths(), owners)

		narrow(projects, assignment)

		return nil
	})

	return assignment, err
}

// findOwners returns the owning project index of every path, computed in parallel chunks.
func findOwners(ctx context.Context, projects component.Projects, paths []string) ([]int, error) {
	index := projects.IndexByRelativePath()
	owners := make([]int, len(paths))

	chunkSize := max(minChunkSize, (len(paths)+runtime.NumCPU()-1)/max(runtime.NumCPU(), 1))

	g, ctx := errgroup.WithContext(ctx)

	for start := 0; start < len(paths); start += chunkSize {
		end := min(start+chunkSize, len(paths))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			for i := start; i < end; i++ {
				owners[i] = component.Owner(index, paths[i])
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.New(err)
	}

	return owners, nil
}

// assign groups the sorted paths by owner. Each group stays sorted.
func assign(projects component.Projects, paths []string, owners []int) *component.Assignment {
	grouped := make([][]string, len(projects))

	var unowned []string

	for i, path := range paths {
		if owners[i] == component.NoParent {
			unowned = append(unowned, path)
			continue
		}

		grouped[owners[i]] = append(grouped[owners[i]], path)
	}

	assignment := component.NewAssignment(len(projects))

	for i, group := range grouped {
		assignment.SetFiles(i, group)
	}

	assignment.Unowned = component.NewFileSet(unowned...)

	return assignment
}

// narrow applies the filters of every nested project to its own files.
func narrow(projects component.Projects, assignment *component.Assignment) {
	for i, project := range projects {
		if project.IsRoot() || project.Config == nil || project.Config.Filters.MatchAll() {
			continue
		}

		prefix := project.RelativePath + "/"
		filters := project.Config.Filters

		assignment.Narrow(i, func(p string) bool {
			return filters.Match(strings.TrimPrefix(p, prefix))
		})
	}
}
