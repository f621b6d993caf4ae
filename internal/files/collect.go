// Package files collects the candidate files of a run and filters them with the workspace
// `files`/`exclude` patterns.
//
// Candidates come from a Source: the files tracked by git, a walk of the workspace tree, or an
// explicit list given on the command line. Every source yields slash separated paths relative
// to the workspace root.
package files

import (
	"context"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/telemetry"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/pkg/log"
)

// Source enumerates candidate files.
type Source interface {
	// Name identifies the source in logs and traces.
	Name() string
	// Files returns slash separated paths relative to the workspace root.
	Files(ctx context.Context, l log.Logger, ws *workspace.Workspace) ([]string, error)
}

// DefaultSource returns the git index for workspaces inside a repository and a tree walk
// otherwise.
func DefaultSource(ws *workspace.Workspace) Source {
	if ws.Boundary.Found() {
		return &GitSource{}
	}

	return &WalkSource{}
}

// Collect enumerates the candidates of source once and keeps those matched by the workspace
// filters. Project configuration files are left out, so a project holding nothing but its
// configuration owns no files.
func Collect(ctx context.Context, l log.Logger, ws *workspace.Workspace, source Source) (component.FileSet, error) {
	var fileSet component.FileSet

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, "collect_files", map[string]any{"source": source.Name(), "root": ws.Root}, func(ctx context.Context) error {
		paths, err := source.Files(ctx, l, ws)
		if err != nil {
			return err
		}

		all := component.NewFileSet(paths...)

		fileSet = all
		if ws.Filters != nil && !ws.Filters.MatchAll() {
			fileSet = all.Filter(ws.Filters.Match)
		}

		if configFiles := ws.ConfigFiles(); !configFiles.Empty() {
			fileSet = fileSet.Filter(func(p string) bool {
				return !configFiles.Contains(p)
			})
		}

		l.Debugf("Collected %d files from %s, %d after filtering", all.Len(), source.Name(), fileSet.Len())

		return nil
	})

	return fileSet, err
}
