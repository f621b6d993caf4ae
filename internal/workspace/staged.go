package workspace

import (
	"context"
	"path/filepath"

	"github.com/gruntwork-io/treehook/internal/boundary"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/git"
)

// CheckConfigsStaged returns ConfigsNotStagedError when a project configuration file inside
// repo is untracked or has unstaged changes. Configuration files outside repo are ignored.
func (ws *Workspace) CheckConfigsStaged(ctx context.Context, repo *git.Repository) error {
	var (
		paths    = make([]string, 0, len(ws.Projects))
		repoRoot = boundary.Boundary{Root: repo.Root}
	)

	for _, configPath := range ws.Projects.ConfigPaths() {
		if !repoRoot.Contains(configPath) {
			continue
		}

		rel, err := filepath.Rel(repo.Root, configPath)
		if err != nil {
			continue
		}

		paths = append(paths, filepath.ToSlash(rel))
	}

	notStaged, err := repo.NotStaged(ctx, paths...)
	if err != nil {
		return err
	}

	if len(notStaged) > 0 {
		return errors.New(ConfigsNotStagedError{Paths: notStaged})
	}

	return nil
}
