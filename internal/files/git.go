package files

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/treehook/internal/boundary"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/git"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/pkg/log"
)

// GitSource lists the files in the git index of the repository containing the workspace.
type GitSource struct {
	// Repo is opened at the workspace boundary when nil.
	Repo *git.Repository
}

func (source *GitSource) Name() string {
	return "git"
}

// Files returns the tracked files below the workspace root. Submodules are skipped.
func (source *GitSource) Files(ctx context.Context, l log.Logger, ws *workspace.Workspace) ([]string, error) {
	repo := source.Repo

	if repo == nil {
		if !ws.Boundary.Found() {
			return nil, errors.Errorf("workspace %s is not inside a git repository", ws.Root)
		}

		var err error
		if repo, err = git.Open(ws.Boundary.Root); err != nil {
			return nil, err
		}

		defer repo.Close()
	}

	tracked, err := repo.TrackedFiles()
	if err != nil {
		return nil, err
	}

	if !(boundary.Boundary{Root: repo.Root}).Contains(ws.Root) {
		return nil, errors.Errorf("workspace %s is outside of the repository %s", ws.Root, repo.Root)
	}

	prefix, err := filepath.Rel(repo.Root, ws.Root)
	if err != nil {
		return nil, errors.New(err)
	}

	prefix = filepath.ToSlash(prefix)

	if prefix == "." {
		return tracked, nil
	}

	files := make([]string, 0, len(tracked))

	for _, file := range tracked {
		if rel, ok := strings.CutPrefix(file, prefix+"/"); ok {
			files = append(files, rel)
		}
	}

	l.Tracef("%d of %d tracked files are below %s", len(files), len(tracked), prefix)

	return files, nil
}
