package files

import (
	"context"
	"io/fs"
	"path"
	"sync"

	"github.com/gruntwork-io/treehook/internal/boundary"
	"github.com/gruntwork-io/treehook/internal/discovery"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/pkg/log"
)

// WalkSource lists the files found by walking the workspace tree with the same walker and skip
// rules as project discovery.
type WalkSource struct {
	NumWorkers     int
	FollowSymlinks bool
	NoHidden       bool
}

func (source *WalkSource) Name() string {
	return "walk"
}

// Files returns every non-directory entry below the workspace root. The workspace filters are
// applied per file by Collect, so it yields the same candidates as the git index would.
func (source *WalkSource) Files(ctx context.Context, l log.Logger, ws *workspace.Workspace) ([]string, error) {
	var (
		files []string
		mu    sync.Mutex
	)

	opts := discovery.WalkOptions{
		NumWorkers:     source.NumWorkers,
		FollowSymlinks: source.FollowSymlinks,
		NoHidden:       source.NoHidden,
	}

	_, err := discovery.Walk(ctx, l, ws.Root, opts, func(_, rel string, entries []fs.DirEntry) {
		var found []string

		for _, entry := range entries {
			if entry.IsDir() || boundary.IsMarkerName(entry.Name()) {
				continue
			}

			found = append(found, path.Join(rel, entry.Name()))
		}

		mu.Lock()
		defer mu.Unlock()

		files = append(files, found...)
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
