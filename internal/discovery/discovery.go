package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/config"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/filter"
	"github.com/gruntwork-io/treehook/pkg/log"
)

const (
	defaultDiscoveryWorkers = 4
	maxDiscoveryWorkers     = 8
)

// Discovery finds every project below a workspace root.
type Discovery struct {
	selectors      *filter.Selectors
	excludeDir     func(rel string) bool
	root           string
	configFilename string
	numWorkers     int
	followSymlinks bool
	noHidden       bool
}

// NewDiscovery creates a Discovery for root with a CPU-aware worker count
// (scales with runtime.NumCPU, min 4, max 8).
func NewDiscovery(root string) *Discovery {
	return &Discovery{
		root:           root,
		configFilename: config.DefaultFilename,
		numWorkers:     min(max(runtime.NumCPU(), defaultDiscoveryWorkers), maxDiscoveryWorkers),
	}
}

// Result is the outcome of a discovery run.
type Result struct {
	// Projects are sorted by relative path. Index and Parent are not set yet.
	Projects component.Projects
	// Warnings are the recoverable problems met during the walk.
	Warnings []error
}

// resultCollector gathers projects found by concurrent directory visits.
type resultCollector struct {
	projects component.Projects
	errs     []error
	mu       sync.Mutex
}

func (c *resultCollector) addProject(project *component.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.projects = append(c.projects, project)
}

func (c *resultCollector) addError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs = append(c.errs, err)
}

// Discover walks the tree below the root and returns every directory holding a
// configuration file as a project, sorted by relative path.
func (d *Discovery) Discover(ctx context.Context, l log.Logger) (*Result, error) {
	root, err := filepath.Abs(d.root)
	if err != nil {
		return nil, errors.New(err)
	}

	collector := &resultCollector{}

	opts := WalkOptions{
		NumWorkers:     d.numWorkers,
		FollowSymlinks: d.followSymlinks,
		NoHidden:       d.noHidden,
		SkipDir:        d.skipDir,
	}

	warnings, err := Walk(ctx, l, root, opts, func(dir, rel string, entries []fs.DirEntry) {
		if !d.hasConfig(dir, entries) {
			return
		}

		if !d.selectors.MatchProject(rel) {
			l.Debugf("Skipping unselected project %s", rel)
			return
		}

		project, err := component.NewProject(root, dir, filepath.Join(dir, d.configFilename))
		if err != nil {
			collector.addError(err)
			return
		}

		l.Tracef("Discovered project %s", project)

		collector.addProject(project)
	})
	if err != nil {
		return nil, err
	}

	if len(collector.errs) > 0 {
		return nil, errors.Join(collector.errs...)
	}

	return &Result{
		Projects: collector.projects.SortByPath(),
		Warnings: warnings,
	}, nil
}

func (d *Discovery) skipDir(rel string) bool {
	if d.excludeDir != nil && d.excludeDir(rel) {
		return true
	}

	return d.selectors.SkipDir(rel)
}

// hasConfig reports whether entries hold the configuration file as a regular file, or as a
// symlink to one when symlinks are followed.
func (d *Discovery) hasConfig(dir string, entries []fs.DirEntry) bool {
	for _, entry := range entries {
		if entry.Name() != d.configFilename {
			continue
		}

		if entry.Type().IsRegular() {
			return true
		}

		if d.followSymlinks && entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			return err == nil && info.Mode().IsRegular()
		}

		return false
	}

	return false
}
