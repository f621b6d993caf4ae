package discovery

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gruntwork-io/treehook/internal/boundary"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/util"
	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"
)

// WalkOptions controls a concurrent directory walk.
type WalkOptions struct {
	// SkipDir reports whether the directory, given relative to the walk root, must not be
	// descended into. It is never called for the root itself.
	SkipDir func(rel string) bool
	// NumWorkers bounds the number of directories read concurrently.
	NumWorkers int
	// FollowSymlinks descends into symlinked directories whose target lies outside the root.
	FollowSymlinks bool
	// NoHidden skips directories whose name starts with a dot.
	NoHidden bool
}

// VisitFunc is called once for every walked directory with its entries. rel is the slash
// separated path relative to the walk root, `.` for the root. It may be called concurrently.
type VisitFunc func(dir, rel string, entries []fs.DirEntry)

type walker struct {
	ctx      context.Context
	l        log.Logger
	group    *errgroup.Group
	visited  *xsync.MapOf[string, struct{}]
	visit    VisitFunc
	opts     WalkOptions
	rootReal string

	warnings []error
	mu       sync.Mutex
}

// Walk visits root and its subdirectories concurrently. Boundary markers are never descended
// into. Unreadable subdirectories and symlink cycles are skipped and reported as warnings;
// only a failure to read root itself is an error.
func Walk(ctx context.Context, l log.Logger, root string, opts WalkOptions, visit VisitFunc) ([]error, error) {
	rootReal, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, errors.New(err)
	}

	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = defaultDiscoveryWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	w := &walker{
		ctx:      ctx,
		l:        l,
		group:    g,
		visited:  xsync.NewMapOf[string, struct{}](),
		visit:    visit,
		opts:     opts,
		rootReal: rootReal,
	}

	w.visited.Store(rootReal, struct{}{})

	g.Go(func() error {
		return w.walkDir(root, rootReal, ".")
	})

	if err := g.Wait(); err != nil {
		return w.sortedWarnings(), err
	}

	return w.sortedWarnings(), nil
}

func (w *walker) walkDir(dir, real, rel string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if rel == "." {
			return errors.New(err)
		}

		w.addWarning(WalkWarning{Dir: dir, Err: err})

		return nil
	}

	w.visit(dir, rel, entries)

	for _, entry := range entries {
		name := entry.Name()

		if boundary.IsMarkerName(name) {
			continue
		}

		childDir := filepath.Join(dir, name)
		childReal := filepath.Join(real, name)

		isDir := entry.IsDir()

		if entry.Type()&fs.ModeSymlink != 0 {
			target, ok := w.followLink(childDir, real)
			if !ok {
				continue
			}

			childReal = target
			isDir = true
		}

		if !isDir {
			continue
		}

		if w.opts.NoHidden && strings.HasPrefix(name, ".") {
			continue
		}

		childRel := path.Join(rel, name)

		if w.opts.SkipDir != nil && w.opts.SkipDir(childRel) {
			w.l.Debugf("Skipping directory %s", childRel)
			continue
		}

		if !w.group.TryGo(func() error {
			return w.walkDir(childDir, childReal, childRel)
		}) {
			if err := w.walkDir(childDir, childReal, childRel); err != nil {
				return err
			}
		}
	}

	return nil
}

// followLink decides whether the symlink at link, found in the directory whose real path is
// parentReal, should be descended into and returns its resolved target.
func (w *walker) followLink(link, parentReal string) (string, bool) {
	if !w.opts.FollowSymlinks {
		return "", false
	}

	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		w.l.Debugf("Skipping broken symlink %s: %v", link, err)
		return "", false
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", false
	}

	cycle := util.HasPathPrefix(parentReal, target)

	if util.HasPathPrefix(target, w.rootReal) {
		if cycle {
			w.addWarning(SymlinkCycleWarning{Link: link, Target: target})
		} else {
			w.l.Debugf("Skipping symlink %s to %s, the target is walked directly", link, target)
		}

		return "", false
	}

	if _, loaded := w.visited.LoadOrStore(target, struct{}{}); loaded {
		if cycle {
			w.addWarning(SymlinkCycleWarning{Link: link, Target: target})
		} else {
			w.l.Debugf("Skipping symlink %s to already visited %s", link, target)
		}

		return "", false
	}

	return target, true
}

func (w *walker) addWarning(warning error) {
	w.l.Warnf("%v", warning)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.warnings = append(w.warnings, warning)
}

func (w *walker) sortedWarnings() []error {
	w.mu.Lock()
	defer w.mu.Unlock()

	warnings := slices.Clone(w.warnings)
	slices.SortFunc(warnings, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})

	return warnings
}
