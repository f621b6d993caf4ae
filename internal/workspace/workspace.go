// Package workspace locates the workspace and discovers its projects.
//
// In workspace mode the root is the nearest directory at or above the working directory that
// holds a configuration file, bounded by the repository boundary. Every directory below the
// root holding a configuration file becomes a project, and the projects are ordered for
// execution innermost first.
//
// In single-config mode an explicit configuration file is given. Discovery is skipped and the
// workspace has exactly one project rooted at the repository boundary, or at the working
// directory when there is no repository.
package workspace

import (
	"context"
	"path/filepath"

	"github.com/gruntwork-io/treehook/internal/boundary"
	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/config"
	"github.com/gruntwork-io/treehook/internal/discovery"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/filter"
	"github.com/gruntwork-io/treehook/internal/queue"
	"github.com/gruntwork-io/treehook/internal/telemetry"
	"github.com/gruntwork-io/treehook/internal/util"
	"github.com/gruntwork-io/treehook/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Mode tells how the workspace was formed.
type Mode int

const (
	// ModeWorkspace discovers every nested project below the root.
	ModeWorkspace Mode = iota
	// ModeSingleConfig uses one explicit configuration file for the whole tree.
	ModeSingleConfig
)

func (mode Mode) String() string {
	if mode == ModeSingleConfig {
		return "single-config"
	}

	return "workspace"
}

// Workspace is the outcome of discovery. It is not modified afterwards.
type Workspace struct {
	// Filters are the root project's `files`/`exclude` patterns, applied to every candidate file.
	Filters *config.Filters
	// Root is the absolute workspace root.
	Root string
	// Boundary is the repository boundary the workspace lies in. It may be unbounded.
	Boundary boundary.Boundary
	// Projects are in execution order.
	Projects component.Projects
	// Warnings are the recoverable problems met during discovery.
	Warnings []error
	Mode     Mode
}

// Options configures discovery.
type Options struct {
	Selectors *filter.Selectors
	// WorkingDir is the invocation directory. Defaults to the process working directory.
	WorkingDir string
	// ConfigPath selects single-config mode when set.
	ConfigPath string
	// ConfigFilename overrides the configuration marker file name.
	ConfigFilename string
	// Version is the running version, checked against `minimum_pre_commit_version`.
	Version        string
	NumWorkers     int
	FollowSymlinks bool
	NoHidden       bool
}

// Discover forms the workspace for opts.
func Discover(ctx context.Context, l log.Logger, opts Options) (*Workspace, error) {
	workDir, err := util.CanonicalPath(opts.WorkingDir, "")
	if err != nil {
		return nil, err
	}

	if opts.ConfigFilename == "" {
		opts.ConfigFilename = config.DefaultFilename
	}

	b, err := boundary.Find(workDir)
	if err != nil {
		return nil, err
	}

	l.Debugf("Repository boundary: %s", b)

	if opts.ConfigPath != "" {
		return discoverSingleConfig(ctx, l, opts, workDir, b)
	}

	return discoverWorkspace(ctx, l, opts, workDir, b)
}

func discoverWorkspace(ctx context.Context, l log.Logger, opts Options, workDir string, b boundary.Boundary) (*Workspace, error) {
	tlm := telemetry.TelemeterFromContext(ctx)

	var root string

	err := tlm.Collect(ctx, "find_workspace_root", map[string]any{"working_dir": workDir, "boundary": b.Root}, func(context.Context) error {
		var err error

		root, err = findRoot(workDir, b, opts.ConfigFilename)

		return err
	})
	if err != nil {
		return nil, err
	}

	l.Debugf("Workspace root: %s", root)

	rootConfig, err := config.Read(filepath.Join(root, opts.ConfigFilename))
	if err != nil {
		return nil, err
	}

	d := discovery.NewDiscovery(root).
		WithConfigFilename(opts.ConfigFilename).
		WithSelectors(opts.Selectors).
		WithExcludeDirs(rootConfig.Filters.ExcludesDir).
		WithNumWorkers(opts.NumWorkers)

	if opts.FollowSymlinks {
		d = d.WithFollowSymlinks()
	}

	if opts.NoHidden {
		d = d.WithNoHidden()
	}

	var result *discovery.Result

	err = tlm.Collect(ctx, "discover_projects", map[string]any{"root": root, "selectors": opts.Selectors.String()}, func(ctx context.Context) error {
		var err error

		result, err = d.Discover(ctx, l)

		return err
	})
	if err != nil {
		return nil, err
	}

	if err := loadConfigs(ctx, result.Projects, rootConfig, opts); err != nil {
		return nil, err
	}

	projects := queue.NewQueue(result.Projects).Entries()

	l.Debugf("Found %d projects in %s", len(projects), root)

	return &Workspace{
		Root:     root,
		Boundary: b,
		Mode:     ModeWorkspace,
		Filters:  rootConfig.Filters,
		Projects: projects,
		Warnings: result.Warnings,
	}, nil
}

func discoverSingleConfig(ctx context.Context, l log.Logger, opts Options, workDir string, b boundary.Boundary) (*Workspace, error) {
	configPath, err := util.CanonicalPath(opts.ConfigPath, workDir)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config

	err = telemetry.TelemeterFromContext(ctx).Collect(ctx, "load_config", map[string]any{"config": configPath}, func(context.Context) error {
		var err error

		if cfg, err = config.Read(configPath); err != nil {
			var notFound config.NotFoundError
			if errors.As(err, &notFound) {
				return errors.New(ConfigNotFoundError{Path: configPath})
			}

			return err
		}

		return cfg.CheckVersion(opts.Version)
	})
	if err != nil {
		return nil, err
	}

	var warnings []error

	root := b.Root
	if !b.Found() {
		root = workDir

		warning := NoBoundaryWarning{Dir: workDir}
		l.Warnf("%v", warning)

		warnings = append(warnings, warning)
	}

	project, err := component.NewProject(root, root, configPath)
	if err != nil {
		return nil, err
	}

	project.Config = cfg

	projects := queue.NewQueue(component.Projects{project}).Entries()

	l.Debugf("Using %s for the whole tree below %s", configPath, root)

	return &Workspace{
		Root:     root,
		Boundary: b,
		Mode:     ModeSingleConfig,
		Filters:  cfg.Filters,
		Projects: projects,
		Warnings: warnings,
	}, nil
}

// loadConfigs parses the configuration of every project concurrently and checks its version
// requirement. All failures are reported together, in project order.
func loadConfigs(ctx context.Context, projects component.Projects, rootConfig *config.Config, opts Options) error {
	failures := make([]error, len(projects))

	g, ctx := errgroup.WithContext(ctx)
	if opts.NumWorkers > 0 {
		g.SetLimit(opts.NumWorkers)
	}

	for i, project := range projects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			cfg := rootConfig

			if !project.IsRoot() {
				var err error
				if cfg, err = config.Read(project.ConfigPath); err != nil {
					failures[i] = err
					return nil
				}
			}

			if err := cfg.CheckVersion(opts.Version); err != nil {
				failures[i] = err
				return nil
			}

			project.Config = cfg

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.New(err)
	}

	return (&errors.MultiError{}).Append(failures...).ErrorOrNil()
}

// Project returns the project at the relative path rel, or nil.
func (ws *Workspace) Project(rel string) *component.Project {
	for _, project := range ws.Projects {
		if project.RelativePath == rel {
			return project
		}
	}

	return nil
}

// ConfigFiles returns the configuration files of the discovered projects, relative to the
// root. They define projects and are never handed to one as input. In single-config mode the
// set is empty: the explicit file is an ordinary file of the tree.
func (ws *Workspace) ConfigFiles() component.FileSet {
	if ws.Mode != ModeWorkspace {
		return component.FileSet{}
	}

	paths := make([]string, 0, len(ws.Projects))

	for _, configPath := range ws.Projects.ConfigPaths() {
		rel, err := filepath.Rel(ws.Root, configPath)
		if err != nil {
			continue
		}

		paths = append(paths, filepath.ToSlash(rel))
	}

	return component.NewFileSet(paths...)
}
