package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/files"
	"github.com/gruntwork-io/treehook/internal/filter"
	"github.com/gruntwork-io/treehook/internal/git"
	"github.com/gruntwork-io/treehook/internal/plan"
	"github.com/gruntwork-io/treehook/internal/report"
	"github.com/gruntwork-io/treehook/internal/runner"
	"github.com/gruntwork-io/treehook/internal/util"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/options"
	"github.com/gruntwork-io/treehook/pkg/log/format"
	"github.com/urfave/cli/v2"
)

const (
	RootCommandName     = "root"
	ProjectsCommandName = "projects"
	PlanCommandName     = "plan"
	ExecCommandName     = "exec"
)

// NewCommands returns the treehook commands.
func NewCommands(opts *options.Options) []*cli.Command {
	commands := []*cli.Command{
		{
			Name:  RootCommandName,
			Usage: "Print the workspace root.",
			Action: func(c *cli.Context) error {
				ws, err := discover(c.Context, opts)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(opts.Writer, ws.Root)

				return errors.New(err)
			},
		},
		{
			Name:  ProjectsCommandName,
			Usage: "List the projects in execution order.",
			Flags: []cli.Flag{newFormatFlag(opts)},
			Action: func(c *cli.Context) error {
				ws, err := discover(c.Context, opts)
				if err != nil {
					return err
				}

				return writeProjects(opts.Writer, ws, opts.OutputFormat)
			},
		},
		{
			Name:  PlanCommandName,
			Usage: "Print which files every project would run on.",
			Flags: append(newFileFlags(opts), newFormatFlag(opts)),
			Action: func(c *cli.Context) error {
				ws, err := discover(c.Context, opts)
				if err != nil {
					return err
				}

				p, err := buildPlan(c.Context, opts, ws)
				if err != nil {
					return err
				}

				return writePlan(opts.Writer, p, opts.OutputFormat)
			},
		},
		{
			Name:      ExecCommandName,
			Usage:     "Run a command in every project with the files it owns.",
			UsageText: AppName + " exec [options] -- <command> [args...]",
			Flags:     append(newFileFlags(opts), newExecFlags(opts)...),
			Action: func(c *cli.Context) error {
				return runExec(c, opts)
			},
		},
	}

	for _, cmd := range commands {
		cmd.Before = normalizeOptions(opts)
	}

	return commands
}

func discover(ctx context.Context, opts *options.Options) (*workspace.Workspace, error) {
	selectors, err := filter.NewSelectors(opts.IncludeProjects, opts.SkipProjects)
	if err != nil {
		return nil, err
	}

	ws, err := workspace.Discover(ctx, opts.Logger, workspace.Options{
		Selectors:      selectors,
		WorkingDir:     opts.WorkingDir,
		ConfigPath:     opts.ConfigPath,
		ConfigFilename: opts.ConfigFilename,
		Version:        opts.Version,
		NumWorkers:     opts.DiscoveryWorkers,
		FollowSymlinks: opts.FollowSymlinks,
		NoHidden:       opts.NoHidden,
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Debugf("Discovered %d projects below %s (%s mode)", len(ws.Projects), ws.Root, ws.Mode)

	return ws, nil
}

func buildPlan(ctx context.Context, opts *options.Options, ws *workspace.Workspace) (*plan.Plan, error) {
	return plan.Build(ctx, opts.Logger, ws, fileSource(opts, ws))
}

func fileSource(opts *options.Options, ws *workspace.Workspace) files.Source {
	walk := &files.WalkSource{
		NumWorkers:     opts.DiscoveryWorkers,
		FollowSymlinks: opts.FollowSymlinks,
		NoHidden:       opts.NoHidden,
	}

	switch {
	case len(opts.Files) > 0:
		return &files.ListSource{Dir: opts.WorkingDir, Patterns: opts.Files}
	case opts.FileSource == options.SourceGit:
		return &files.GitSource{}
	case opts.FileSource == options.SourceWalk:
		return walk
	}

	if _, ok := files.DefaultSource(ws).(*files.GitSource); ok {
		return &files.GitSource{}
	}

	return walk
}

func runExec(c *cli.Context, opts *options.Options) error {
	cmd, err := execCommand(c, opts)
	if err != nil {
		return err
	}

	ws, err := discover(c.Context, opts)
	if err != nil {
		return err
	}

	cmd.Root = ws.Root
	cmd.NoFiles = opts.NoFiles

	if !opts.SkipStagedCheck && ws.Boundary.Found() {
		if err := checkConfigsStaged(c.Context, ws); err != nil {
			return err
		}
	}

	p, err := buildPlan(c.Context, opts, ws)
	if err != nil {
		return err
	}

	r := report.NewReport()

	dispatchOpts := plan.DispatchOptions{
		Jobs:         opts.Jobs,
		DepthBarrier: !opts.NoDepthBarrier,
		FailFast:     opts.FailFast,
		Reporter:     newReporter(opts, r),
	}

	dispatchErr := plan.Dispatch(c.Context, opts.Logger, p, cmd, dispatchOpts)

	if err := writeReport(opts, r); err != nil {
		return errors.Join(dispatchErr, err)
	}

	if dispatchErr != nil {
		return errors.New(errors.ErrorWithExitCode{Err: dispatchErr, ExitCode: 1})
	}

	return nil
}

func writeReport(opts *options.Options, r *report.Report) error {
	if opts.ReportFile != "" {
		path := opts.ReportFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.WorkingDir, path)
		}

		if err := r.WriteToFile(path, opts.ReportFormat); err != nil {
			return err
		}

		opts.Logger.Debugf("Wrote run report to %s", path)
	}

	if opts.SummaryDisable {
		return nil
	}

	colorizer := report.NewColorizer(!opts.NoColor && format.IsTerminal(opts.ErrWriter))

	return errors.New(r.Summarize().Write(opts.ErrWriter, colorizer, opts.SummaryPerProject))
}

// execCommand takes the command from the arguments after `--`, or else from --command.
func execCommand(c *cli.Context, opts *options.Options) (*runner.Command, error) {
	if args := c.Args().Slice(); len(args) > 0 {
		return &runner.Command{Name: args[0], Args: args[1:]}, nil
	}

	if opts.Command == "" {
		return nil, errors.New(MissingCommandError{})
	}

	return runner.NewCommand(opts.Command)
}

func checkConfigsStaged(ctx context.Context, ws *workspace.Workspace) error {
	repo, err := git.Open(ws.Boundary.Root)
	if err != nil {
		return err
	}

	defer repo.Close()

	return ws.CheckConfigsStaged(ctx, repo)
}

func newReporter(opts *options.Options, r *report.Report) plan.Reporter {
	return plan.ReporterFunc(func(result *plan.Result) {
		r.Report(result)

		if result.State == plan.Skipped && result.Err == nil {
			opts.Logger.Debugf("Skipping %s: no files to run on", result.Project)
			return
		}

		writeResult(opts.Writer, result)

		if result.Err != nil {
			opts.Logger.Errorf("%s failed after %s: %v", result.Project, result.Duration, result.Err)
			return
		}

		opts.Logger.Debugf("%s finished in %s", result.Project, result.Duration)
	})
}

func writeResult(w io.Writer, result *plan.Result) {
	section := util.NewSectionWriter(w, fmt.Sprintf("Running hooks for %s:\n", result.Project), "  ")

	_, _ = section.Write(result.Output)
	_ = section.Close()
}
