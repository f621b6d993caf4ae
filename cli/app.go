// Package cli implements the treehook command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/telemetry"
	"github.com/gruntwork-io/treehook/options"
	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/gruntwork-io/treehook/pkg/log/format"
	"github.com/urfave/cli/v2"
)

const AppName = "treehook"

// NewApp creates the treehook CLI App.
func NewApp(opts *options.Options) *cli.App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Runs code-quality hooks across every independently configured project of a monorepo."
	app.UsageText = AppName + " [global options] <command> [options]"
	app.Version = opts.Version
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = NewGlobalFlags(opts)
	app.Commands = NewCommands(opts)
	app.Before = beforeRunningCommand(opts)
	app.After = afterRunningCommand
	app.HideHelpCommand = true
	app.ExitErrHandler = func(*cli.Context, error) {}

	return app
}

// RunContext runs the app, cancelling ctx on SIGINT and SIGTERM.
func RunContext(ctx context.Context, app *cli.App, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RunContext(ctx, args)
}

func beforeRunningCommand(opts *options.Options) cli.BeforeFunc {
	return func(c *cli.Context) error {
		return initialSetup(c, opts)
	}
}

func initialSetup(c *cli.Context, opts *options.Options) error {
	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}

	formatter, err := format.ParseFormat(opts.LogFormat, opts.ErrWriter, opts.NoColor)
	if err != nil {
		return err
	}

	opts.Logger = log.New(log.WithOutput(opts.ErrWriter), log.WithLevel(level), log.WithFormatter(formatter))

	opts.IncludeProjects = c.StringSlice(ProjectFlagName)
	opts.SkipProjects = c.StringSlice(SkipProjectFlagName)

	tlm, err := telemetry.NewTelemeter(c.Context, AppName, opts.Version, opts.ErrWriter, opts.Telemetry)
	if err != nil {
		return err
	}

	ctx := log.ContextWithLogger(c.Context, opts.Logger)
	ctx = telemetry.ContextWithTelemeter(ctx, tlm)
	c.Context = options.ContextWithOptions(ctx, opts)

	return nil
}

// normalizeOptions runs once the command flags are parsed.
func normalizeOptions(opts *options.Options) cli.BeforeFunc {
	return func(c *cli.Context) error {
		opts.Files = append(opts.Files, c.StringSlice(FilesFlagName)...)

		return opts.Normalize()
	}
}

func afterRunningCommand(c *cli.Context) error {
	if err := telemetry.TelemeterFromContext(c.Context).Shutdown(context.WithoutCancel(c.Context)); err != nil {
		return errors.New(err)
	}

	return nil
}
