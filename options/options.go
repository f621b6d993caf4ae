// Package options provides the set of options that configure one treehook invocation.
package options

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/gruntwork-io/treehook/internal/config"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/telemetry"
	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/gruntwork-io/treehook/pkg/log/format"
	"github.com/mitchellh/go-homedir"
)

const ContextKey ctxKey = iota

const (
	// SourceAuto reads the git index inside a repository and walks the tree otherwise.
	SourceAuto = "auto"
	// SourceGit reads the git index.
	SourceGit = "git"
	// SourceWalk walks the workspace tree.
	SourceWalk = "walk"

	OutputFormatText = "text"
	OutputFormatJSON = "json"

	ReportFormatCSV  = "csv"
	ReportFormatJSON = "json"

	defaultLogLevel = log.InfoLevel
)

type ctxKey byte

// Sources lists the accepted file source names.
func Sources() []string {
	return []string{SourceAuto, SourceGit, SourceWalk}
}

// Options represents the options that configure the behavior of treehook.
type Options struct {
	// Writer receives command output.
	Writer io.Writer
	// ErrWriter receives logs.
	ErrWriter io.Writer

	Logger log.Logger

	Telemetry *telemetry.Options

	// WorkingDir is the directory treehook was invoked from.
	WorkingDir string
	// ConfigPath selects single-config mode when set.
	ConfigPath string
	// ConfigFilename is the configuration marker file name.
	ConfigFilename string

	LogLevel  string
	LogFormat string

	// FileSource is one of Sources. Ignored when Files is set.
	FileSource string
	// Files are explicit paths or glob patterns, relative to WorkingDir.
	Files []string

	// IncludeProjects and SkipProjects are project selector globs.
	IncludeProjects []string
	SkipProjects    []string

	// Command is the command line run by `exec`.
	Command string
	// OutputFormat is the format of `plan` and `projects`.
	OutputFormat string

	// ReportFile is where `exec` writes its run report, if anywhere.
	ReportFile string
	// ReportFormat is csv or json; derived from the ReportFile extension when empty.
	ReportFormat string

	// Version is the running version of treehook.
	Version string

	// Jobs is the number of projects run concurrently.
	Jobs int
	// DiscoveryWorkers bounds the directory visits run concurrently during discovery.
	DiscoveryWorkers int

	NoDepthBarrier  bool
	FailFast        bool
	FollowSymlinks  bool
	NoHidden        bool
	NoColor         bool
	SkipStagedCheck bool
	// NoFiles runs the command without the project files as arguments.
	NoFiles bool

	SummaryDisable    bool
	SummaryPerProject bool
}

// NewOptions returns options with defaults writing to the process stdout and stderr.
func NewOptions() *Options {
	return NewOptionsWithWriters(os.Stdout, os.Stderr)
}

// NewOptionsWithWriters returns options with defaults writing to stdout and stderr.
func NewOptionsWithWriters(stdout, stderr io.Writer) *Options {
	return &Options{
		Writer:           stdout,
		ErrWriter:        stderr,
		Logger:           log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel), log.WithFormatter(format.NewPrettyFormatter())),
		Telemetry:        &telemetry.Options{},
		ConfigFilename:   config.DefaultFilename,
		LogLevel:         defaultLogLevel.String(),
		LogFormat:        format.PrettyFormatName,
		FileSource:       SourceAuto,
		OutputFormat:     OutputFormatText,
		Version:          "dev",
		Jobs:             1,
		DiscoveryWorkers: DefaultDiscoveryWorkers(),
	}
}

// DefaultDiscoveryWorkers is min(max(NumCPU, 4), 8).
func DefaultDiscoveryWorkers() int {
	return min(max(runtime.NumCPU(), 4), 8) //nolint:mnd
}

// Normalize expands `~` in user supplied paths, resolves the working directory and checks
// the enumerated values.
func (opts *Options) Normalize() error {
	var err error

	if opts.WorkingDir == "" {
		if opts.WorkingDir, err = os.Getwd(); err != nil {
			return errors.New(err)
		}
	}

	if opts.WorkingDir, err = homedir.Expand(opts.WorkingDir); err != nil {
		return errors.New(err)
	}

	if opts.ConfigPath, err = homedir.Expand(opts.ConfigPath); err != nil {
		return errors.New(err)
	}

	if opts.ReportFile, err = homedir.Expand(opts.ReportFile); err != nil {
		return errors.New(err)
	}

	for i, file := range opts.Files {
		if opts.Files[i], err = homedir.Expand(file); err != nil {
			return errors.New(err)
		}
	}

	switch opts.FileSource {
	case SourceAuto, SourceGit, SourceWalk:
	default:
		return errors.New(InvalidValueError{Name: "source", Value: opts.FileSource, Allowed: Sources()})
	}

	switch opts.OutputFormat {
	case OutputFormatText, OutputFormatJSON:
	default:
		return errors.New(InvalidValueError{Name: "format", Value: opts.OutputFormat, Allowed: []string{OutputFormatText, OutputFormatJSON}})
	}

	switch opts.ReportFormat {
	case "", ReportFormatCSV, ReportFormatJSON:
	default:
		return errors.New(InvalidValueError{Name: "report-format", Value: opts.ReportFormat, Allowed: []string{ReportFormatCSV, ReportFormatJSON}})
	}

	if opts.Jobs < 1 {
		return errors.New(InvalidValueError{Name: "jobs", Value: opts.Jobs})
	}

	return nil
}

// Clone returns a copy of the options. Slices are copied; writers and the logger are shared.
func (opts *Options) Clone() *Options {
	clone := *opts
	clone.Files = append([]string(nil), opts.Files...)
	clone.IncludeProjects = append([]string(nil), opts.IncludeProjects...)
	clone.SkipProjects = append([]string(nil), opts.SkipProjects...)

	if opts.Telemetry != nil {
		telemetryOpts := *opts.Telemetry
		clone.Telemetry = &telemetryOpts
	}

	return &clone
}

// ContextWithOptions stores opts in ctx.
func ContextWithOptions(ctx context.Context, opts *Options) context.Context {
	return context.WithValue(ctx, ContextKey, opts)
}

// OptionsFromContext tries to retrieve options from context, otherwise, returns its own instance.
func (opts *Options) OptionsFromContext(ctx context.Context) *Options {
	if val := ctx.Value(ContextKey); val != nil {
		if opts, ok := val.(*Options); ok {
			return opts
		}
	}

	return opts
}
