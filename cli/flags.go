package cli

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/treehook/internal/telemetry"
	"github.com/gruntwork-io/treehook/options"
	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/gruntwork-io/treehook/pkg/log/format"
	"github.com/urfave/cli/v2"
)

// EnvPrefix prefixes the environment variable of every flag.
const EnvPrefix = "TH"

const (
	LogLevelFlagName          = "log-level"
	LogFormatFlagName         = "log-format"
	NoColorFlagName           = "no-color"
	WorkingDirFlagName        = "working-dir"
	ConfigFlagName            = "config"
	ConfigFilenameFlagName    = "config-filename"
	ProjectFlagName           = "project"
	SkipProjectFlagName       = "skip-project"
	FollowSymlinksFlagName    = "follow-symlinks"
	NoHiddenFlagName          = "no-hidden"
	DiscoveryWorkersFlagName  = "discovery-workers"
	SourceFlagName            = "source"
	FilesFlagName             = "files"
	FormatFlagName            = "format"
	JobsFlagName              = "jobs"
	NoDepthBarrierFlagName    = "no-depth-barrier"
	FailFastFlagName          = "fail-fast"
	CommandFlagName           = "command"
	NoFilesFlagName           = "no-files"
	SkipStagedCheckFlagName   = "skip-staged-check"
	ReportFileFlagName        = "report-file"
	ReportFormatFlagName      = "report-format"
	SummaryDisableFlagName    = "summary-disable"
	SummaryPerProjectFlagName = "summary-per-project"

	TelemetryTraceExporterFlagName             = "telemetry-trace-exporter"
	TelemetryTraceExporterHTTPEndpointFlagName = "telemetry-trace-exporter-http-endpoint"
	TelemetryTraceExporterInsecureFlagName     = "telemetry-trace-exporter-insecure-endpoint"
)

// EnvVars returns the environment variables bound to the flag name, e.g. `TH_LOG_LEVEL`.
func EnvVars(name string) []string {
	name = EnvPrefix + "_" + name

	return []string{strings.ToUpper(strings.ReplaceAll(name, "-", "_"))}
}

// NewGlobalFlags creates the flags shared by every command.
func NewGlobalFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			EnvVars:     EnvVars(LogLevelFlagName),
			Destination: &opts.LogLevel,
			Value:       opts.LogLevel,
			Usage:       fmt.Sprintf("Sets the logging level. Supported levels: %s.", log.AllLevels),
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			EnvVars:     EnvVars(LogFormatFlagName),
			Destination: &opts.LogFormat,
			Value:       opts.LogFormat,
			Usage:       fmt.Sprintf("Sets the log format. Supported formats: %s.", strings.Join(format.Names(), ", ")),
		},
		&cli.BoolFlag{
			Name:        NoColorFlagName,
			EnvVars:     append(EnvVars(NoColorFlagName), "NO_COLOR"),
			Destination: &opts.NoColor,
			Usage:       "Disable color output.",
		},
		&cli.StringFlag{
			Name:        WorkingDirFlagName,
			EnvVars:     EnvVars(WorkingDirFlagName),
			Destination: &opts.WorkingDir,
			Usage:       "The directory to start from. Default is the current directory.",
		},
		&cli.StringFlag{
			Name:        ConfigFlagName,
			Aliases:     []string{"c"},
			EnvVars:     EnvVars(ConfigFlagName),
			Destination: &opts.ConfigPath,
			Usage:       "Use this configuration file for the whole repository instead of discovering nested projects.",
		},
		&cli.StringFlag{
			Name:        ConfigFilenameFlagName,
			EnvVars:     EnvVars(ConfigFilenameFlagName),
			Destination: &opts.ConfigFilename,
			Value:       opts.ConfigFilename,
			Hidden:      true,
			Usage:       "The configuration marker file name.",
		},
		&cli.StringSliceFlag{
			Name:    ProjectFlagName,
			EnvVars: EnvVars(ProjectFlagName),
			Usage:   "Only include projects matching this glob. May be repeated.",
		},
		&cli.StringSliceFlag{
			Name:    SkipProjectFlagName,
			EnvVars: EnvVars(SkipProjectFlagName),
			Usage:   "Skip projects matching this glob, and everything below them. May be repeated.",
		},
		&cli.BoolFlag{
			Name:        FollowSymlinksFlagName,
			EnvVars:     EnvVars(FollowSymlinksFlagName),
			Destination: &opts.FollowSymlinks,
			Usage:       "Follow symbolic links to directories while discovering projects.",
		},
		&cli.BoolFlag{
			Name:        NoHiddenFlagName,
			EnvVars:     EnvVars(NoHiddenFlagName),
			Destination: &opts.NoHidden,
			Usage:       "Do not descend into hidden directories.",
		},
		&cli.IntFlag{
			Name:        DiscoveryWorkersFlagName,
			EnvVars:     EnvVars(DiscoveryWorkersFlagName),
			Destination: &opts.DiscoveryWorkers,
			Value:       opts.DiscoveryWorkers,
			Hidden:      true,
			Usage:       "Number of directories visited concurrently during discovery.",
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterFlagName,
			EnvVars:     EnvVars(TelemetryTraceExporterFlagName),
			Destination: &opts.Telemetry.TraceExporter,
			Hidden:      true,
			Usage:       "Trace exporter: none, console, otlpHttp, otlpGrpc or http.",
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterHTTPEndpointFlagName,
			EnvVars:     EnvVars(TelemetryTraceExporterHTTPEndpointFlagName),
			Destination: &opts.Telemetry.TraceExporterHTTPEndpoint,
			Hidden:      true,
			Usage:       "Endpoint of the http trace exporter.",
		},
		&cli.BoolFlag{
			Name:        TelemetryTraceExporterInsecureFlagName,
			EnvVars:     EnvVars(TelemetryTraceExporterInsecureFlagName),
			Destination: &opts.Telemetry.TraceExporterInsecureEndpoint,
			Hidden:      true,
			Usage:       "Use an insecure connection to the trace endpoint.",
		},
		&cli.StringFlag{
			Name:        "traceparent",
			EnvVars:     []string{telemetry.TraceParentEnv},
			Destination: &opts.Telemetry.TraceParent,
			Hidden:      true,
			Usage:       "W3C traceparent linking the spans to a parent trace.",
		},
	}
}

// newFileFlags creates the flags selecting the candidate files.
func newFileFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        SourceFlagName,
			EnvVars:     EnvVars(SourceFlagName),
			Destination: &opts.FileSource,
			Value:       opts.FileSource,
			Usage:       fmt.Sprintf("Where candidate files come from: %s.", strings.Join(options.Sources(), ", ")),
		},
		&cli.StringSliceFlag{
			Name:    FilesFlagName,
			EnvVars: EnvVars(FilesFlagName),
			Usage:   "Run on these files or glob patterns instead. May be repeated.",
		},
	}
}

func newFormatFlag(opts *options.Options) cli.Flag {
	return &cli.StringFlag{
		Name:        FormatFlagName,
		EnvVars:     EnvVars(FormatFlagName),
		Destination: &opts.OutputFormat,
		Value:       opts.OutputFormat,
		Usage:       "Output format: text or json.",
	}
}

func newExecFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        CommandFlagName,
			EnvVars:     EnvVars(CommandFlagName),
			Destination: &opts.Command,
			Usage:       "The command line to run in every project. Alternatively pass it after `--`.",
		},
		&cli.IntFlag{
			Name:        JobsFlagName,
			Aliases:     []string{"j"},
			EnvVars:     EnvVars(JobsFlagName),
			Destination: &opts.Jobs,
			Value:       opts.Jobs,
			Usage:       "Number of projects run concurrently.",
		},
		&cli.BoolFlag{
			Name:        NoDepthBarrierFlagName,
			EnvVars:     EnvVars(NoDepthBarrierFlagName),
			Destination: &opts.NoDepthBarrier,
			Usage:       "Let shallower projects start before every deeper project has finished.",
		},
		&cli.BoolFlag{
			Name:        FailFastFlagName,
			EnvVars:     EnvVars(FailFastFlagName),
			Destination: &opts.FailFast,
			Usage:       "Skip the remaining projects once one fails.",
		},
		&cli.BoolFlag{
			Name:        NoFilesFlagName,
			EnvVars:     EnvVars(NoFilesFlagName),
			Destination: &opts.NoFiles,
			Usage:       "Do not pass the project files to the command.",
		},
		&cli.BoolFlag{
			Name:        SkipStagedCheckFlagName,
			EnvVars:     EnvVars(SkipStagedCheckFlagName),
			Destination: &opts.SkipStagedCheck,
			Usage:       "Run even when configuration files are not staged.",
		},
		&cli.StringFlag{
			Name:        ReportFileFlagName,
			EnvVars:     EnvVars(ReportFileFlagName),
			Destination: &opts.ReportFile,
			Usage:       "Write a report of every project run to this file.",
		},
		&cli.StringFlag{
			Name:        ReportFormatFlagName,
			EnvVars:     EnvVars(ReportFormatFlagName),
			Destination: &opts.ReportFormat,
			Usage:       "Format of the report file: csv or json. Defaults to the file extension.",
		},
		&cli.BoolFlag{
			Name:        SummaryDisableFlagName,
			EnvVars:     EnvVars(SummaryDisableFlagName),
			Destination: &opts.SummaryDisable,
			Usage:       "Do not print the run summary.",
		},
		&cli.BoolFlag{
			Name:        SummaryPerProjectFlagName,
			EnvVars:     EnvVars(SummaryPerProjectFlagName),
			Destination: &opts.SummaryPerProject,
			Usage:       "List every project with its duration in the run summary.",
		},
	}
}
