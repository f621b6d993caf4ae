// Package runner runs a shell command inside a project directory with the project's files as
// arguments. It is the runner used by the `exec` command.
package runner

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"strings"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/telemetry"
	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/mattn/go-shellwords"
)

const (
	// ProjectEnv holds the relative path of the project being run.
	ProjectEnv = "TREEHOOK_PROJECT"
	// RootEnv holds the absolute workspace root.
	RootEnv = "TREEHOOK_ROOT"
)

// Command runs one external command per project.
type Command struct {
	Env map[string]string
	// Name is the executable, looked up in PATH.
	Name string
	Args []string
	// Root is the workspace root, exported to the command as TREEHOOK_ROOT.
	Root string
	// NoFiles stops the project files from being appended to the arguments.
	NoFiles bool
}

// NewCommand parses a shell-style command line into a Command. Leading `KEY=value` words are
// taken as environment variables. Variables are not expanded; that is left to the command.
func NewCommand(line string) (*Command, error) {
	parser := shellwords.NewParser()

	words, err := parser.Parse(line)
	if err != nil {
		return nil, errors.New(ParseCommandError{Line: line, Err: err})
	}

	// The parser stops at the first unquoted operator such as `&&` or `|`.
	if parser.Position >= 0 {
		return nil, errors.New(ParseCommandError{Line: line, Err: ErrShellOperator})
	}

	env := make(map[string]string)

	for len(words) > 0 {
		key, val, ok := strings.Cut(words[0], "=")
		if !ok || key == "" {
			break
		}

		env[key] = val
		words = words[1:]
	}

	if len(words) == 0 {
		return nil, errors.New(EmptyCommandError{Line: line})
	}

	return &Command{Name: words[0], Args: words[1:], Env: env}, nil
}

// String returns the command line without the project files.
func (cmd *Command) String() string {
	return strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
}

// Run runs the command in the project directory. Files are passed relative to the project
// directory. Both stdout and stderr go to out.
func (cmd *Command) Run(ctx context.Context, project *component.Project, files component.FileSet, out io.Writer) error {
	args := cmd.Args

	if !cmd.NoFiles {
		args = append(append([]string{}, cmd.Args...), files.RelativeTo(project.RelativePath)...)
	}

	l := log.LoggerFromContext(ctx)
	l.Debugf("Running command in %s: %s (%d files)", project, cmd, files.Len())

	env := maps.Clone(cmd.Env)
	if env == nil {
		env = make(map[string]string)
	}

	env[ProjectEnv] = project.String()

	if cmd.Root != "" {
		env[RootEnv] = cmd.Root
	}

	if traceParent := telemetry.TraceParentFromContext(ctx); traceParent != "" {
		env[telemetry.TraceParentEnv] = traceParent
	}

	proc := exec.CommandContext(ctx, cmd.Name, args...)
	proc.Dir = project.Path
	proc.Stdout = out
	proc.Stderr = out
	proc.Env = append(os.Environ(), toEnvVarsList(env)...)

	if err := proc.Run(); err != nil {
		return errors.New(ProcessExecutionError{
			Err:        err,
			Command:    cmd.Name,
			Args:       args,
			WorkingDir: project.Path,
		})
	}

	return nil
}

func toEnvVarsList(envVarsAsMap map[string]string) []string {
	envVarsAsList := make([]string, 0, len(envVarsAsMap))
	for key, value := range envVarsAsMap {
		envVarsAsList = append(envVarsAsList, fmt.Sprintf("%s=%s", key, value))
	}

	return envVarsAsList
}
