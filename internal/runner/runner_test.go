package runner_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/runner"
	"github.com/gruntwork-io/treehook/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		expectedEnv  map[string]string
		name         string
		line         string
		expectedName string
		expectedArgs []string
	}{
		{
			name:         "plain",
			line:         "golangci-lint run --fix",
			expectedName: "golangci-lint",
			expectedArgs: []string{"run", "--fix"},
			expectedEnv:  map[string]string{},
		},
		{
			name:         "quoted",
			line:         `sh -c "echo 'a b'"`,
			expectedName: "sh",
			expectedArgs: []string{"-c", "echo 'a b'"},
			expectedEnv:  map[string]string{},
		},
		{
			name:         "env prefix",
			line:         "GOFLAGS=-mod=mod CGO_ENABLED=0 go vet",
			expectedName: "go",
			expectedArgs: []string{"vet"},
			expectedEnv:  map[string]string{"GOFLAGS": "-mod=mod", "CGO_ENABLED": "0"},
		},
		{
			name:         "variables are left to the command",
			line:         `sh -c 'echo "$HOME $1"' sh`,
			expectedName: "sh",
			expectedArgs: []string{"-c", `echo "$HOME $1"`, "sh"},
			expectedEnv:  map[string]string{},
		},
		{
			name:         "unquoted variable",
			line:         "echo $TREEHOOK_PROJECT",
			expectedName: "echo",
			expectedArgs: []string{"$TREEHOOK_PROJECT"},
			expectedEnv:  map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd, err := runner.NewCommand(tc.line)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedName, cmd.Name)
			assert.Equal(t, tc.expectedArgs, cmd.Args)
			assert.Equal(t, tc.expectedEnv, cmd.Env)
		})
	}
}

func TestNewCommandErrors(t *testing.T) {
	t.Parallel()

	_, err := runner.NewCommand("")
	require.ErrorAs(t, err, &runner.EmptyCommandError{})

	_, err = runner.NewCommand("FOO=bar")
	require.ErrorAs(t, err, &runner.EmptyCommandError{})

	_, err = runner.NewCommand(`echo "unterminated`)
	require.ErrorAs(t, err, &runner.ParseCommandError{})

	_, err = runner.NewCommand("make lint && make test")
	require.ErrorAs(t, err, &runner.ParseCommandError{})
	require.ErrorIs(t, err, runner.ErrShellOperator)
}

func newProject(t *testing.T, root, rel string) *component.Project {
	t.Helper()

	dir := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	project, err := component.NewProject(root, dir, filepath.Join(dir, helpers.ConfigFilename))
	require.NoError(t, err)

	return project
}

func TestCommandRun(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses sh")
	}

	root := helpers.TempDir(t)
	project := newProject(t, root, "sub")

	cmd, err := runner.NewCommand(`GREETING=hi sh -c 'echo "$GREETING $TREEHOOK_PROJECT $(basename "$(pwd -P)") $*"' sh`)
	require.NoError(t, err)

	cmd.Root = root

	var out bytes.Buffer

	files := component.NewFileSet("sub/nested/b.txt", "sub/a.txt")

	require.NoError(t, cmd.Run(t.Context(), project, files, &out))
	assert.Equal(t, "hi sub sub a.txt nested/b.txt\n", out.String())
}

func TestCommandRunNoFiles(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses sh")
	}

	root := helpers.TempDir(t)
	project := newProject(t, root, ".")

	cmd, err := runner.NewCommand(`sh -c 'echo "$#:$TREEHOOK_ROOT"' sh`)
	require.NoError(t, err)

	cmd.Root = root
	cmd.NoFiles = true

	var out bytes.Buffer

	require.NoError(t, cmd.Run(t.Context(), project, component.NewFileSet("a.txt"), &out))
	assert.Equal(t, "0:"+root+"\n", out.String())
}

func TestCommandRunFailure(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses sh")
	}

	root := helpers.TempDir(t)
	project := newProject(t, root, "app")

	cmd, err := runner.NewCommand(`sh -c 'echo broken >&2; exit 3'`)
	require.NoError(t, err)

	cmd.NoFiles = true

	var out bytes.Buffer

	err = cmd.Run(t.Context(), project, component.NewFileSet("app/x"), &out)
	require.Error(t, err)

	var execErr runner.ProcessExecutionError
	require.ErrorAs(t, err, &execErr)

	code, codeErr := execErr.ExitStatus()
	require.NoError(t, codeErr)
	assert.Equal(t, 3, code)
	assert.Equal(t, "broken\n", out.String())
	assert.Equal(t, project.Path, execErr.WorkingDir)
}

func TestCommandRunMissingExecutable(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	project := newProject(t, root, ".")

	cmd := &runner.Command{Name: "treehook-no-such-executable"}

	err := cmd.Run(t.Context(), project, component.NewFileSet("a"), &bytes.Buffer{})
	require.Error(t, err)

	var execErr runner.ProcessExecutionError
	require.ErrorAs(t, err, &execErr)

	_, codeErr := execErr.ExitStatus()
	require.Error(t, codeErr)
}
