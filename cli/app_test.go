package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/treehook/cli"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/report"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/options"
	"github.com/gruntwork-io/treehook/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	opts := options.NewOptionsWithWriters(&stdout, &stderr)
	app := cli.NewApp(opts)

	err := app.RunContext(t.Context(), append([]string{cli.AppName}, args...))

	return stdout.String(), stderr.String(), err
}

func createWorkspace(t *testing.T) string {
	t.Helper()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		helpers.ConfigFilename:                  "repos: []\n",
		"README.md":                             "",
		"docs/" + helpers.ConfigFilename:        "files: \\.md$\n",
		"docs/index.md":                         "",
		"src/backend/" + helpers.ConfigFilename: "repos: []\n",
		"src/backend/main.go":                   "",
	})

	return root
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	root := createWorkspace(t)

	stdout, _, err := runApp(t, "--working-dir", root+"/src", "root")
	require.NoError(t, err)

	assert.Equal(t, root+"\n", stdout)
}

func TestProjectsCommand(t *testing.T) {
	t.Parallel()

	root := createWorkspace(t)

	stdout, _, err := runApp(t, "--working-dir", root, "projects")
	require.NoError(t, err)
	assert.Equal(t, "src/backend\ndocs\n.\n", stdout)

	stdout, _, err = runApp(t, "--working-dir", root, "--skip-project", "src", "projects")
	require.NoError(t, err)
	assert.Equal(t, "docs\n.\n", stdout)

	stdout, _, err = runApp(t, "--working-dir", root, "projects", "--format", "json")
	require.NoError(t, err)

	var projects []struct {
		Project string `json:"project"`
		Depth   int    `json:"depth"`
		Parent  int    `json:"parent"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &projects))
	require.Len(t, projects, 3)
	assert.Equal(t, "src/backend", projects[0].Project)
	assert.Equal(t, 2, projects[0].Depth)
	assert.Equal(t, 2, projects[0].Parent)
	assert.Equal(t, -1, projects[2].Parent)
}

func TestPlanCommand(t *testing.T) {
	t.Parallel()

	root := createWorkspace(t)

	stdout, _, err := runApp(t, "--working-dir", root, "plan", "--source", "walk")
	require.NoError(t, err)

	expected := "src/backend (1 files)\n" +
		"  src/backend/main.go\n" +
		"docs (1 files)\n" +
		"  docs/index.md\n" +
		". (1 files)\n" +
		"  README.md\n"

	assert.Equal(t, expected, stdout)

	stdout, _, err = runApp(t, "--working-dir", root, "plan", "--source", "walk", "--files", "docs/index.md", "--files", "docs/"+helpers.ConfigFilename, "--format", "json")
	require.NoError(t, err)

	var output struct {
		Root     string `json:"root"`
		Mode     string `json:"mode"`
		Projects []struct {
			Project string   `json:"project"`
			State   string   `json:"state"`
			Files   []string `json:"files"`
			Dropped []string `json:"dropped"`
		} `json:"projects"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &output))

	assert.Equal(t, root, output.Root)
	assert.Equal(t, "workspace", output.Mode)
	require.Len(t, output.Projects, 3)
	assert.Equal(t, "skipped", output.Projects[0].State)
	assert.Equal(t, []string{"docs/index.md"}, output.Projects[1].Files)
	// A project configuration file is never handed to a hook.
	assert.Empty(t, output.Projects[1].Dropped)
	assert.Equal(t, "skipped", output.Projects[2].State)
}

func TestPlanCommandRejectsInvalidFormat(t *testing.T) {
	t.Parallel()

	root := createWorkspace(t)

	_, _, err := runApp(t, "--working-dir", root, "plan", "--format", "yaml")

	var invalid options.InvalidValueError
	require.ErrorAs(t, err, &invalid)
}

func TestExecCommand(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses sh")
	}

	root := createWorkspace(t)

	stdout, _, err := runApp(t, "--working-dir", root, "exec", "--source", "walk", "--jobs", "3", "--",
		"sh", "-c", `echo "$TREEHOOK_PROJECT $#"`, "sh")
	require.NoError(t, err)

	expected := "Running hooks for src/backend:\n  src/backend 1\n" +
		"Running hooks for docs:\n  docs 1\n" +
		"Running hooks for .:\n  . 1\n"

	assert.Equal(t, expected, stdout)
}

func TestExecCommandFromFlag(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses sh")
	}

	root := createWorkspace(t)

	stdout, _, err := runApp(t, "--working-dir", root, "--project", "docs", "exec", "--source", "walk", "--no-files",
		"--command", `sh -c 'echo "$#"'`)
	require.NoError(t, err)

	assert.Equal(t, "Running hooks for docs:\n  0\nRunning hooks for .:\n  0\n", stdout)
}

func TestExecCommandFailure(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses sh")
	}

	root := createWorkspace(t)

	stdout, stderr, err := runApp(t, "--working-dir", root, "exec", "--source", "walk", "--fail-fast", "--",
		"sh", "-c", `test "$TREEHOOK_PROJECT" != src/backend`)
	require.Error(t, err)

	assert.Equal(t, 1, errors.ExitCode(err, 0))
	assert.Equal(t, "Running hooks for src/backend:\n", stdout)
	assert.Contains(t, stderr, "src/backend failed")
}

func TestExecCommandWithoutCommand(t *testing.T) {
	t.Parallel()

	root := createWorkspace(t)

	_, _, err := runApp(t, "--working-dir", root, "exec")
	require.ErrorAs(t, err, &cli.MissingCommandError{})
}

func TestExecCommandInRepository(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses sh")
	}

	root := createWorkspace(t)
	helpers.CreateTree(t, root, map[string]string{"scratch.txt": ""})
	helpers.InitRepo(t, root,
		helpers.ConfigFilename,
		"README.md",
		"docs/"+helpers.ConfigFilename,
		"docs/index.md",
		"src/backend/"+helpers.ConfigFilename,
		"src/backend/main.go",
	)

	stdout, _, err := runApp(t, "--working-dir", root, "exec", "--", "sh", "-c", `echo "$*"`, "sh")
	require.NoError(t, err)

	expected := "Running hooks for src/backend:\n  main.go\n" +
		"Running hooks for docs:\n  index.md\n" +
		"Running hooks for .:\n  README.md\n"

	assert.Equal(t, expected, stdout)
}

func TestExecCommandRequiresStagedConfigs(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses true")
	}

	root := createWorkspace(t)
	helpers.InitRepo(t, root, helpers.ConfigFilename, "README.md")

	_, _, err := runApp(t, "--working-dir", root, "exec", "--", "true")

	var notStaged workspace.ConfigsNotStagedError
	require.ErrorAs(t, err, &notStaged)
	assert.Equal(t, []string{"docs/" + helpers.ConfigFilename, "src/backend/" + helpers.ConfigFilename}, notStaged.Paths)

	_, _, err = runApp(t, "--working-dir", root, "exec", "--skip-staged-check", "--no-files", "--", "true")
	require.NoError(t, err)
}

func TestExecCommandReport(t *testing.T) {
	t.Parallel()

	if helpers.IsWindows() {
		t.Skip("uses true")
	}

	root := createWorkspace(t)

	_, stderr, err := runApp(t, "--working-dir", root, "--project", "docs", "exec", "--source", "walk",
		"--report-file", "out/report.json", "--summary-per-project", "--", "true")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Run Summary  2 projects")
	assert.Contains(t, stderr, "Succeeded     2")
	assert.Contains(t, stderr, "      docs")

	data, err := os.ReadFile(filepath.Join(root, "out", "report.json"))
	require.NoError(t, err)

	var runs []report.JSONRun
	require.NoError(t, json.Unmarshal(data, &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "docs", runs[0].Name)
	assert.Equal(t, ".", runs[1].Name)
	assert.Equal(t, "succeeded", runs[1].Result)

	_, stderr, err = runApp(t, "--working-dir", root, "exec", "--source", "walk", "--summary-disable", "--", "true")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Run Summary")
}
