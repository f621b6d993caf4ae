// Package helpers provides helper functions for tests.
package helpers

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gruntwork-io/treehook/internal/git"
	"github.com/stretchr/testify/require"
)

// ConfigFilename is the configuration marker file name used by fixtures.
const ConfigFilename = ".pre-commit-config.yaml"

func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// CreateTree creates files below root. Keys are slash separated relative paths; a key ending
// with `/` creates an empty directory.
func CreateTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))

		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// TempDir returns a temporary directory with symlinks resolved, so paths compare equal to
// the ones produced by the code under test.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

// InitRepo initializes a git repository at root and stages the given slash separated paths.
func InitRepo(t *testing.T, root string, stage ...string) *git.GitRunner {
	t.Helper()

	runner, err := git.NewGitRunner()
	require.NoError(t, err)

	runner = runner.WithWorkDir(root)

	require.NoError(t, runner.Init(t.Context()))

	if len(stage) > 0 {
		require.NoError(t, runner.Add(t.Context(), stage...))
	}

	return runner
}
