package boundary_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/treehook/internal/boundary"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBoundary(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	repoDir := filepath.Join(tmpDir, "repo")
	worktreeDir := filepath.Join(tmpDir, "worktree")
	plainDir := filepath.Join(tmpDir, "plain")

	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(worktreeDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(worktreeDir, ".git"), []byte("gitdir: ../repo/.git/worktrees/wt\n"), 0o644))
	require.NoError(t, os.MkdirAll(plainDir, 0o755))

	assert.True(t, boundary.IsBoundary(repoDir))
	assert.True(t, boundary.IsBoundary(worktreeDir))
	assert.False(t, boundary.IsBoundary(plainDir))
}

func TestFind(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "repo")
	nested := filepath.Join(repoDir, "a", "b", "c")

	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(nested, 0o755))

	b, err := boundary.Find(nested)
	require.NoError(t, err)
	assert.True(t, b.Found())
	assert.Equal(t, repoDir, b.Root)

	b, err = boundary.Find(repoDir)
	require.NoError(t, err)
	assert.Equal(t, repoDir, b.Root)

	assert.True(t, b.Contains(nested))
	assert.True(t, b.Contains(repoDir))
	assert.False(t, b.Contains(tmpDir))
	assert.False(t, b.Contains(filepath.Join(tmpDir, "repo-other")))
}

func TestFindMissingStartDir(t *testing.T) {
	t.Parallel()

	_, err := boundary.Find(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var notFound boundary.StartDirNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestWalkUpStopsAtFilesystemRoot(t *testing.T) {
	t.Parallel()

	var visited []string

	_, ok := boundary.WalkUp(t.TempDir(), func(dir string) bool {
		visited = append(visited, dir)
		return false
	})

	assert.False(t, ok)
	require.NotEmpty(t, visited)

	last := visited[len(visited)-1]
	assert.Equal(t, last, filepath.Dir(last))
}

func TestWalkUpInnermostFirst(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	start := filepath.Join(tmpDir, "x", "y")

	dir, ok := boundary.WalkUp(start, func(dir string) bool {
		return filepath.Base(dir) == "x" || dir == tmpDir
	})

	assert.True(t, ok)
	assert.Equal(t, filepath.Join(tmpDir, "x"), dir)
}

func TestUnboundedContainsEverything(t *testing.T) {
	t.Parallel()

	var b boundary.Boundary

	assert.False(t, b.Found())
	assert.True(t, b.Contains("/anything"))
	assert.Equal(t, "<none>", b.String())
}
