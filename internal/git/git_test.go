package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/treehook/internal/git"
	"github.com/gruntwork-io/treehook/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedFiles(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		"a.txt":            "a",
		"src/b.go":         "package b",
		"src/untracked.go": "package b",
	})
	helpers.InitRepo(t, root, "a.txt", "src/b.go")

	repo, err := git.Open(root)
	require.NoError(t, err)

	defer repo.Close()

	files, err := repo.TrackedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "src/b.go"}, files)
}

func TestTrackedFilesEmptyIndex(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.InitRepo(t, root)

	repo, err := git.Open(root)
	require.NoError(t, err)

	defer repo.Close()

	files, err := repo.TrackedFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpenNotRepository(t *testing.T) {
	t.Parallel()

	_, err := git.Open(helpers.TempDir(t))
	require.Error(t, err)

	var wrappedErr *git.WrappedError
	require.ErrorAs(t, err, &wrappedErr)
	assert.ErrorIs(t, wrappedErr.Err, git.ErrNotRepository)
}

func TestOpenGitFileWithoutPrefix(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("garbage\n"), 0o644))

	_, err := git.Open(root)
	assert.ErrorIs(t, err, git.ErrNotRepository)
}

func TestNotStaged(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		helpers.ConfigFilename:           "repos: []\n",
		"a/" + helpers.ConfigFilename:    "repos: []\n",
		"b/" + helpers.ConfigFilename:    "repos: []\n",
		"docs/" + helpers.ConfigFilename: "repos: []\n",
	})
	runner := helpers.InitRepo(t, root, helpers.ConfigFilename, "a/"+helpers.ConfigFilename, "b/"+helpers.ConfigFilename)

	// b is modified after staging, docs is never staged.
	require.NoError(t, os.WriteFile(filepath.Join(root, "b", helpers.ConfigFilename), []byte("repos: [x]\n"), 0o644))

	repo, err := git.Open(root)
	require.NoError(t, err)

	defer repo.Close()

	repo = repo.WithRunner(runner)

	notStaged, err := repo.NotStaged(t.Context(),
		helpers.ConfigFilename,
		"a/"+helpers.ConfigFilename,
		"b/"+helpers.ConfigFilename,
		"docs/"+helpers.ConfigFilename,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"b/" + helpers.ConfigFilename, "docs/" + helpers.ConfigFilename}, notStaged)
}

func TestGitRunnerRequiresWorkDir(t *testing.T) {
	t.Parallel()

	runner, err := git.NewGitRunner()
	require.NoError(t, err)

	err = runner.Init(t.Context())
	require.Error(t, err)

	var wrappedErr *git.WrappedError
	require.ErrorAs(t, err, &wrappedErr)
	assert.ErrorIs(t, wrappedErr.Err, git.ErrNoWorkDir)

	runner = runner.WithWorkDir(t.TempDir())
	assert.NoError(t, runner.RequiresWorkDir())
}
