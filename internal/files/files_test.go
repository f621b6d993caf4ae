package files_test

import (
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/treehook/internal/files"
	"github.com/gruntwork-io/treehook/internal/git"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/test/helpers"
	"github.com/gruntwork-io/treehook/test/helpers/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cfg = helpers.ConfigFilename

func discover(t *testing.T, dir string) *workspace.Workspace {
	t.Helper()

	ws, err := workspace.Discover(t.Context(), logger.CreateLogger(), workspace.Options{WorkingDir: dir})
	require.NoError(t, err)

	return ws
}

func TestGitSource(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		cfg:                   "exclude: ^vendor/\n",
		"README.md":           "",
		"src/main.go":         "",
		"src/untracked.go":    "",
		"vendor/lib/x.go":     "",
		"docs/" + cfg:         "",
		"docs/guide/intro.md": "",
	})
	helpers.InitRepo(t, root, cfg, "README.md", "src/main.go", "vendor/lib/x.go", "docs/"+cfg, "docs/guide/intro.md")

	ws := discover(t, root)

	source := files.DefaultSource(ws)
	assert.Equal(t, "git", source.Name())

	fileSet, err := files.Collect(t.Context(), logger.CreateLogger(), ws, source)
	require.NoError(t, err)

	// Project configuration files belong to no project and are left out.
	assert.Equal(t, []string{"README.md", "docs/guide/intro.md", "src/main.go"}, fileSet.Paths())
}

func TestGitSourceNestedWorkspace(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		"top.txt":          "",
		"app/" + cfg:       "",
		"app/src/a.go":     "",
		"application/b.go": "",
	})
	helpers.InitRepo(t, root, "top.txt", "app/"+cfg, "app/src/a.go", "application/b.go")

	ws := discover(t, filepath.Join(root, "app", "src"))
	require.Equal(t, filepath.Join(root, "app"), ws.Root)

	fileSet, err := files.Collect(t.Context(), logger.CreateLogger(), ws, &files.GitSource{})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/a.go"}, fileSet.Paths())
}

func TestGitSourceWorkspaceOutsideRepository(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		"ws/" + cfg:     "",
		"repo/file.txt": "",
	})
	helpers.InitRepo(t, filepath.Join(root, "repo"), "file.txt")

	ws := discover(t, filepath.Join(root, "ws"))

	repo, err := git.Open(filepath.Join(root, "repo"))
	require.NoError(t, err)

	defer repo.Close()

	_, err = files.Collect(t.Context(), logger.CreateLogger(), ws, &files.GitSource{Repo: repo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is outside of the repository")
}

func TestWalkSource(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		cfg:                "exclude: ^(build/|.*\\.log$)\n",
		"a.txt":            "",
		"debug.log":        "",
		".config/x.toml":   "",
		"build/out.bin":    "",
		"nested/" + cfg:    "",
		"nested/deep/y.go": "",
	})

	ws := discover(t, root)
	require.False(t, ws.Boundary.Found())

	source := files.DefaultSource(ws)
	assert.Equal(t, "walk", source.Name())

	fileSet, err := files.Collect(t.Context(), logger.CreateLogger(), ws, source)
	require.NoError(t, err)

	assert.Equal(t, []string{".config/x.toml", "a.txt", "nested/deep/y.go"}, fileSet.Paths())

	fileSet, err = files.Collect(t.Context(), logger.CreateLogger(), ws, &files.WalkSource{NoHidden: true})
	require.NoError(t, err)

	assert.False(t, fileSet.Contains(".config/x.toml"))
	assert.True(t, fileSet.Contains("a.txt"))
}

func TestWalkSourceMatchesGitSource(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		tree map[string]string
	}{
		{
			name: "prunable exclude",
			tree: map[string]string{
				cfg:               "exclude: ^vendor/\n",
				"a.py":            "",
				"vendor/lib/x.go": "",
				"src/" + cfg:      "",
				"src/b.go":        "",
			},
		},
		{
			name: "exclude with a negative lookahead",
			tree: map[string]string{
				cfg:             "exclude: ^a/(?!keep)\n",
				"a/drop/x.py":   "",
				"a/keep/x.py":   "",
				"a/keep/" + cfg: "",
				"b.txt":         "",
			},
		},
		{
			name: "exclude anchored at the end",
			tree: map[string]string{
				cfg:             "exclude: ^build/.*\\.bin$\n",
				"build/out.bin": "",
				"build/out.txt": "",
				"main.go":       "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := helpers.TempDir(t)
			helpers.CreateTree(t, root, tc.tree)

			paths := make([]string, 0, len(tc.tree))
			for path := range tc.tree {
				paths = append(paths, path)
			}

			helpers.InitRepo(t, root, paths...)

			ws := discover(t, root)

			fromGit, err := files.Collect(t.Context(), logger.CreateLogger(), ws, &files.GitSource{})
			require.NoError(t, err)

			fromWalk, err := files.Collect(t.Context(), logger.CreateLogger(), ws, &files.WalkSource{})
			require.NoError(t, err)

			assert.NotEmpty(t, fromGit.Paths())
			assert.Equal(t, fromGit.Paths(), fromWalk.Paths())
		})
	}
}

func TestWalkSourceLookaheadExclude(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		cfg:             "exclude: ^a/(?!keep)\n",
		"a/drop/x.py":   "",
		"a/keep/x.py":   "",
		"a/keep/" + cfg: "",
	})

	ws := discover(t, root)

	assert.Contains(t, ws.Projects.RelativePaths(), "a/keep")

	fileSet, err := files.Collect(t.Context(), logger.CreateLogger(), ws, &files.WalkSource{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a/keep/x.py"}, fileSet.Paths())
}

func TestListSource(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		cfg:             "",
		"src/a.go":      "",
		"src/pkg/b.go":  "",
		"src/pkg/c.txt": "",
	})

	ws := discover(t, root)
	src := filepath.Join(root, "src")

	testCases := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{
			name:     "relative to the invocation directory",
			patterns: []string{"a.go", "pkg/c.txt"},
			expected: []string{"src/a.go", "src/pkg/c.txt"},
		},
		{
			name:     "double star glob",
			patterns: []string{"**/*.go"},
			expected: []string{"src/a.go", "src/pkg/b.go"},
		},
		{
			name:     "directories are ignored",
			patterns: []string{"pkg", "a.go"},
			expected: []string{"src/a.go"},
		},
		{
			name:     "duplicates are merged",
			patterns: []string{"a.go", "./a.go", "../src/a.go"},
			expected: []string{"src/a.go"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fileSet, err := files.Collect(t.Context(), logger.CreateLogger(), ws, &files.ListSource{Dir: src, Patterns: tc.patterns})
			require.NoError(t, err)

			assert.Equal(t, tc.expected, fileSet.Paths())
		})
	}
}

func TestListSourceOutsideWorkspace(t *testing.T) {
	t.Parallel()

	root := helpers.TempDir(t)
	helpers.CreateTree(t, root, map[string]string{
		"ws/" + cfg: "",
		"other.txt": "",
	})

	ws := discover(t, filepath.Join(root, "ws"))

	_, err := files.Collect(t.Context(), logger.CreateLogger(), ws, &files.ListSource{Patterns: []string{"../other.txt"}})

	var outside files.FileOutsideWorkspaceError
	require.ErrorAs(t, err, &outside)
	assert.Equal(t, filepath.Join(root, "other.txt"), outside.Path)
}
