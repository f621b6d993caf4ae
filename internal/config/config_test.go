package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/treehook/internal/config"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
files: ^src/
exclude: (?x)^(
    src/vendor/|
    .*\.min\.js$
  )
minimum_pre_commit_version: "3.2.0"
repos:
  - repo: local
    hooks:
      - id: fmt
        name: fmt
        entry: gofmt -l
        language: system
`

func TestRead(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := config.Read(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "3.2.0", cfg.MinimumVersion)
	assert.Contains(t, cfg.Document, "repos")

	assert.True(t, cfg.Filters.Match("src/main.go"))
	assert.False(t, cfg.Filters.Match("docs/readme.md"))
	assert.False(t, cfg.Filters.Match("src/vendor/lib.go"))
	assert.False(t, cfg.Filters.Match("src/app.min.js"))
	// The `$` in the exclude pattern keeps directories from being pruned.
	assert.False(t, cfg.Filters.ExcludesDir("src/vendor"))
}

func TestReadNotFound(t *testing.T) {
	t.Parallel()

	_, err := config.Read(filepath.Join(t.TempDir(), config.DefaultFilename))
	require.Error(t, err)

	var notFound config.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse("/repo/.pre-commit-config.yaml", []byte("\n"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Document)
	assert.True(t, cfg.Filters.MatchAll())
	assert.True(t, cfg.Filters.Match("anything/at/all.txt"))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
	}{
		{"not a mapping", "- a\n- b\n"},
		{"files is a list", "files: [a, b]\n"},
		{"invalid regex", "files: '('\n"},
		{"broken yaml", "files: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse("/repo/.pre-commit-config.yaml", []byte(tc.data))
			require.Error(t, err)

			var parseErr config.ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "/repo/.pre-commit-config.yaml", parseErr.Path)
		})
	}
}

func TestFiltersLookaround(t *testing.T) {
	t.Parallel()

	filters, err := config.NewFilters(`^(?!generated/).*\.go$`, "")
	require.NoError(t, err)

	assert.True(t, filters.Match("pkg/a.go"))
	assert.False(t, filters.Match("generated/a.go"))
	assert.False(t, filters.Match("pkg/a.py"))
}

func TestFiltersExcludesDir(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		exclude string
		dir     string
		expect  bool
	}{
		{`^vendor/`, "vendor", true},
		{`^vendor/`, "vendor/pkg", true},
		{`^vendor/`, "src", false},
		{`(?<=src/)gen/`, "src/gen", true},
		{`^a/(?!keep)`, "a", false},
		{`^a/(?=keep)`, "a", false},
		{`^build/|\.log$`, "build", false},
		{`^build\b`, "build", false},
		{``, "vendor", false},
	}

	for _, tc := range testCases {
		t.Run(tc.exclude+" "+tc.dir, func(t *testing.T) {
			t.Parallel()

			filters, err := config.NewFilters("", tc.exclude)
			require.NoError(t, err)

			assert.Equal(t, tc.expect, filters.ExcludesDir(tc.dir))
		})
	}
}

func TestFiltersExcludesDirKeepsMatchingFiles(t *testing.T) {
	t.Parallel()

	filters, err := config.NewFilters("", `^a/(?!keep)`)
	require.NoError(t, err)

	assert.False(t, filters.ExcludesDir("a"))
	assert.False(t, filters.Match("a/other/x.py"))
	assert.True(t, filters.Match("a/keep/x.py"))
}

func TestFiltersEqual(t *testing.T) {
	t.Parallel()

	all, err := config.NewFilters("", "")
	require.NoError(t, err)

	goOnly, err := config.NewFilters(`\.go$`, "")
	require.NoError(t, err)

	goOnlyAgain, err := config.NewFilters(`\.go$`, "")
	require.NoError(t, err)

	var nilFilters *config.Filters

	assert.True(t, all.Equal(nilFilters))
	assert.True(t, goOnly.Equal(goOnlyAgain))
	assert.False(t, goOnly.Equal(all))
}

func TestCheckVersion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		minimum string
		current string
		wantErr bool
	}{
		{"", "1.0.0", false},
		{"1.0.0", "1.0.0", false},
		{"1.2.0", "1.10.0", false},
		{"2.0.0", "1.9.9", true},
		{"2.0.0", "dev", false},
	}

	for _, tc := range testCases {
		cfg := config.DefaultConfig("/repo/.pre-commit-config.yaml")
		cfg.MinimumVersion = tc.minimum

		err := cfg.CheckVersion(tc.current)
		if !tc.wantErr {
			require.NoError(t, err, "minimum %s current %s", tc.minimum, tc.current)
			continue
		}

		var mismatch config.VersionMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, tc.minimum, mismatch.Required)
	}
}
