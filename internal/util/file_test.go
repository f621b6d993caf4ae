package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/treehook/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	testCases := []struct {
		path     string
		expected string
	}{
		{"", base},
		{".", base},
		{"foo", filepath.Join(base, "foo")},
		{"foo/../bar", filepath.Join(base, "bar")},
		{filepath.Join(base, "a", ".", "b"), filepath.Join(base, "a", "b")},
	}

	for _, tc := range testCases {
		actual, err := util.CanonicalPath(tc.path, base)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, actual, "for path %q", tc.path)
	}
}

func TestHasPathPrefix(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path     string
		prefix   string
		expected bool
	}{
		{"/foo/bar/biz", "/foo/bar", true},
		{"/foo/bar/biz", "/foo/ba", false},
		{"/foo/bar", "/foo/bar", true},
		{"foo/bar", "foo", true},
		{"foo", "foo/bar", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, util.HasPathPrefix(tc.path, tc.prefix), "%s has prefix %s", tc.path, tc.prefix)
	}
}

func TestGlobCanonicalPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	for _, rel := range []string{"a/x.go", "a/b/y.go", "c/z.txt"} {
		path := filepath.Join(base, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	matches, err := util.GlobCanonicalPath(base, "**/*.go")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(base, "a", "x.go"),
		filepath.Join(base, "a", "b", "y.go"),
	}, matches)
}

func TestIsOutside(t *testing.T) {
	t.Parallel()

	assert.True(t, util.IsOutside(".."))
	assert.True(t, util.IsOutside("../x"))
	assert.False(t, util.IsOutside("..x"))
	assert.False(t, util.IsOutside("a/b"))
}
