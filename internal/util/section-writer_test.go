package util_test

import (
	"bytes"
	"testing"

	"github.com/gruntwork-io/treehook/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionWriter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		writes   []string
		expected string
	}{
		{
			name:     "no output",
			expected: "docs:\n",
		},
		{
			name:     "lines split across writes",
			writes:   []string{"one\ntw", "o\nthree\n"},
			expected: "docs:\n  one\n  two\n  three\n",
		},
		{
			name:     "unterminated last line",
			writes:   []string{"one\ntwo"},
			expected: "docs:\n  one\n  two\n",
		},
		{
			name:     "empty lines are not indented",
			writes:   []string{"one\n\n", "\ntwo\n"},
			expected: "docs:\n  one\n\n\n  two\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			w := util.NewSectionWriter(&buf, "docs:\n", "  ")

			for _, write := range tc.writes {
				n, err := w.Write([]byte(write))
				require.NoError(t, err)
				assert.Equal(t, len(write), n)
			}

			require.NoError(t, w.Close())
			require.NoError(t, w.Close())

			assert.Equal(t, tc.expected, buf.String())
		})
	}
}
