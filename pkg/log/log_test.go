package log_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/gruntwork-io/treehook/pkg/log/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		str      string
		expected log.Level
	}{
		{"error", log.ErrorLevel},
		{"WARN", log.WarnLevel},
		{"info", log.InfoLevel},
		{"Debug", log.DebugLevel},
		{"trace", log.TraceLevel},
	}

	for _, tc := range testCases {
		level, err := log.ParseLevel(tc.str)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, level)
		assert.Equal(t, tc.expected, log.FromLogrusLevel(level.ToLogrusLevel()))
	}

	_, err := log.ParseLevel("loud")
	require.Error(t, err)
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := log.New(log.WithOutput(buf), log.WithFormatter(format.NewBareFormatter()))

	logger.Debug("hidden")
	logger.Info("shown")

	assert.Equal(t, "INF  shown\n", buf.String())

	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, log.DebugLevel, logger.Level())

	logger.Debug("now shown")
	assert.Contains(t, buf.String(), "DEB  now shown")
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	parent := log.New(log.WithOutput(buf), log.WithFormatter(format.NewBareFormatter()))

	child := parent.Clone()
	require.NoError(t, child.SetLevel("error"))

	assert.Equal(t, log.InfoLevel, parent.Level())
	assert.Equal(t, log.ErrorLevel, child.Level())
}

func TestContextWithLogger(t *testing.T) {
	t.Parallel()

	logger := log.New()
	ctx := log.ContextWithLogger(context.Background(), logger)

	assert.Same(t, logger, log.LoggerFromContext(ctx))
	assert.Same(t, log.Default(), log.LoggerFromContext(context.Background()))
}
