// Package logger provides loggers for tests.
package logger

import (
	"io"

	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/gruntwork-io/treehook/pkg/log/format"
)

// CreateLogger returns a debug level logger that discards its output.
func CreateLogger() log.Logger {
	return log.New(
		log.WithOutput(io.Discard),
		log.WithLevel(log.DebugLevel),
		log.WithFormatter(format.NewBareFormatter()),
	)
}

// CreateLoggerWithWriter returns a debug level logger writing bare lines to w.
func CreateLoggerWithWriter(w io.Writer) log.Logger {
	return log.New(
		log.WithOutput(w),
		log.WithLevel(log.DebugLevel),
		log.WithFormatter(format.NewBareFormatter()),
	)
}
