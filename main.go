package main

import (
	"context"
	"os"

	"github.com/gruntwork-io/treehook/cli"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/options"
	"github.com/gruntwork-io/treehook/pkg/log"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// The main entrypoint for treehook
func main() {
	opts := options.NewOptions()
	opts.Version = version

	defer errors.Recover(checkForErrorsAndExit(opts))

	app := cli.NewApp(opts)

	err := cli.RunContext(context.Background(), app, os.Args)

	checkForErrorsAndExit(opts)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(opts *options.Options) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger := opts.Logger
		if logger == nil {
			logger = log.Default()
		}

		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		os.Exit(errors.ExitCode(err, 1))
	}
}
