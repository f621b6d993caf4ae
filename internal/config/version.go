package config

import (
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/hashicorp/go-version"
)

// CheckVersion returns VersionMismatchError when the configuration requires a newer
// version than current. Development builds, whose version does not parse, skip the check.
func (cfg *Config) CheckVersion(current string) error {
	if cfg.MinimumVersion == "" {
		return nil
	}

	currentVersion, err := version.NewVersion(current)
	if err != nil {
		return nil
	}

	minimum, err := version.NewVersion(cfg.MinimumVersion)
	if err != nil {
		return errors.New(ParseError{Path: cfg.Path, Message: "invalid `minimum_pre_commit_version`", Err: err})
	}

	if currentVersion.LessThan(minimum) {
		return errors.New(VersionMismatchError{
			Path:     cfg.Path,
			Required: minimum.String(),
			Current:  currentVersion.String(),
		})
	}

	return nil
}
