// Package config reads the project configuration marker file.
//
// The document is treated as opaque except for the fields treehook needs to
// partition files between projects: `files`, `exclude` and
// `minimum_pre_commit_version`. Everything else is kept in Document for the
// hook runner.
package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gruntwork-io/treehook/internal/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration marker file name.
const DefaultFilename = ".pre-commit-config.yaml"

// Config is a parsed configuration marker file.
type Config struct {
	// Filters holds the compiled `files`/`exclude` patterns.
	Filters *Filters
	// Document is the whole file as a generic YAML document.
	Document map[string]any
	// Path is the absolute path of the file.
	Path string
	// MinimumVersion is the raw `minimum_pre_commit_version` value.
	MinimumVersion string
}

type document struct {
	Files          string `yaml:"files"`
	Exclude        string `yaml:"exclude"`
	MinimumVersion string `yaml:"minimum_pre_commit_version"`
}

// Read reads and parses the configuration file at path.
func Read(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.New(err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(NotFoundError{Path: absPath})
		}

		return nil, errors.New(ParseError{Path: absPath, Message: "failed to read config file", Err: err})
	}

	return Parse(absPath, data)
}

// Parse parses data as the configuration file located at path.
func Parse(path string, data []byte) (*Config, error) {
	cfg := &Config{
		Path:     path,
		Document: make(map[string]any),
	}

	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &cfg.Document); err != nil {
			return nil, errors.New(ParseError{Path: path, Message: "invalid YAML", Err: err})
		}

		if cfg.Document == nil {
			cfg.Document = make(map[string]any)
		}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(ParseError{Path: path, Message: "invalid `files`, `exclude` or `minimum_pre_commit_version`", Err: err})
	}

	filters, err := NewFilters(doc.Files, doc.Exclude)
	if err != nil {
		return nil, errors.New(ParseError{Path: path, Message: "invalid pattern", Err: err})
	}

	cfg.Filters = filters
	cfg.MinimumVersion = doc.MinimumVersion

	return cfg, nil
}

// DefaultConfig returns a configuration that matches every file.
func DefaultConfig(path string) *Config {
	filters, _ := NewFilters("", "")

	return &Config{
		Path:     path,
		Document: make(map[string]any),
		Filters:  filters,
	}
}
