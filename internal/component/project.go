// Package component provides the data types shared by discovery, file distribution and planning.
//
// This package contains only data types and their associated methods, with no discovery logic.
// It exists separately from the discovery package to allow other packages to depend on these
// types without creating circular dependencies.
package component

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gruntwork-io/treehook/internal/config"
	"github.com/gruntwork-io/treehook/internal/errors"
)

// RootRelativePath is the relative path of the project at the workspace root.
const RootRelativePath = "."

// NoParent is the Parent index of a project that has no enclosing project.
const NoParent = -1

// Project is a directory with its own configuration marker file.
type Project struct {
	// Config is the parsed marker file. Nil until the configuration is loaded.
	Config *config.Config
	// Path is the absolute project directory.
	Path string
	// ConfigPath is the absolute path of the configuration file.
	ConfigPath string
	// RelativePath is the slash separated project directory relative to the workspace root.
	RelativePath string
	// Depth is the number of path segments between the workspace root and the project.
	Depth int
	// Index is the position of the project in execution order.
	Index int
	// Parent is the index of the nearest enclosing project, or NoParent.
	Parent int
}

// NewProject creates a project for dir inside the workspace rooted at root.
func NewProject(root, dir, configPath string) (*Project, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return nil, errors.New(err)
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, errors.Errorf("project %s is outside of the workspace root %s", dir, root)
	}

	return &Project{
		Path:         dir,
		ConfigPath:   configPath,
		RelativePath: rel,
		Depth:        depthOf(rel),
		Parent:       NoParent,
	}, nil
}

// String renders `.` for the root project and the relative path otherwise.
func (project *Project) String() string {
	return project.RelativePath
}

// IsRoot reports whether the project is at the workspace root.
func (project *Project) IsRoot() bool {
	return project.RelativePath == RootRelativePath
}

// Contains reports whether the workspace relative path rel lies in the project directory.
func (project *Project) Contains(rel string) bool {
	if project.IsRoot() {
		return true
	}

	return strings.HasPrefix(rel, project.RelativePath+"/")
}

// Projects is a flat list of projects. Nesting is expressed through Parent indexes.
type Projects []*Project

// SortByPath sorts the projects by relative path.
func (projects Projects) SortByPath() Projects {
	slices.SortFunc(projects, func(a, b *Project) int {
		return strings.Compare(a.RelativePath, b.RelativePath)
	})

	return projects
}

// RelativePaths returns the relative paths of the projects in their current order.
func (projects Projects) RelativePaths() []string {
	paths := make([]string, len(projects))

	for i, project := range projects {
		paths[i] = project.RelativePath
	}

	return paths
}

// ConfigPaths returns the configuration file paths of the projects in their current order.
func (projects Projects) ConfigPaths() []string {
	paths := make([]string, len(projects))

	for i, project := range projects {
		paths[i] = project.ConfigPath
	}

	return paths
}

// IndexByRelativePath maps every relative path to its position in projects.
func (projects Projects) IndexByRelativePath() map[string]int {
	index := make(map[string]int, len(projects))

	for i, project := range projects {
		index[project.RelativePath] = i
	}

	return index
}

// LinkParents sets Index to the position in projects and Parent to the position of the
// nearest enclosing project.
func (projects Projects) LinkParents() {
	index := projects.IndexByRelativePath()

	for i, project := range projects {
		project.Index = i
		project.Parent = NoParent

		if project.IsRoot() {
			continue
		}

		for dir := path.Dir(project.RelativePath); ; dir = path.Dir(dir) {
			if parent, ok := index[dir]; ok {
				project.Parent = parent
				break
			}

			if dir == RootRelativePath {
				break
			}
		}
	}
}

// Owner returns the index of the deepest project containing the workspace relative file path,
// or NoParent when no project contains it. index must come from IndexByRelativePath.
func Owner(index map[string]int, file string) int {
	for dir := path.Dir(file); ; dir = path.Dir(dir) {
		if owner, ok := index[dir]; ok {
			return owner
		}

		if dir == RootRelativePath || dir == "/" {
			return NoParent
		}
	}
}

func depthOf(rel string) int {
	if rel == RootRelativePath || rel == "" {
		return 0
	}

	return strings.Count(rel, "/") + 1
}
