// Package filter selects which project directories take part in a run.
//
// Selectors are glob patterns relative to the workspace root, compiled with `/` as the
// separator so `*` never crosses directories while `**` does:
//
//	--project apps/*          # every project directly under apps, and their subprojects
//	--project libs/**/core    # any `core` directory below libs
//	--skip-project vendor     # nothing under vendor
//
// A pattern selects a directory when it matches the directory itself or one of its
// ancestors. The workspace root is always selected.
package filter

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
	"github.com/gruntwork-io/treehook/internal/errors"
)

const rootPath = "."

// Selectors holds compiled include and skip patterns.
type Selectors struct {
	include []pattern
	skip    []pattern
}

type pattern struct {
	glob glob.Glob
	raw  string
	// static is the leading part of raw without glob meta characters.
	static string
	// dynamic is true when raw contains glob meta characters.
	dynamic bool
}

// NewSelectors compiles the include and skip patterns.
func NewSelectors(include, skip []string) (*Selectors, error) {
	selectors := &Selectors{}

	for _, raw := range include {
		p, err := compile(raw)
		if err != nil {
			return nil, err
		}

		selectors.include = append(selectors.include, p)
	}

	for _, raw := range skip {
		p, err := compile(raw)
		if err != nil {
			return nil, err
		}

		selectors.skip = append(selectors.skip, p)
	}

	return selectors, nil
}

// Empty reports whether no selectors were given.
func (selectors *Selectors) Empty() bool {
	return selectors == nil || (len(selectors.include) == 0 && len(selectors.skip) == 0)
}

// SkipDir reports whether the scanner should not descend into the directory rel.
func (selectors *Selectors) SkipDir(rel string) bool {
	rel = normalize(rel)

	if selectors.Empty() || rel == rootPath {
		return false
	}

	if matchesSelfOrAncestor(selectors.skip, rel) {
		return true
	}

	if len(selectors.include) == 0 {
		return false
	}

	for _, p := range selectors.include {
		if p.mayContain(rel) {
			return false
		}
	}

	return true
}

// MatchProject reports whether the project at rel is selected.
func (selectors *Selectors) MatchProject(rel string) bool {
	rel = normalize(rel)

	if selectors.Empty() || rel == rootPath {
		return true
	}

	if matchesSelfOrAncestor(selectors.skip, rel) {
		return false
	}

	return len(selectors.include) == 0 || matchesSelfOrAncestor(selectors.include, rel)
}

func (selectors *Selectors) String() string {
	if selectors.Empty() {
		return ""
	}

	parts := make([]string, 0, len(selectors.include)+len(selectors.skip))

	for _, p := range selectors.include {
		parts = append(parts, p.raw)
	}

	for _, p := range selectors.skip {
		parts = append(parts, "!"+p.raw)
	}

	return strings.Join(parts, ", ")
}

// mayContain reports whether a directory matched by p can be rel or lie below or above rel.
func (p pattern) mayContain(rel string) bool {
	if p.glob.Match(rel) {
		return true
	}

	// rel is an ancestor of the pattern's fixed part, e.g. `apps` for `apps/web/*`.
	if p.static == rootPath || isAncestor(rel, p.static) || rel == p.static {
		return true
	}

	// rel lies below the fixed part and the rest of the pattern may still match deeper.
	if p.dynamic && isAncestor(p.static, rel) {
		return true
	}

	// rel lies below a directory the pattern matched.
	return matchesSelfOrAncestor([]pattern{p}, rel)
}

func compile(raw string) (pattern, error) {
	raw = normalize(raw)

	g, err := glob.Compile(raw, '/')
	if err != nil {
		return pattern{}, errors.New(InvalidSelectorError{Pattern: raw, Err: err})
	}

	p := pattern{glob: g, raw: raw, static: rootPath}

	segments := strings.Split(raw, "/")
	for i, segment := range segments {
		if strings.ContainsAny(segment, "*?[{") {
			p.dynamic = true
			break
		}

		p.static = strings.Join(segments[:i+1], "/")
	}

	return p, nil
}

func matchesSelfOrAncestor(patterns []pattern, rel string) bool {
	for dir := rel; dir != rootPath && dir != "/"; dir = path.Dir(dir) {
		for _, p := range patterns {
			if p.glob.Match(dir) {
				return true
			}
		}
	}

	return false
}

// isAncestor reports whether dir is a strict ancestor of rel.
func isAncestor(dir, rel string) bool {
	if dir == rootPath {
		return rel != rootPath
	}

	return strings.HasPrefix(rel, dir+"/")
}

func normalize(rel string) string {
	rel = path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	rel = strings.TrimPrefix(rel, "./")

	if rel == "" || rel == "/" {
		return rootPath
	}

	return rel
}
