package config

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/gruntwork-io/treehook/internal/errors"
)

const matchTimeout = time.Second

// lookaheadPattern finds the constructs whose outcome depends on text after the match:
// lookaheads, `$`, `\Z`, `\z`, `\b` and `\B`. An escaped `\$` is caught as well, which only
// turns pruning off.
var lookaheadPattern = regexp.MustCompile(`\(\?[=!]|\$|\\[ZzbB]`)

// Filters is a pair of include/exclude patterns.
//
// Patterns follow the Python `re` dialect used by pre-commit configurations, including
// lookarounds, and are matched with search semantics: a pattern matches when it matches
// any part of the path.
type Filters struct {
	include *regexp2.Regexp
	exclude *regexp2.Regexp

	// excludePrunes is set when exclude can reject whole directories, see ExcludesDir.
	excludePrunes bool

	// Files is the raw include pattern. Empty matches everything.
	Files string
	// Exclude is the raw exclude pattern. Empty matches nothing.
	Exclude string
}

// NewFilters compiles the include and exclude patterns.
func NewFilters(files, exclude string) (*Filters, error) {
	filters := &Filters{Files: files, Exclude: exclude}

	var err error

	if filters.include, err = compile(files); err != nil {
		return nil, err
	}

	if filters.exclude, err = compile(exclude); err != nil {
		return nil, err
	}

	filters.excludePrunes = !lookaheadPattern.MatchString(exclude)

	return filters, nil
}

// MatchAll reports whether the filters let every path through.
func (filters *Filters) MatchAll() bool {
	return filters == nil || (filters.include == nil && filters.exclude == nil)
}

// Match reports whether the slash separated path is included and not excluded.
func (filters *Filters) Match(path string) bool {
	if filters == nil {
		return true
	}

	if filters.include != nil && !search(filters.include, path) {
		return false
	}

	return filters.exclude == nil || !search(filters.exclude, path)
}

// ExcludesDir reports whether the exclude pattern rejects every path below the directory rel,
// so the directory need not be walked. This holds when the pattern matches `rel/` and cannot
// look past the end of what it matched: a match inside the prefix `rel/` is then a match in
// every longer path. Patterns with lookaheads or end anchors are never used to prune.
func (filters *Filters) ExcludesDir(rel string) bool {
	if filters == nil || filters.exclude == nil || !filters.excludePrunes {
		return false
	}

	return search(filters.exclude, strings.TrimSuffix(rel, "/")+"/")
}

// Equal reports whether both filters use the same patterns.
func (filters *Filters) Equal(other *Filters) bool {
	if filters.MatchAll() || other.MatchAll() {
		return filters.MatchAll() == other.MatchAll()
	}

	return filters.Files == other.Files && filters.Exclude == other.Exclude
}

func compile(pattern string) (*regexp2.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, errors.Errorf("invalid regular expression %q: %w", pattern, err)
	}

	re.MatchTimeout = matchTimeout

	return re, nil
}

func search(re *regexp2.Regexp, path string) bool {
	ok, err := re.MatchString(path)
	return err == nil && ok
}
