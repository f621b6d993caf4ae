package git

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/storage/filesystem"
)

const gitDirPrefix = "gitdir:"

// Repository is an opened working tree.
type Repository struct {
	storage *filesystem.Storage
	repo    *git.Repository
	runner  *GitRunner

	// Root is the absolute top level directory of the working tree.
	Root string
	// GitDir is the absolute git directory. For linked worktrees and submodules it is the
	// directory the `.git` file points to.
	GitDir string
}

// Open opens the repository whose working tree is root.
func Open(root string) (*Repository, error) {
	gitDir, err := resolveGitDir(root)
	if err != nil {
		return nil, err
	}

	dotGit := osfs.New(gitDir)

	s := filesystem.NewStorageWithOptions(dotGit, cache.NewObjectLRUDefault(), filesystem.Options{KeepDescriptors: true})

	repo, err := git.Open(s, osfs.New(root))
	if err != nil {
		_ = s.Close()

		return nil, wrapError("git_open", root, ErrNotRepository)
	}

	return &Repository{
		storage: s,
		repo:    repo,
		Root:    root,
		GitDir:  gitDir,
	}, nil
}

// WithRunner sets the runner used for operations go-git does not cover.
func (r *Repository) WithRunner(runner *GitRunner) *Repository {
	r.runner = runner.WithWorkDir(r.Root)
	return r
}

// Close releases the file descriptors held by the storage.
func (r *Repository) Close() error {
	return r.storage.Close()
}

// TrackedFiles returns the slash separated paths of every file in the index, relative to the
// repository root and sorted. Submodule entries are skipped: their content belongs to
// another repository.
func (r *Repository) TrackedFiles() ([]string, error) {
	idx, err := r.storage.Index()
	if err != nil {
		return nil, wrapError("git_index", r.GitDir, ErrReadIndex)
	}

	files := make([]string, 0, len(idx.Entries))

	for _, entry := range idx.Entries {
		if entry.Mode == filemode.Submodule {
			continue
		}

		files = append(files, entry.Name)
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

// NotStaged returns the paths, relative to the repository root, that are either missing from
// the index or have working tree changes the index does not have.
func (r *Repository) NotStaged(ctx context.Context, paths ...string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	tracked, err := r.TrackedFiles()
	if err != nil {
		return nil, err
	}

	var (
		notStaged []string
		inIndex   []string
	)

	for _, path := range paths {
		if _, found := slices.BinarySearch(tracked, path); found {
			inIndex = append(inIndex, path)
		} else {
			notStaged = append(notStaged, path)
		}
	}

	if len(inIndex) > 0 {
		runner := r.runner
		if runner == nil {
			if runner, err = NewGitRunner(); err != nil {
				return nil, err
			}

			runner = runner.WithWorkDir(r.Root)
		}

		changed, err := runner.UnstagedFiles(ctx, inIndex...)
		if err != nil {
			return nil, err
		}

		notStaged = append(notStaged, changed...)
	}

	slices.Sort(notStaged)

	return slices.Compact(notStaged), nil
}

// resolveGitDir returns the git directory of the working tree at root, following a `.git`
// file to the directory it names.
func resolveGitDir(root string) (string, error) {
	dotGit := filepath.Join(root, git.GitDirName)

	info, err := os.Stat(dotGit)
	if err != nil {
		return "", wrapError("git_open", root, ErrNotRepository)
	}

	if info.IsDir() {
		return dotGit, nil
	}

	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", wrapError("git_open", dotGit, err)
	}

	line, _, _ := strings.Cut(string(data), "\n")

	target, ok := strings.CutPrefix(strings.TrimSpace(line), gitDirPrefix)
	if !ok {
		return "", wrapErrorWithContext("git_open", dotGit+": missing "+gitDirPrefix, ErrNotRepository)
	}

	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}

	return filepath.Clean(target), nil
}
