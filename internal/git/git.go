// Package git provides the version control operations treehook needs: listing tracked files
// and checking whether configuration files are staged.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// GitRunner handles git command execution
type GitRunner struct {
	GitPath string
	WorkDir string
}

// NewGitRunner creates a new GitRunner instance
func NewGitRunner() (*GitRunner, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, wrapErrorWithContext("git", "git not found", ErrCommandSpawn)
	}

	return &GitRunner{GitPath: gitPath}, nil
}

// WithWorkDir returns a new GitRunner with the specified working directory
func (g *GitRunner) WithWorkDir(workDir string) *GitRunner {
	copy := *g
	copy.WorkDir = workDir

	return &copy
}

// RequiresWorkDir returns an error if no working directory is set
func (g *GitRunner) RequiresWorkDir() error {
	if g.WorkDir == "" {
		return wrapErrorWithContext("git", "no working directory set", ErrNoWorkDir)
	}

	return nil
}

// Init creates an empty repository in the working directory.
func (g *GitRunner) Init(ctx context.Context) error {
	_, err := g.run(ctx, "git_init", "init", "--quiet")
	return err
}

// Add stages the given paths, relative to the working directory.
func (g *GitRunner) Add(ctx context.Context, paths ...string) error {
	_, err := g.run(ctx, "git_add", append([]string{"add", "--"}, paths...)...)
	return err
}

func (g *GitRunner) run(ctx context.Context, op string, args ...string) ([]byte, error) {
	if err := g.RequiresWorkDir(); err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer

	cmd := g.prepareCommand(ctx, args[0], args[1:]...)
	cmd.Dir = g.WorkDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, wrapErrorWithContext(op, strings.TrimSpace(stderr.String()), ErrCommandSpawn)
	}

	return stdout.Bytes(), nil
}

func (g *GitRunner) prepareCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, g.GitPath, append([]string{name}, args...)...)
	// Keep the output stable regardless of the user's locale and pager settings.
	cmd.Env = append(cmd.Environ(), "LC_ALL=C", "GIT_PAGER=cat")

	return cmd
}

// splitNul splits `-z` output into its records.
func splitNul(output []byte) []string {
	records := strings.Split(string(output), "\x00")

	result := make([]string, 0, len(records))

	for _, record := range records {
		if record != "" {
			result = append(result, record)
		}
	}

	return result
}
