package git

import "context"

// UnstagedFiles returns which of paths have changes in the working tree that are not in the
// index. Paths are relative to the working directory, which must be the repository root.
func (g *GitRunner) UnstagedFiles(ctx context.Context, paths ...string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	args := append([]string{"diff", "--name-only", "--no-ext-diff", "-z", "--"}, paths...)

	output, err := g.run(ctx, "git_diff", args...)
	if err != nil {
		return nil, err
	}

	return splitNul(output), nil
}
