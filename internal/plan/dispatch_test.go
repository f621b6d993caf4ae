package plan_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/plan"
	"github.com/gruntwork-io/treehook/test/helpers/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	results []*plan.Result
	mu      sync.Mutex
}

func (r *recorder) Report(result *plan.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, result)
}

func (r *recorder) projects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects := make([]string, 0, len(r.results))
	for _, result := range r.results {
		projects = append(projects, result.Project.String())
	}

	return projects
}

func TestDispatchReportsInPlanOrder(t *testing.T) {
	t.Parallel()

	p := newPlan(t, []string{".", "a", "b", "c", "d"}, "a/1", "b/2", "c/3", "d/4", "top")

	// Earlier entries take longer so they finish last.
	delays := map[string]time.Duration{"a": 40 * time.Millisecond, "b": 20 * time.Millisecond, "c": 10 * time.Millisecond}

	runner := plan.RunnerFunc(func(_ context.Context, project *component.Project, files component.FileSet, out io.Writer) error {
		time.Sleep(delays[project.String()])
		_, err := fmt.Fprintf(out, "%s:%d", project, files.Len())

		return err
	})

	rec := &recorder{}

	err := plan.Dispatch(t.Context(), logger.CreateLogger(), p, runner, plan.DispatchOptions{Jobs: 4, DepthBarrier: true, Reporter: rec})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "."}, rec.projects())

	for _, result := range rec.results {
		assert.Equal(t, plan.Completed, result.State)
		assert.Equal(t, fmt.Sprintf("%s:1", result.Project), string(result.Output))
	}
}

func TestDispatchDepthBarrier(t *testing.T) {
	t.Parallel()

	p := newPlan(t, []string{".", "a", "a/b", "a/b/c", "x", "x/y"}, "1", "a/1", "a/b/1", "a/b/c/1", "x/1", "x/y/1")

	var (
		mu        sync.Mutex
		completed = map[int]int{}
		violation bool
	)

	runner := plan.RunnerFunc(func(_ context.Context, project *component.Project, _ component.FileSet, _ io.Writer) error {
		mu.Lock()
		for depth, count := range completed {
			// Nothing shallower may have finished before a deeper project runs.
			if depth < project.Depth && count > 0 {
				violation = true
			}
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		completed[project.Depth]++
		mu.Unlock()

		return nil
	})

	err := plan.Dispatch(t.Context(), logger.CreateLogger(), p, runner, plan.DispatchOptions{Jobs: 8, DepthBarrier: true})
	require.NoError(t, err)

	assert.False(t, violation)
	assert.Equal(t, map[int]int{0: 1, 1: 2, 2: 2, 3: 1}, completed)
}

func TestDispatchWithoutBarrierRunsConcurrently(t *testing.T) {
	t.Parallel()

	p := newPlan(t, []string{".", "a", "a/b"}, "1", "a/1", "a/b/1")

	started := make(chan string, 3)
	release := make(chan struct{})

	runner := plan.RunnerFunc(func(_ context.Context, project *component.Project, _ component.FileSet, _ io.Writer) error {
		started <- project.String()
		<-release

		return nil
	})

	rec := &recorder{}
	errCh := make(chan error, 1)

	go func() {
		errCh <- plan.Dispatch(t.Context(), logger.CreateLogger(), p, runner, plan.DispatchOptions{Jobs: 3, Reporter: rec})
	}()

	seen := map[string]bool{}
	for range 3 {
		seen[<-started] = true
	}

	close(release)

	require.NoError(t, <-errCh)
	assert.Len(t, seen, 3)
	assert.Equal(t, []string{"a/b", "a", "."}, rec.projects())
}

func TestDispatchSkipsEmptyProjects(t *testing.T) {
	t.Parallel()

	p := newPlan(t, []string{".", "empty", "full"}, "full/a.go")

	var ran []string

	runner := plan.RunnerFunc(func(_ context.Context, project *component.Project, _ component.FileSet, _ io.Writer) error {
		ran = append(ran, project.String())
		return nil
	})

	rec := &recorder{}

	err := plan.Dispatch(t.Context(), logger.CreateLogger(), p, runner, plan.DispatchOptions{Jobs: 1, DepthBarrier: true, Reporter: rec})
	require.NoError(t, err)

	assert.Equal(t, []string{"full"}, ran)
	assert.Equal(t, []string{"empty", "full", "."}, rec.projects())
	assert.Equal(t, plan.Skipped, rec.results[0].State)
	assert.Equal(t, plan.Skipped, rec.results[2].State)
}

func TestDispatchCollectsFailures(t *testing.T) {
	t.Parallel()

	p := newPlan(t, []string{".", "a", "b"}, "1", "a/1", "b/1")

	runner := plan.RunnerFunc(func(_ context.Context, project *component.Project, _ component.FileSet, _ io.Writer) error {
		if project.String() == "a" {
			return errors.New("lint failed")
		}

		if project.String() == "b" {
			panic("runner crashed")
		}

		return nil
	})

	rec := &recorder{}

	err := plan.Dispatch(t.Context(), logger.CreateLogger(), p, runner, plan.DispatchOptions{Jobs: 2, DepthBarrier: true, Reporter: rec})
	require.Error(t, err)

	var failed plan.ProjectFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "a", failed.Project)

	assert.Contains(t, err.Error(), "runner crashed")
	assert.Equal(t, []string{"a", "b", "."}, rec.projects())
	assert.Equal(t, plan.Completed, rec.results[2].State)
}

func TestDispatchFailFast(t *testing.T) {
	t.Parallel()

	p := newPlan(t, []string{".", "a", "a/b"}, "1", "a/1", "a/b/1")

	runner := plan.RunnerFunc(func(_ context.Context, project *component.Project, _ component.FileSet, _ io.Writer) error {
		if project.String() == "a/b" {
			return errors.New("lint failed")
		}

		return nil
	})

	rec := &recorder{}

	err := plan.Dispatch(t.Context(), logger.CreateLogger(), p, runner, plan.DispatchOptions{Jobs: 1, DepthBarrier: true, FailFast: true, Reporter: rec})
	require.Error(t, err)

	require.Len(t, rec.results, 3)
	assert.Equal(t, []string{"a/b", "a", "."}, rec.projects())
	assert.Equal(t, plan.Completed, rec.results[0].State)
	assert.Equal(t, plan.Skipped, rec.results[1].State)
	assert.Equal(t, plan.Skipped, rec.results[2].State)
}

func TestDispatchCancelled(t *testing.T) {
	t.Parallel()

	p := newPlan(t, []string{".", "a"}, "1", "a/1")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	runner := plan.RunnerFunc(func(context.Context, *component.Project, component.FileSet, io.Writer) error {
		t.Error("runner must not be called")
		return nil
	})

	err := plan.Dispatch(ctx, logger.CreateLogger(), p, runner, plan.DefaultDispatchOptions())
	require.ErrorIs(t, err, context.Canceled)

	for _, entry := range p.Entries() {
		assert.Equal(t, plan.Skipped, entry.State())
	}
}
