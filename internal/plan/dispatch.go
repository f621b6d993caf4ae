package plan

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/queue"
	"github.com/gruntwork-io/treehook/internal/telemetry"
	"github.com/gruntwork-io/treehook/internal/worker"
	"github.com/gruntwork-io/treehook/pkg/log"
)

// Runner runs a project on its files. Output written to out is buffered and reported with
// the result.
type Runner interface {
	Run(ctx context.Context, project *component.Project, files component.FileSet, out io.Writer) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, project *component.Project, files component.FileSet, out io.Writer) error

func (fn RunnerFunc) Run(ctx context.Context, project *component.Project, files component.FileSet, out io.Writer) error {
	return fn(ctx, project, files, out)
}

// Result is the outcome of one slot.
type Result struct {
	Project  *component.Project
	Err      error
	Files    component.FileSet
	Started  time.Time
	Output   []byte
	Duration time.Duration
	State    State
}

// Reporter receives results in plan order.
type Reporter interface {
	Report(result *Result)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(result *Result)

func (fn ReporterFunc) Report(result *Result) {
	fn(result)
}

// DispatchOptions controls Dispatch.
type DispatchOptions struct {
	// Reporter receives every result, skipped slots included. May be nil.
	Reporter Reporter
	// Jobs is the number of projects run concurrently.
	Jobs int
	// DepthBarrier finishes every project of one depth before projects of the next depth
	// start.
	DepthBarrier bool
	// FailFast skips the slots not yet dispatched once a project fails.
	FailFast bool
}

// DefaultDispatchOptions runs one project at a time with depth barriers.
func DefaultDispatchOptions() DispatchOptions {
	return DispatchOptions{
		Jobs:         1,
		DepthBarrier: true,
	}
}

// Dispatch runs every pending slot of p through runner and reports the results strictly in
// plan order, whatever order the projects finish in. It returns the failures of all projects.
func Dispatch(ctx context.Context, l log.Logger, p *Plan, runner Runner, opts DispatchOptions) error {
	var (
		entries = p.Entries()
		results = make([]*Result, len(entries))
		done    = make([]chan struct{}, len(entries))
		pool    = worker.NewWorkerPool(opts.Jobs)
		errs    = &errors.MultiError{}
		failed  atomic.Bool
	)

	defer pool.Stop()

	l.Debugf("Dispatching %d of %d projects with %d jobs", len(p.Runnable()), len(entries), pool.MaxWorkers())

	for _, group := range groups(entries, opts.DepthBarrier) {
		for _, i := range group {
			entry := entries[i]

			if entry.State() != Pending {
				results[i] = &Result{Project: entry.Project, Files: entry.Files, State: entry.State()}
				continue
			}

			done[i] = make(chan struct{})

			// Tasks must start even after cancellation so that every slot is settled.
			pool.Submit(context.WithoutCancel(ctx), func(context.Context) error {
				defer close(done[i])

				results[i] = runEntry(ctx, entry, runner, &failed)

				if results[i].Err != nil && opts.FailFast {
					failed.Store(true)
				}

				return nil
			})
		}

		for _, i := range group {
			if done[i] != nil {
				<-done[i]
			}

			result := results[i]

			if result.Err != nil {
				errs = errs.Append(errors.New(ProjectFailedError{Project: result.Project.String(), Err: result.Err}))
			}

			if opts.Reporter != nil {
				opts.Reporter.Report(result)
			}
		}
	}

	if err := pool.Wait(); err != nil {
		errs = errs.Append(err)
	}

	if err := ctx.Err(); err != nil {
		errs = errs.Append(errors.New(err))
	}

	return errs.ErrorOrNil()
}

func runEntry(ctx context.Context, entry *Entry, runner Runner, failed *atomic.Bool) (result *Result) {
	result = &Result{Project: entry.Project, Files: entry.Files}

	if ctx.Err() != nil || failed.Load() {
		if err := entry.Transition(Pending, Skipped); err != nil {
			result.Err = err
		}

		result.State = entry.State()

		return result
	}

	if err := entry.Transition(Pending, Dispatched); err != nil {
		result.Err = err
		result.State = entry.State()

		return result
	}

	var out bytes.Buffer

	start := time.Now()
	result.Started = start

	defer func() {
		result.Output = out.Bytes()
		result.Duration = time.Since(start)

		if err := entry.Transition(Dispatched, Completed); err != nil && result.Err == nil {
			result.Err = err
		}

		result.State = entry.State()
	}()

	defer errors.Recover(func(err error) {
		result.Err = err
	})

	attrs := map[string]any{"project": entry.Project.String(), "files": entry.Files.Len()}

	result.Err = telemetry.TelemeterFromContext(ctx).Collect(ctx, "run_project", attrs, func(ctx context.Context) error {
		return runner.Run(ctx, entry.Project, entry.Files, &out)
	})

	return result
}

// groups splits the slot indexes into the batches run together. With a barrier every depth
// level of the queue is its own batch.
func groups(entries []*Entry, barrier bool) [][]int {
	if len(entries) == 0 {
		return nil
	}

	if !barrier {
		return [][]int{indexRange(0, len(entries))}
	}

	projects := make(component.Projects, len(entries))
	for i, entry := range entries {
		projects[i] = entry.Project
	}

	var (
		batches = make([][]int, 0, len(entries))
		start   int
	)

	for _, level := range queue.Levels(projects) {
		batches = append(batches, indexRange(start, start+len(level)))
		start += len(level)
	}

	return batches
}

func indexRange(start, end int) []int {
	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, i)
	}

	return indexes
}
