// Package report collects the outcome of every project run by `exec` and renders it as a run
// summary or as a CSV/JSON report file.
package report

import (
	"sync"
	"time"

	"github.com/gruntwork-io/treehook/internal/plan"
)

// Result captures the result of a run.
type Result string

// Reason captures the reason for a run result.
type Reason string

const (
	ResultSucceeded Result = "succeeded"
	ResultFailed    Result = "failed"
	ResultEarlyExit Result = "early exit"
	ResultExcluded  Result = "excluded"

	ReasonRunError Reason = "run error"
	ReasonNoFiles  Reason = "no files"
	ReasonAborted  Reason = "aborted"
)

// Run captures data for a single project run.
type Run struct {
	Started time.Time
	Ended   time.Time
	Reason  *Reason
	Cause   *string
	Name    string
	Result  Result
	Files   int
}

// Duration returns how long the run took, zero for runs that never started.
func (run *Run) Duration() time.Duration {
	if run.Started.IsZero() {
		return 0
	}

	return run.Ended.Sub(run.Started)
}

// Report captures data for a report or summary. It implements plan.Reporter, so it can be
// handed to plan.Dispatch directly.
type Report struct {
	runs []*Run
	mu   sync.RWMutex
}

// NewReport creates a new report.
func NewReport() *Report {
	return &Report{
		runs: make([]*Run, 0),
	}
}

// Report records a dispatch result.
func (r *Report) Report(result *plan.Result) {
	r.AddRun(NewRunFromResult(result))
}

// AddRun adds a run to the report.
func (r *Report) AddRun(run *Run) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs = append(r.runs, run)
}

// Runs returns the recorded runs in the order they were added.
func (r *Report) Runs() []*Run {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Run(nil), r.runs...)
}

// NewRunFromResult converts a dispatch result. A skipped project without files is excluded,
// while a skipped project with files was cut short by a failure or cancellation.
func NewRunFromResult(result *plan.Result) *Run {
	run := &Run{
		Name:    result.Project.String(),
		Started: result.Started,
		Files:   result.Files.Len(),
	}

	if !run.Started.IsZero() {
		run.Ended = run.Started.Add(result.Duration)
	}

	switch {
	case result.State == plan.Skipped && result.Files.Len() == 0:
		run.Result = ResultExcluded
		run.Reason = reasonPtr(ReasonNoFiles)
	case result.State == plan.Skipped:
		run.Result = ResultEarlyExit
		run.Reason = reasonPtr(ReasonAborted)
	case result.Err != nil:
		run.Result = ResultFailed
		run.Reason = reasonPtr(ReasonRunError)
	default:
		run.Result = ResultSucceeded
	}

	if result.Err != nil {
		cause := result.Err.Error()
		run.Cause = &cause
	}

	return run
}

func reasonPtr(reason Reason) *Reason {
	return &reason
}
