// Package worker provides a bounded pool for running tasks concurrently.
//
// Every submitted task gets its own goroutine, and a semaphore limits how many of them run at
// once. Errors returned by tasks, and panics raised by them, are collected and returned by
// Wait as a single multi-error. A task whose context is cancelled before a worker frees up is
// not started; the cancellation is recorded instead.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gruntwork-io/treehook/internal/errors"
)

// Task represents a unit of work that can be executed
type Task func(ctx context.Context) error

// Pool manages concurrent task execution with a configurable number of workers
type Pool struct {
	semaphore   chan struct{}
	allErrors   *errors.MultiError
	wg          sync.WaitGroup
	maxWorkers  int
	allErrorsMu sync.Mutex
	isStopping  atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified maximum number of concurrent workers
func NewWorkerPool(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	return &Pool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		allErrors:  &errors.MultiError{},
	}
}

// MaxWorkers returns the concurrency limit.
func (wp *Pool) MaxWorkers() int {
	return wp.maxWorkers
}

// Submit schedules task and reports whether it was accepted. Tasks are refused once the pool
// is stopping.
func (wp *Pool) Submit(ctx context.Context, task Task) bool {
	if wp.isStopping.Load() {
		return false
	}

	wp.wg.Add(1)

	go func() {
		defer wp.wg.Done()

		select {
		case wp.semaphore <- struct{}{}:
		case <-ctx.Done():
			wp.appendError(ctx.Err())
			return
		}

		defer func() { <-wp.semaphore }()

		defer errors.Recover(wp.appendError)

		if err := task(ctx); err != nil {
			wp.appendError(err)
		}
	}()

	return true
}

// Wait blocks until all submitted tasks are completed and returns their errors. The pool can
// be reused afterwards.
func (wp *Pool) Wait() error {
	wp.wg.Wait()

	wp.allErrorsMu.Lock()
	defer wp.allErrorsMu.Unlock()

	result := wp.allErrors.ErrorOrNil()
	wp.allErrors = &errors.MultiError{}

	return result
}

// Stop refuses further submissions. Tasks already submitted still run.
func (wp *Pool) Stop() {
	wp.isStopping.Store(true)
}

// GracefulStop refuses further submissions and waits for the submitted tasks.
func (wp *Pool) GracefulStop() error {
	wp.Stop()
	return wp.Wait()
}

// IsStopping returns whether the pool refuses new tasks.
func (wp *Pool) IsStopping() bool {
	return wp.isStopping.Load()
}

// appendError safely appends an error to allErrors
func (wp *Pool) appendError(err error) {
	if err == nil {
		return
	}

	wp.allErrorsMu.Lock()
	wp.allErrors = wp.allErrors.Append(err)
	wp.allErrorsMu.Unlock()
}
