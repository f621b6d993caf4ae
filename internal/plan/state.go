package plan

import (
	"sync/atomic"

	"github.com/gruntwork-io/treehook/internal/component"
	"github.com/gruntwork-io/treehook/internal/errors"
)

// State is the lifecycle state of a plan slot.
type State int32

const (
	// Pending slots wait to be dispatched.
	Pending State = iota
	// Dispatched slots are handed to the runner.
	Dispatched
	// Completed slots finished running, successfully or not.
	Completed
	// Skipped slots never ran: they own no files, or the run was cut short.
	Skipped
)

func (state State) String() string {
	switch state {
	case Pending:
		return "pending"
	case Dispatched:
		return "dispatched"
	case Completed:
		return "completed"
	case Skipped:
		return "skipped"
	}

	return "unknown"
}

// Final reports whether no transition leaves state.
func (state State) Final() bool {
	return state == Completed || state == Skipped
}

var transitions = map[State][]State{
	Pending:    {Dispatched, Skipped},
	Dispatched: {Completed, Skipped},
}

func legal(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Entry is one slot of the plan: a project and the files it owns.
type Entry struct {
	Project *component.Project
	// Files are the files the project runs on.
	Files component.FileSet
	// Dropped are files the project owns but its own filters reject.
	Dropped component.FileSet

	state atomic.Int32
}

func newEntry(project *component.Project, files, dropped component.FileSet) *Entry {
	entry := &Entry{Project: project, Files: files, Dropped: dropped}

	if files.Empty() {
		entry.state.Store(int32(Skipped))
	}

	return entry
}

// State returns the current state.
func (entry *Entry) State() State {
	return State(entry.state.Load())
}

// Transition moves the slot from `from` to `to`. It fails when the slot is not in `from` or
// the move is not allowed.
func (entry *Entry) Transition(from, to State) error {
	if !legal(from, to) {
		return errors.New(IllegalTransitionError{Project: entry.Project.String(), From: from, To: to})
	}

	if !entry.state.CompareAndSwap(int32(from), int32(to)) {
		return errors.New(IllegalTransitionError{Project: entry.Project.String(), From: entry.State(), To: to})
	}

	return nil
}
