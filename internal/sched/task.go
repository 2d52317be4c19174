package sched

import (
	"strings"

	"github.com/pkg/errors"
)

// TaskDescriptor is the immutable description of one task in a workload.
type TaskDescriptor struct {
	ID       string `yaml:"id" json:"id"`
	Quantum  int    `yaml:"quantum" json:"quantum"`   // max contiguous run per admission
	CPUs     int    `yaml:"cpus" json:"cpus"`         // CPUs held while running
	Duration int    `yaml:"duration" json:"duration"` // total work at t=0
}

// Validate rejects descriptors that can never be simulated meaningfully.
func (d TaskDescriptor) Validate() error {
	switch {
	case strings.TrimSpace(d.ID) == "":
		return errors.Wrap(ErrInvalidTask, "empty task id")
	case d.Quantum <= 0:
		return errors.Wrapf(ErrInvalidTask, "task %s: quantum must be positive, got %d", d.ID, d.Quantum)
	case d.CPUs <= 0:
		return errors.Wrapf(ErrInvalidTask, "task %s: cpus must be positive, got %d", d.ID, d.CPUs)
	case d.Duration <= 0:
		return errors.Wrapf(ErrInvalidTask, "task %s: duration must be positive, got %d", d.ID, d.Duration)
	}
	return nil
}

// TaskRuntime is the mutable state of a task during one simulation.
// The same runtime is re-queued after every partial run.
type TaskRuntime struct {
	Desc      TaskDescriptor
	Remaining int
}

// NewTaskRuntime creates a runtime with all of its work outstanding.
func NewTaskRuntime(d TaskDescriptor) *TaskRuntime {
	return &TaskRuntime{
		Desc:      d,
		Remaining: d.Duration,
	}
}

// ID returns the task id.
func (rt *TaskRuntime) ID() string { return rt.Desc.ID }

// NextRun is the length of the next run: one quantum, or less for the tail.
func (rt *TaskRuntime) NextRun() int {
	if rt.Remaining < rt.Desc.Quantum {
		return rt.Remaining
	}
	return rt.Desc.Quantum
}

// byPriority orders runtimes for admission: larger quantum first, ties on
// ascending task id.
func byPriority(a, b *TaskRuntime) int {
	switch {
	case a.Desc.Quantum > b.Desc.Quantum:
		return -1
	case a.Desc.Quantum < b.Desc.Quantum:
		return 1
	case a.Desc.ID < b.Desc.ID:
		return -1
	case a.Desc.ID > b.Desc.ID:
		return 1
	default:
		return 0
	}
}

// priorityComparator adapts byPriority to the gods containers.
func priorityComparator(a, b interface{}) int {
	return byPriority(a.(*TaskRuntime), b.(*TaskRuntime))
}
