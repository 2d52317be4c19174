package sched

import "github.com/pkg/errors"

var (
	// ErrInvalidTask is returned for malformed task descriptors.
	ErrInvalidTask = errors.New("invalid task")
	// ErrInvalidConfig is returned when the simulation parameters are out of range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnschedulable is returned when a task needs more CPUs than the pool has.
	ErrUnschedulable = errors.New("unschedulable task")
	// ErrPoolExhausted is returned when more CPUs are requested than are free.
	ErrPoolExhausted = errors.New("cpu pool exhausted")
)
