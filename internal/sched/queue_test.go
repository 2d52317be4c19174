package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type admitted struct {
	id         string
	backfilled bool
}

// admitAll drives one admission round against a counter of free cpus.
func admitAll(q ReadyQueue, free int) []admitted {
	var got []admitted
	q.Admit(
		func() int { return free },
		func(rt *TaskRuntime, backfilled bool) {
			free -= rt.Desc.CPUs
			got = append(got, admitted{rt.ID(), backfilled})
		},
	)
	return got
}

func queueTasks() []*TaskRuntime {
	return []*TaskRuntime{
		NewTaskRuntime(TaskDescriptor{ID: "C", Quantum: 5, CPUs: 1, Duration: 5}),
		NewTaskRuntime(TaskDescriptor{ID: "A", Quantum: 20, CPUs: 2, Duration: 20}),
		NewTaskRuntime(TaskDescriptor{ID: "B", Quantum: 10, CPUs: 2, Duration: 10}),
	}
}

func TestFIFOQueueAdmitsHeadOnly(t *testing.T) {
	q := NewFIFOQueue()
	for _, rt := range queueTasks() {
		q.Push(rt)
	}

	got := admitAll(q, 3)
	assert.Equal(t, []admitted{{"A", false}}, got, "B blocks C even though C fits")
	assert.Equal(t, 2, q.Len())

	got = admitAll(q, 3)
	assert.Equal(t, []admitted{{"B", false}, {"C", false}}, got)
	assert.Equal(t, 0, q.Len())
}

func TestFIFOQueueEqualQuantumByID(t *testing.T) {
	q := NewFIFOQueue()
	q.Push(NewTaskRuntime(TaskDescriptor{ID: "T2", Quantum: 10, CPUs: 1, Duration: 10}))
	q.Push(NewTaskRuntime(TaskDescriptor{ID: "T1", Quantum: 10, CPUs: 1, Duration: 10}))

	got := admitAll(q, 1)
	assert.Equal(t, []admitted{{"T1", false}}, got)
}

func TestBackfillQueueAdmitsFirstFit(t *testing.T) {
	q := NewBackfillQueue()
	for _, rt := range queueTasks() {
		q.Push(rt)
	}

	got := admitAll(q, 3)
	assert.Equal(t, []admitted{{"A", false}, {"C", true}}, got)
	assert.Equal(t, 1, q.Len())

	got = admitAll(q, 1)
	assert.Empty(t, got, "B needs two cpus")
	assert.Equal(t, 1, q.Len())
}

func TestBackfillQueueRestartsFromTop(t *testing.T) {
	q := NewBackfillQueue()
	q.Push(NewTaskRuntime(TaskDescriptor{ID: "X", Quantum: 30, CPUs: 4, Duration: 30}))
	q.Push(NewTaskRuntime(TaskDescriptor{ID: "Y", Quantum: 20, CPUs: 1, Duration: 20}))
	q.Push(NewTaskRuntime(TaskDescriptor{ID: "Z", Quantum: 10, CPUs: 1, Duration: 10}))
	q.Push(NewTaskRuntime(TaskDescriptor{ID: "W", Quantum: 10, CPUs: 2, Duration: 10}))

	got := admitAll(q, 3)
	assert.Equal(t, []admitted{{"Y", true}, {"W", true}}, got)
	assert.Equal(t, 2, q.Len())
}
