package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func alloc(id string, start, end int, cpus ...int) *Allocation {
	return &Allocation{
		Task:  NewTaskRuntime(TaskDescriptor{ID: id, Quantum: end - start, CPUs: len(cpus), Duration: end - start}),
		CPUs:  cpus,
		Start: start,
		End:   end,
	}
}

func TestRunningSetOrder(t *testing.T) {
	r := newRunningSet()
	_, ok := r.NextEnd()
	assert.False(t, ok)

	r.Add(alloc("B", 0, 10, 0))
	r.Add(alloc("A", 0, 10, 1))
	r.Add(alloc("C", 0, 5, 2))

	next, ok := r.NextEnd()
	assert.True(t, ok)
	assert.Equal(t, 5, next)

	ended := r.PopEnded(5)
	assert.Len(t, ended, 1)
	assert.Equal(t, "C", ended[0].Task.ID())

	ended = r.PopEnded(10)
	assert.Len(t, ended, 2)
	assert.Equal(t, "A", ended[0].Task.ID(), "simultaneous ends release by id")
	assert.Equal(t, "B", ended[1].Task.ID())
	assert.Equal(t, 0, r.Len())
}
