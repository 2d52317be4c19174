// internal/sched/queue.go

package sched

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/trees/binaryheap"
)

// ReadyQueue holds tasks waiting for CPUs. The admission discipline lives
// entirely in Admit, which is the only behavioral difference between
// strategies.
type ReadyQueue interface {
	Push(rt *TaskRuntime)
	Len() int
	// Admit hands every task the discipline lets in this round to start.
	// free reports the current number of free CPUs and shrinks after each
	// start. backfilled is true when the task jumped ahead of a waiting task
	// with higher priority.
	Admit(free func() int, start func(rt *TaskRuntime, backfilled bool))
}

// FIFOQueue is a priority heap that only ever admits its head.
type FIFOQueue struct {
	heap *binaryheap.Heap
}

// NewFIFOQueue creates an empty heap ordered by priority.
func NewFIFOQueue() *FIFOQueue {
	return &FIFOQueue{heap: binaryheap.NewWith(priorityComparator)}
}

func (q *FIFOQueue) Push(rt *TaskRuntime) { q.heap.Push(rt) }

func (q *FIFOQueue) Len() int { return q.heap.Size() }

// Admit pops the head while it fits and stops at the first head that does
// not, even if a task further back would fit.
func (q *FIFOQueue) Admit(free func() int, start func(*TaskRuntime, bool)) {
	for {
		head, ok := q.heap.Peek()
		if !ok {
			return
		}
		rt := head.(*TaskRuntime)
		if rt.Desc.CPUs > free() {
			return
		}
		q.heap.Pop()
		start(rt, false)
	}
}

// BackfillQueue is a plain list re-sorted at the start of every round.
type BackfillQueue struct {
	list *arraylist.List
}

// NewBackfillQueue creates an empty list.
func NewBackfillQueue() *BackfillQueue {
	return &BackfillQueue{list: arraylist.New()}
}

// Push appends; order is restored by the next Admit.
func (q *BackfillQueue) Push(rt *TaskRuntime) { q.list.Add(rt) }

func (q *BackfillQueue) Len() int { return q.list.Size() }

// Admit sorts the list by priority and repeats a top-down scan, admitting the
// first task that fits and restarting, until one full scan admits nothing.
func (q *BackfillQueue) Admit(free func() int, start func(*TaskRuntime, bool)) {
	q.list.Sort(priorityComparator)

	for {
		idx := q.firstFit(free())
		if idx < 0 {
			return
		}
		v, _ := q.list.Get(idx)
		q.list.Remove(idx)
		start(v.(*TaskRuntime), idx > 0)
	}
}

func (q *BackfillQueue) firstFit(free int) int {
	for i := 0; i < q.list.Size(); i++ {
		v, _ := q.list.Get(i)
		if v.(*TaskRuntime).Desc.CPUs <= free {
			return i
		}
	}
	return -1
}
