// internal/sched/running.go

package sched

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Allocation is a running task together with the CPUs it holds and the end
// of its current run.
type Allocation struct {
	Task  *TaskRuntime
	CPUs  []int
	Start int
	End   int
}

// runningSet keeps allocations ordered by end time and task id so both the
// next completion and the release order of simultaneous completions are
// fixed.
type runningSet struct {
	rbt *redblacktree.Tree
}

func newRunningSet() *runningSet {
	return &runningSet{rbt: redblacktree.NewWith(cmp)}
}

func (r *runningSet) Len() int { return r.rbt.Size() }

func (r *runningSet) Add(a *Allocation) {
	r.rbt.Put(nodeKey{end: a.End, id: a.Task.ID()}, a)
}

// NextEnd is the earliest end time among the running allocations.
func (r *runningSet) NextEnd() (int, bool) {
	node := r.rbt.Left()
	if node == nil {
		return 0, false
	}
	return node.Key.(nodeKey).end, true
}

// PopEnded removes and returns, in ascending task id, every allocation
// ending at or before now.
func (r *runningSet) PopEnded(now int) []*Allocation {
	var ended []*Allocation
	for {
		node := r.rbt.Left()
		if node == nil || node.Key.(nodeKey).end > now {
			return ended
		}
		r.rbt.Remove(node.Key)
		ended = append(ended, node.Value.(*Allocation))
	}
}

// Allocations lists the running allocations in tree order.
func (r *runningSet) Allocations() []*Allocation {
	values := r.rbt.Values()
	allocs := make([]*Allocation, 0, len(values))
	for _, v := range values {
		allocs = append(allocs, v.(*Allocation))
	}
	return allocs
}

// nodeKey is used as a key in the red-black tree.
type nodeKey struct {
	end int
	id  string
}

// cmp implements the Comparator for red-black tree ordering.
func cmp(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.end < kb.end:
		return -1
	case ka.end > kb.end:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}
