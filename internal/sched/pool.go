// internal/sched/pool.go

package sched

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/pkg/errors"
)

// Pool is the set of free CPU ids. It is kept sorted so that allocation
// always hands out the smallest free ids.
type Pool struct {
	size int
	free *treeset.Set
}

// NewPool creates a pool with CPUs 0..size-1 all free.
func NewPool(size int) *Pool {
	free := treeset.NewWithIntComparator()
	for cpu := 0; cpu < size; cpu++ {
		free.Add(cpu)
	}
	return &Pool{size: size, free: free}
}

// Size is the total number of CPUs.
func (p *Pool) Size() int { return p.size }

// Free is the number of CPUs not currently allocated.
func (p *Pool) Free() int { return p.free.Size() }

// Allocate removes and returns the n smallest free CPU ids.
func (p *Pool) Allocate(n int) ([]int, error) {
	if n > p.free.Size() {
		return nil, errors.Wrapf(ErrPoolExhausted, "want %d cpus, %d free", n, p.free.Size())
	}

	cpus := make([]int, 0, n)
	it := p.free.Iterator()
	for len(cpus) < n && it.Next() {
		cpus = append(cpus, it.Value().(int))
	}
	for _, cpu := range cpus {
		p.free.Remove(cpu)
	}
	return cpus, nil
}

// Release returns CPUs to the pool.
func (p *Pool) Release(cpus []int) error {
	seen := make(map[int]struct{}, len(cpus))
	for _, cpu := range cpus {
		if cpu < 0 || cpu >= p.size {
			return errors.Errorf("cpu %d is not part of a %d cpu pool", cpu, p.size)
		}
		if _, dup := seen[cpu]; dup || p.free.Contains(cpu) {
			return errors.Errorf("cpu %d released twice", cpu)
		}
		seen[cpu] = struct{}{}
	}
	for _, cpu := range cpus {
		p.free.Add(cpu)
	}
	return nil
}

// FreeIDs lists the free CPU ids in ascending order.
func (p *Pool) FreeIDs() []int {
	ids := make([]int, 0, p.free.Size())
	for _, v := range p.free.Values() {
		ids = append(ids, v.(int))
	}
	return ids
}
