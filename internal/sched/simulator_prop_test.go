package sched

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const (
	propCPUs  = 4
	propSlice = 5
	propTasks = 6
)

// genWorkload builds slice-aligned workloads so every run covers whole
// slices and the recorder can be checked exactly. Shrinking may leave the
// slices with different lengths.
func genWorkload(quanta, cpus, durations []int) []TaskDescriptor {
	n := min(len(quanta), len(cpus), len(durations))
	tasks := make([]TaskDescriptor, n)
	for i := range tasks {
		tasks[i] = TaskDescriptor{
			ID:       fmt.Sprintf("T%d", i+1),
			Quantum:  quanta[i] * propSlice,
			CPUs:     cpus[i],
			Duration: durations[i] * propSlice,
		}
	}
	return tasks
}

func workloadGens() []gopter.Gen {
	return []gopter.Gen{
		gen.SliceOfN(propTasks, gen.IntRange(1, 4)),
		gen.SliceOfN(propTasks, gen.IntRange(1, propCPUs)),
		gen.SliceOfN(propTasks, gen.IntRange(1, 12)),
	}
}

func runBoth(tasks []TaskDescriptor) ([]Result, error) {
	sim := NewSimulator(Config{CPUCount: propCPUs, SliceDuration: propSlice}, Options{})
	var results []Result
	for _, strategy := range []Strategy{StrategyFIFO, StrategyBackfill} {
		res, err := sim.Run(strategy, tasks)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func Test_WorkConservation(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("every task occupies cpus*duration cpu-time", prop.ForAll(
		func(quanta, cpus, durations []int) bool {
			tasks := genWorkload(quanta, cpus, durations)
			results, err := runBoth(tasks)
			if err != nil {
				return false
			}
			for _, res := range results {
				for _, task := range tasks {
					if res.Log.Count(task.ID)*propSlice != task.CPUs*task.Duration {
						return false
					}
				}
			}
			return true
		},
		workloadGens()...,
	))

	properties.TestingRun(t)
}

func Test_Disjointness(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("a task holds all or none of its cpus in every slice", prop.ForAll(
		func(quanta, cpus, durations []int) bool {
			tasks := genWorkload(quanta, cpus, durations)
			results, err := runBoth(tasks)
			if err != nil {
				return false
			}
			for _, res := range results {
				if res.Log.Slices()*propSlice != res.Total {
					return false
				}
				for i := 0; i < res.Log.Slices(); i++ {
					held := map[string]int{}
					for cpu := range res.Log {
						if len(res.Log[cpu]) != res.Log.Slices() {
							return false
						}
						if label := res.Log[cpu][i]; label != Idle {
							held[label]++
						}
					}
					for _, task := range tasks {
						if n := held[task.ID]; n != 0 && n != task.CPUs {
							return false
						}
					}
				}
			}
			return true
		},
		workloadGens()...,
	))

	properties.TestingRun(t)
}

func Test_Determinism(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("identical input gives identical output", prop.ForAll(
		func(quanta, cpus, durations []int) bool {
			first, err := runBoth(genWorkload(quanta, cpus, durations))
			if err != nil {
				return false
			}
			second, err := runBoth(genWorkload(quanta, cpus, durations))
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		workloadGens()...,
	))
	properties.Property("total time is the last completion", prop.ForAll(
		func(quanta, cpus, durations []int) bool {
			tasks := genWorkload(quanta, cpus, durations)
			results, err := runBoth(tasks)
			if err != nil {
				return false
			}
			for _, res := range results {
				last := 0
				for _, done := range res.Completions {
					if done > last {
						last = done
					}
				}
				if last != res.Total || len(res.Completions) != len(tasks) {
					return false
				}
			}
			return true
		},
		workloadGens()...,
	))

	properties.TestingRun(t)
}
