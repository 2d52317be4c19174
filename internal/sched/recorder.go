package sched

// Idle labels a slice in which a CPU runs nothing.
const Idle = "-"

// UtilizationLog holds one label sequence per CPU, all of equal length,
// one label per slice.
type UtilizationLog [][]string

// CPUs is the number of sequences.
func (l UtilizationLog) CPUs() int { return len(l) }

// Slices is the number of sampled slices.
func (l UtilizationLog) Slices() int {
	if len(l) == 0 {
		return 0
	}
	return len(l[0])
}

// Busy counts the CPU-slices attributed to some task.
func (l UtilizationLog) Busy() int {
	busy := 0
	for _, seq := range l {
		for _, label := range seq {
			if label != Idle {
				busy++
			}
		}
	}
	return busy
}

// Ratio is the busy fraction of all CPU-slices, 0 for an empty log.
func (l UtilizationLog) Ratio() float64 {
	total := l.CPUs() * l.Slices()
	if total == 0 {
		return 0
	}
	return float64(l.Busy()) / float64(total)
}

// Count returns how many CPU-slices carry the given task id.
func (l UtilizationLog) Count(id string) int {
	n := 0
	for _, seq := range l {
		for _, label := range seq {
			if label == id {
				n++
			}
		}
	}
	return n
}

// Recorder samples which task occupies each CPU at a fixed slice width.
type Recorder struct {
	slice int
	logs  UtilizationLog
}

// NewRecorder creates a recorder for cpuCount CPUs sampling every slice
// time units.
func NewRecorder(cpuCount, slice int) *Recorder {
	logs := make(UtilizationLog, cpuCount)
	for cpu := range logs {
		logs[cpu] = []string{}
	}
	return &Recorder{slice: slice, logs: logs}
}

// Record samples [start, end) at start, start+slice, ... A CPU is attributed
// to a task only while the task still has work remaining.
func (r *Recorder) Record(start, end int, allocs []*Allocation) {
	owner := make(map[int]string, len(r.logs))
	for _, a := range allocs {
		if a.Task.Remaining <= 0 {
			continue
		}
		for _, cpu := range a.CPUs {
			if _, taken := owner[cpu]; !taken {
				owner[cpu] = a.Task.ID()
			}
		}
	}

	for t := start; t < end; t += r.slice {
		for cpu := range r.logs {
			label, ok := owner[cpu]
			if !ok {
				label = Idle
			}
			r.logs[cpu] = append(r.logs[cpu], label)
		}
	}
}

// Log returns the recorded sequences.
func (r *Recorder) Log() UtilizationLog { return r.logs }
