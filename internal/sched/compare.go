package sched

// Comparison holds the outputs of both strategies on one workload.
type Comparison struct {
	FIFO        Result `json:"fifo" yaml:"fifo"`
	Backfill    Result `json:"backfill" yaml:"backfill"`
	Improvement int    `json:"improvement" yaml:"improvement"` // max(0, fifo - backfill)
}

// Compare runs both strategies on independent copies of the workload.
func (s *Simulator) Compare(tasks []TaskDescriptor) (Comparison, error) {
	fifo, err := s.Run(StrategyFIFO, copyTasks(tasks))
	if err != nil {
		return Comparison{}, err
	}
	backfill, err := s.Run(StrategyBackfill, copyTasks(tasks))
	if err != nil {
		return Comparison{}, err
	}

	improvement := fifo.Total - backfill.Total
	if improvement < 0 {
		improvement = 0
	}
	return Comparison{
		FIFO:        fifo,
		Backfill:    backfill,
		Improvement: improvement,
	}, nil
}

func copyTasks(tasks []TaskDescriptor) []TaskDescriptor {
	return append([]TaskDescriptor(nil), tasks...)
}
