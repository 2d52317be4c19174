package sched

import (
	"github.com/uber-go/tally/v4"
)

// metrics is the per-strategy set of simulation metrics.
type metrics struct {
	admissions  tally.Counter
	backfills   tally.Counter
	preemptions tally.Counter
	completions tally.Counter
	makespan    tally.Gauge
	utilization tally.Gauge
}

func newMetrics(scope tally.Scope, strategy Strategy) *metrics {
	s := scope.Tagged(map[string]string{"strategy": strategy.String()})
	return &metrics{
		admissions:  s.Counter("admissions"),
		backfills:   s.Counter("backfills"),
		preemptions: s.Counter("preemptions"),
		completions: s.Counter("completions"),
		makespan:    s.Gauge("makespan"),
		utilization: s.Gauge("utilization"),
	}
}
