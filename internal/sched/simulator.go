// internal/sched/simulator.go

package sched

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
)

// Strategy selects the admission discipline.
type Strategy int

const (
	// StrategyFIFO admits only the head of the priority queue.
	StrategyFIFO Strategy = iota
	// StrategyBackfill admits any ready task that fits (EASY backfilling).
	StrategyBackfill
)

func (s Strategy) String() string {
	switch s {
	case StrategyFIFO:
		return "fifo"
	case StrategyBackfill:
		return "backfill"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a strategy name back to its value.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "fifo":
		return StrategyFIFO, nil
	case "backfill":
		return StrategyBackfill, nil
	}
	return 0, errors.Errorf("unknown strategy %q", name)
}

// MarshalText encodes the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a strategy name.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Strategy) newQueue() ReadyQueue {
	if s == StrategyBackfill {
		return NewBackfillQueue()
	}
	return NewFIFOQueue()
}

// Options carries the optional collaborators of a Simulator.
type Options struct {
	Logger log.FieldLogger // discarded when nil
	Scope  tally.Scope     // tally.NoopScope when nil
	Events EventSink       // no events when nil
}

// Result is the output of one simulation.
type Result struct {
	Strategy    Strategy       `json:"strategy" yaml:"strategy"`
	Log         UtilizationLog `json:"log" yaml:"log"`
	Total       int            `json:"total" yaml:"total"`
	Completions map[string]int `json:"completions" yaml:"completions"` // finish time per task id
}

// Simulator runs workloads under a fixed configuration.
type Simulator struct {
	cfg    Config
	logger log.FieldLogger
	scope  tally.Scope
	events EventSink
}

// NewSimulator creates a simulator. The configuration is validated by Run.
func NewSimulator(cfg Config, opts Options) *Simulator {
	logger := opts.Logger
	if logger == nil {
		l := log.New()
		l.Out = io.Discard
		logger = l
	}
	scope := opts.Scope
	if scope == nil {
		scope = tally.NoopScope
	}
	return &Simulator{
		cfg:    cfg,
		logger: logger,
		scope:  scope,
		events: opts.Events,
	}
}

// Config returns the simulator's configuration.
func (s *Simulator) Config() Config { return s.cfg }

// Validate checks the configuration and every task, including duplicate ids
// and tasks that need more CPUs than the pool has.
func (s *Simulator) Validate(tasks []TaskDescriptor) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return errors.Wrapf(ErrInvalidTask, "task %s already exists", t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.CPUs > s.cfg.CPUCount {
			return errors.Wrapf(ErrUnschedulable, "task %s needs %d cpus, pool has %d", t.ID, t.CPUs, s.cfg.CPUCount)
		}
	}
	return nil
}

// Run simulates the workload under one strategy until every task is done.
func (s *Simulator) Run(strategy Strategy, tasks []TaskDescriptor) (Result, error) {
	if err := s.Validate(tasks); err != nil {
		return Result{}, err
	}

	r := s.newSimulation(strategy, len(tasks))
	for _, t := range tasks {
		r.ready.Push(NewTaskRuntime(t))
	}

	if err := r.loop(); err != nil {
		return Result{}, err
	}

	res := Result{
		Strategy:    strategy,
		Log:         r.recorder.Log(),
		Total:       r.clock.Now(),
		Completions: r.completions,
	}
	r.metrics.makespan.Update(float64(res.Total))
	r.metrics.utilization.Update(res.Log.Ratio())
	r.logger.WithFields(log.Fields{
		"total":       res.Total,
		"tasks":       len(tasks),
		"events":      r.clock.Steps(),
		"utilization": res.Log.Ratio(),
	}).Info("Simulation finished")
	return res, nil
}

func (s *Simulator) newSimulation(strategy Strategy, tasks int) *simulation {
	return &simulation{
		strategy:    strategy,
		ready:       strategy.newQueue(),
		pool:        NewPool(s.cfg.CPUCount),
		running:     newRunningSet(),
		recorder:    NewRecorder(s.cfg.CPUCount, s.cfg.SliceDuration),
		clock:       NewSimClock(),
		completions: make(map[string]int, tasks),
		logger:      s.logger.WithField("strategy", strategy.String()),
		metrics:     newMetrics(s.scope, strategy),
		events:      s.events,
	}
}

// simulation is the state of one Run. Nothing in it outlives the call.
type simulation struct {
	strategy    Strategy
	ready       ReadyQueue
	pool        *Pool
	running     *runningSet
	recorder    *Recorder
	clock       *SimClock
	completions map[string]int
	logger      log.FieldLogger
	metrics     *metrics
	events      EventSink
	err         error // first failure inside an admission callback
}

func (r *simulation) loop() error {
	for r.ready.Len() > 0 || r.running.Len() > 0 {
		// 1) admission round
		r.ready.Admit(r.pool.Free, r.start)
		if r.err != nil {
			return r.err
		}

		// 2) tasks wait with every cpu free: nothing will ever change
		next, ok := r.running.NextEnd()
		if !ok {
			return errors.Wrapf(ErrUnschedulable, "%d tasks waiting on an idle pool of %d cpus at t=%d",
				r.ready.Len(), r.pool.Size(), r.clock.Now())
		}

		// 3) sample and advance to the next completion
		r.recorder.Record(r.clock.Now(), next, r.running.Allocations())
		if err := r.clock.AdvanceTo(next); err != nil {
			return err
		}

		// 4) release ended runs, requeue or finish
		for _, a := range r.running.PopEnded(next) {
			if err := r.release(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *simulation) start(rt *TaskRuntime, backfilled bool) {
	if r.err != nil {
		return
	}
	cpus, err := r.pool.Allocate(rt.Desc.CPUs)
	if err != nil {
		r.err = errors.Wrapf(err, "admit task %s", rt.ID())
		return
	}
	now := r.clock.Now()
	a := &Allocation{
		Task:  rt,
		CPUs:  cpus,
		Start: now,
		End:   now + rt.NextRun(),
	}
	r.running.Add(a)

	kind := StatusAdmit
	r.metrics.admissions.Inc(1)
	if backfilled {
		kind = StatusBackfill
		r.metrics.backfills.Inc(1)
	}
	r.logger.WithFields(log.Fields{
		"task": rt.ID(),
		"time": now,
		"end":  a.End,
		"cpus": cpus,
		"free": r.pool.FreeIDs(),
	}).Debug(kind.String())
	r.err = r.emit(kind, rt, cpus)
}

func (r *simulation) release(a *Allocation) error {
	rt := a.Task
	rt.Remaining -= a.End - a.Start
	if err := r.pool.Release(a.CPUs); err != nil {
		return errors.Wrapf(err, "release task %s", rt.ID())
	}

	kind := StatusPreempt
	if rt.Remaining > 0 {
		r.ready.Push(rt)
		r.metrics.preemptions.Inc(1)
	} else {
		kind = StatusFinish
		r.completions[rt.ID()] = r.clock.Now()
		r.metrics.completions.Inc(1)
	}
	r.logger.WithFields(log.Fields{
		"task":      rt.ID(),
		"time":      r.clock.Now(),
		"remaining": rt.Remaining,
	}).Debug(kind.String())
	return r.emit(kind, rt, a.CPUs)
}

func (r *simulation) emit(kind StatusKind, rt *TaskRuntime, cpus []int) error {
	if r.events == nil {
		return nil
	}
	ev := StatusEvent{
		Time:      r.clock.Now(),
		Strategy:  r.strategy,
		Kind:      kind,
		TaskID:    rt.ID(),
		CPUs:      append([]int(nil), cpus...),
		Remaining: rt.Remaining,
	}
	return errors.Wrap(r.events.Handle(ev), "handle event")
}
