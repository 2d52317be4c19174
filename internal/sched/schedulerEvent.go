// internal/sched/schedulerEvent.go

package sched

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusAdmit StatusKind = iota
	StatusBackfill
	StatusPreempt
	StatusFinish
)

// StatusEvent is emitted on every admission and release.
type StatusEvent struct {
	Time      int
	Strategy  Strategy
	Kind      StatusKind
	TaskID    string
	CPUs      []int
	Remaining int
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusAdmit:
		return "Admit"
	case StatusBackfill:
		return "Backfill"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// EventSink consumes scheduler events in the order they happen.
type EventSink interface {
	Handle(ev StatusEvent) error
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev StatusEvent) error

func (f EventSinkFunc) Handle(ev StatusEvent) error { return f(ev) }

// CSVEventLog writes one CSV row per event.
type CSVEventLog struct {
	w *csv.Writer
}

// NewCSVEventLog writes the header row and returns the log.
func NewCSVEventLog(out io.Writer) (*CSVEventLog, error) {
	w := csv.NewWriter(out)

	// write header
	if err := w.Write([]string{"time", "strategy", "event", "task_id", "cpus", "remaining"}); err != nil {
		return nil, errors.Wrap(err, "write csv header")
	}
	w.Flush()
	return &CSVEventLog{w: w}, w.Error()
}

func (l *CSVEventLog) Handle(ev StatusEvent) error {
	cpus := make([]string, len(ev.CPUs))
	for i, cpu := range ev.CPUs {
		cpus[i] = strconv.Itoa(cpu)
	}
	rec := []string{
		strconv.Itoa(ev.Time),
		ev.Strategy.String(),
		ev.Kind.String(),
		ev.TaskID,
		strings.Join(cpus, " "),
		strconv.Itoa(ev.Remaining),
	}
	if err := l.w.Write(rec); err != nil {
		return errors.Wrap(err, "write csv event")
	}
	l.w.Flush()
	return l.w.Error()
}
