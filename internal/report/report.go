package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	yaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"quantsim/internal/sched"
)

// Output formats accepted by Encode.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.Debug)
}

// RenderTable prints the utilization log as a grid with one row per slice
// and one column per CPU.
func RenderTable(w io.Writer, logs sched.UtilizationLog, slice int) error {
	tw := newTabWriter(w)

	header := []string{"Interval"}
	for cpu := 0; cpu < logs.CPUs(); cpu++ {
		header = append(header, fmt.Sprintf("CPU%d", cpu))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i := 0; i < logs.Slices(); i++ {
		row := []string{fmt.Sprintf("%d-%ds", i*slice, (i+1)*slice)}
		for cpu := 0; cpu < logs.CPUs(); cpu++ {
			row = append(row, logs[cpu][i])
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return errors.Wrap(tw.Flush(), "render table")
}

// RenderResult prints one strategy's table and total time.
func RenderResult(w io.Writer, res sched.Result, slice int) error {
	fmt.Fprintf(w, "=== %s ===\n\n", title(res.Strategy))
	if err := RenderTable(w, res.Log, slice); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal time: %ds\n", res.Total)
	fmt.Fprintf(w, "Utilization: %.1f%%\n\n", res.Log.Ratio()*100)
	return nil
}

// RenderComparison prints both strategies, the improvement and the
// completion time of every task under each strategy.
func RenderComparison(w io.Writer, c sched.Comparison, slice int) error {
	if err := RenderResult(w, c.FIFO, slice); err != nil {
		return err
	}
	if err := RenderResult(w, c.Backfill, slice); err != nil {
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Task\tFIFO\tBackfill")
	for _, id := range taskIDs(c) {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", id, c.FIFO.Completions[id], c.Backfill.Completions[id])
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "render completions")
	}

	fmt.Fprintf(w, "\nImprovement: %ds\n", c.Improvement)
	return nil
}

// Encode writes the comparison in the requested format.
func Encode(w io.Writer, c sched.Comparison, format string, slice int) error {
	if format == FormatTable || format == "" {
		return RenderComparison(w, c, slice)
	}
	return marshal(w, c, format)
}

// EncodeResult writes a single strategy's result in the requested format.
func EncodeResult(w io.Writer, res sched.Result, format string, slice int) error {
	if format == FormatTable || format == "" {
		return RenderResult(w, res, slice)
	}
	return marshal(w, res, format)
}

func marshal(w io.Writer, v interface{}, format string) error {
	switch format {
	case FormatJSON:
		buf, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal json")
		}
		_, err = fmt.Fprintf(w, "%s\n", buf)
		return err
	case FormatYAML:
		buf, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshal yaml")
		}
		_, err = w.Write(buf)
		return err
	}
	return errors.Errorf("unknown format %q", format)
}

func title(s sched.Strategy) string {
	switch s {
	case sched.StrategyFIFO:
		return "Priority FIFO without backfilling"
	case sched.StrategyBackfill:
		return "EASY backfilling"
	}
	return s.String()
}

// taskIDs lists completed tasks by FIFO completion time, then id.
func taskIDs(c sched.Comparison) []string {
	ids := make([]string, 0, len(c.FIFO.Completions))
	for id := range c.FIFO.Completions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := c.FIFO.Completions[ids[i]], c.FIFO.Completions[ids[j]]
		if ti != tj {
			return ti < tj
		}
		return ids[i] < ids[j]
	})
	return ids
}
