package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quantsim/internal/report"
	"quantsim/internal/sched"
	"quantsim/internal/workload"
)

type cli struct {
	configPath   string
	workloadPath string
	cpus         int
	slice        int
	format       string
	eventsCSV    string
	logLevel     string
	strategy     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "quantsim",
		Short:         "Simulate quantum scheduling with and without EASY backfilling",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runCompare,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "config.yml", "simulator config file")
	pf.StringVar(&c.workloadPath, "workload", "", "workload file, sample workload when empty")
	pf.IntVar(&c.cpus, "cpus", 0, "override cpu_count")
	pf.IntVar(&c.slice, "slice", 0, "override slice_duration")
	pf.StringVar(&c.format, "format", report.FormatTable, "output format: table, json or yaml")
	pf.StringVar(&c.eventsCSV, "events-csv", "", "write scheduler events to this csv file")
	pf.StringVar(&c.logLevel, "log-level", "warning", "log level")

	compare := &cobra.Command{
		Use:   "compare",
		Short: "Run both strategies and report the improvement",
		RunE:  c.runCompare,
	}
	run := &cobra.Command{
		Use:   "run",
		Short: "Run a single strategy",
		RunE:  c.runSingle,
	}
	run.Flags().StringVar(&c.strategy, "strategy", sched.StrategyBackfill.String(), "fifo or backfill")

	root.AddCommand(compare, run)
	return root
}

// setup loads config and workload and builds the simulator. The returned
// func closes the event log, if any.
func (c *cli) setup() (*sched.Simulator, []sched.TaskDescriptor, func(), error) {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	log.SetLevel(level)

	cfg, err := sched.Load(c.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if c.cpus != 0 {
		cfg.CPUCount = c.cpus
	}
	if c.slice != 0 {
		cfg.SliceDuration = c.slice
	}
	log.WithFields(log.Fields{
		"cpu_count":      cfg.CPUCount,
		"slice_duration": cfg.SliceDuration,
	}).Info("Loaded config")

	tasks := workload.Sample()
	if c.workloadPath != "" {
		if tasks, err = workload.Load(c.workloadPath); err != nil {
			return nil, nil, nil, err
		}
	}

	opts := sched.Options{
		Logger: log.StandardLogger(),
	}
	closer := func() {}
	if c.eventsCSV != "" {
		f, err := os.Create(c.eventsCSV)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "create events csv")
		}
		events, err := sched.NewCSVEventLog(f)
		if err != nil {
			f.Close()
			return nil, nil, nil, err
		}
		opts.Events = events
		closer = func() { f.Close() }
	}

	return sched.NewSimulator(cfg, opts), tasks, closer, nil
}

func (c *cli) runCompare(cmd *cobra.Command, args []string) error {
	sim, tasks, closer, err := c.setup()
	if err != nil {
		return err
	}
	defer closer()

	cmp, err := sim.Compare(tasks)
	if err != nil {
		return err
	}
	return report.Encode(cmd.OutOrStdout(), cmp, c.format, sim.Config().SliceDuration)
}

func (c *cli) runSingle(cmd *cobra.Command, args []string) error {
	strategy, err := sched.ParseStrategy(c.strategy)
	if err != nil {
		return err
	}
	sim, tasks, closer, err := c.setup()
	if err != nil {
		return err
	}
	defer closer()

	res, err := sim.Run(strategy, tasks)
	if err != nil {
		return err
	}
	return report.EncodeResult(cmd.OutOrStdout(), res, c.format, sim.Config().SliceDuration)
}
