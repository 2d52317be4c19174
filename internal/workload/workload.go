package workload

import (
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"quantsim/internal/sched"
)

// File mirrors a workload YAML file.
type File struct {
	Tasks []sched.TaskDescriptor `yaml:"tasks"`
}

// Load reads a workload file. Unlike the simulator config there are no
// defaults to fall back on, so a missing file is an error.
func Load(path string) ([]sched.TaskDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read workload %s", path)
	}
	tasks, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "workload %s", path)
	}
	return tasks, nil
}

// Parse decodes a workload document and checks that it lists tasks.
func Parse(data []byte) ([]sched.TaskDescriptor, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, errors.Wrap(err, "parse workload")
	}
	if len(f.Tasks) == 0 {
		return nil, errors.New("workload has no tasks")
	}
	return f.Tasks, nil
}

// Sample is a ten task workload on the default four CPU pool mixing one,
// two and four CPU tasks.
func Sample() []sched.TaskDescriptor {
	return []sched.TaskDescriptor{
		{ID: "T1", Quantum: 20, CPUs: 2, Duration: 50},
		{ID: "T2", Quantum: 15, CPUs: 1, Duration: 30},
		{ID: "T3", Quantum: 10, CPUs: 1, Duration: 40},
		{ID: "T4", Quantum: 10, CPUs: 2, Duration: 60},
		{ID: "T5", Quantum: 15, CPUs: 4, Duration: 40},
		{ID: "T6", Quantum: 20, CPUs: 2, Duration: 30},
		{ID: "T7", Quantum: 15, CPUs: 2, Duration: 60},
		{ID: "T8", Quantum: 10, CPUs: 4, Duration: 30},
		{ID: "T9", Quantum: 20, CPUs: 4, Duration: 60},
		{ID: "T10", Quantum: 15, CPUs: 1, Duration: 20},
	}
}
