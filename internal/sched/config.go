package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Config mirrors config.yml
type Config struct {
	CPUCount      int `yaml:"cpu_count"`      // 4 (by default)
	SliceDuration int `yaml:"slice_duration"` // 5 (by default), recorder resolution only
}

// If the config file is not found, we use default values
func DefaultConfig() Config {
	return Config{
		CPUCount:      4,
		SliceDuration: 5,
	}
}

// Load reads YAML and overrides defaults; empty path or a missing file means
// defaults only. A file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	// zero means unset in the file
	if cfg.CPUCount == 0 {
		cfg.CPUCount = 4
	}
	if cfg.SliceDuration == 0 {
		cfg.SliceDuration = 5
	}

	return cfg, cfg.Validate()
}

// Validate checks the simulation parameters.
func (c Config) Validate() error {
	if c.CPUCount < 1 {
		return errors.Wrapf(ErrInvalidConfig, "cpu_count must be at least 1, got %d", c.CPUCount)
	}
	if c.SliceDuration < 1 {
		return errors.Wrapf(ErrInvalidConfig, "slice_duration must be at least 1, got %d", c.SliceDuration)
	}
	return nil
}
