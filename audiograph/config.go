package audiograph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the handful of process-wide defaults an operator may want to
// override without recompiling: the default audio device UID, the latency
// class used to size connection ring buffers, and the worker pool size.
// Parsed with gopkg.in/yaml.v3, the same library/style the corpus uses for
// its own data-file loading.
type Config struct {
	PreferredDeviceUID string `yaml:"preferred_device_uid"`
	LatencyFrames      int    `yaml:"latency_frames"`
	WorkerCount        int    `yaml:"worker_count"`
}

// LoadConfig reads and parses a YAML config file from path. A missing or
// empty field keeps its zero value; callers apply defaults themselves
// (DefaultConfig returns the pipeline's built-in defaults to merge over).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audiograph: read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("audiograph: parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultConfig returns the pipeline's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LatencyFrames: 4096,
	}
}
