package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ProfilerConfig configures the external profiler wrapper.
type ProfilerConfig struct {
	// Bin is the profiler executable. The profile command refuses to run
	// without it.
	Bin string `toml:"bin" yaml:"bin"`
	// Args are placed before the artifact path on every invocation.
	Args []string `toml:"args" yaml:"args"`
	// MaxConcurrency bounds simultaneous profiler processes.
	MaxConcurrency int64 `toml:"max_concurrency" yaml:"max_concurrency"`
}

// Config is the full configuration surface of the tool. Values resolve as
// defaults, overridden by the config file, overridden by CLI flags.
type Config struct {
	ReportsDir string  `toml:"reports_dir" yaml:"reports_dir"`
	BaseSuffix string  `toml:"base_suffix" yaml:"base_suffix"`
	PRSuffix   string  `toml:"pr_suffix" yaml:"pr_suffix"`
	// Threshold is a percentage, not normalized: 10 means 10%.
	Threshold float64 `toml:"threshold" yaml:"threshold"`
	Output    string  `toml:"output" yaml:"output"`

	Profiler ProfilerConfig `toml:"profiler" yaml:"profiler"`
}

// Default returns the configuration used when no file and no flags are given.
func Default() Config {
	return Config{
		ReportsDir: "./reports",
		BaseSuffix: "_base",
		PRSuffix:   "_latest",
		Threshold:  2.5,
		Output:     "benchmark-report.md",
		Profiler: ProfilerConfig{
			MaxConcurrency: 4,
		},
	}
}

// Load reads a config file on top of the defaults. TOML is the primary
// format; YAML is accepted by extension for compatibility with workflow
// repos that keep everything in YAML.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return c, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return c, nil
}
