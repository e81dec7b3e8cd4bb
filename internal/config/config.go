// Package config defines the benchmark sweep configuration: which
// libraries, delivery modes, and load shapes to run, where results go,
// and the guard-rail timeout.
//
// Precedence, lowest to highest: built-in defaults, config file,
// LOGBENCH_* environment variables, command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvTotal      = "LOGBENCH_TOTAL"
	EnvWarmup     = "LOGBENCH_WARMUP"
	EnvTimeoutSec = "LOGBENCH_TIMEOUT_SEC"
)

// Config is the full sweep configuration.
type Config struct {
	// Libraries selects the logging backends to benchmark, in sweep order.
	Libraries []string `json:"libraries" yaml:"libraries"`

	// Async lists the delivery modes to sweep: false for synchronous
	// delivery, true for a queued background consumer.
	Async []bool `json:"async" yaml:"async"`

	// Sinks lists the terminal sinks to sweep ("null", "file").
	Sinks []string `json:"sinks" yaml:"sinks"`

	// Producers lists the concurrent producer counts to sweep.
	Producers []int `json:"producers" yaml:"producers"`

	// MessageSizes lists the payload sizes in bytes to sweep.
	MessageSizes []int `json:"messageSizes" yaml:"messageSizes"`

	// TotalMessages is the number of measured messages per scenario,
	// split across producers.
	TotalMessages int `json:"totalMessages" yaml:"totalMessages"`

	// WarmupMessages is the number of unrecorded messages sent before
	// each measured run.
	WarmupMessages int `json:"warmupMessages" yaml:"warmupMessages"`

	// Timeout bounds the whole sweep; when it expires the process exits
	// with code 124. Zero disables the watchdog.
	Timeout Duration `json:"timeout" yaml:"timeout"`

	// OutputDir receives sink files and, unless overridden with
	// absolute paths, the report files.
	OutputDir string `json:"outputDir" yaml:"outputDir"`

	// CSVFile is the latency CSV path, relative to OutputDir unless
	// absolute.
	CSVFile string `json:"csvFile" yaml:"csvFile"`

	// JSONFile, when set, receives the full results document.
	JSONFile string `json:"jsonFile,omitempty" yaml:"jsonFile,omitempty"`

	// HTMLFile, when set, receives the rendered report.
	HTMLFile string `json:"htmlFile,omitempty" yaml:"htmlFile,omitempty"`
}

// Default returns the stock sweep: every library, sync and async, null
// and file sinks, 1/4/16 producers, 40/200/1024-byte payloads, 200k
// measured messages per scenario after a 4096-message warm-up, bounded
// by a ten-minute watchdog.
func Default() *Config {
	return &Config{
		Libraries:      []string{"slog", "zap", "logrus"},
		Async:          []bool{false, true},
		Sinks:          []string{"null", "file"},
		Producers:      []int{1, 4, 16},
		MessageSizes:   []int{40, 200, 1024},
		TotalMessages:  200000,
		WarmupMessages: 4096,
		Timeout:        Duration(600 * time.Second),
		OutputDir:      filepath.Join("bench", "results"),
		CSVFile:        "latency.csv",
	}
}

// Load reads a YAML config file, checks it against the embedded schema,
// and decodes it over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays LOGBENCH_* variables onto the config. Unset and
// empty variables are ignored; malformed values are errors rather than
// silent fallbacks.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvTotal); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvTotal, v)
		}
		c.TotalMessages = n
	}
	if v := os.Getenv(EnvWarmup); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvWarmup, v)
		}
		c.WarmupMessages = n
	}
	if v := os.Getenv(EnvTimeoutSec); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvTimeoutSec, v)
		}
		c.Timeout = Duration(time.Duration(n) * time.Second)
	}
	return nil
}

// validLibraries and validSinks mirror the adapter registry and sink
// kinds so config stays a leaf package.
var validLibraries = map[string]bool{
	"slog":   true,
	"zap":    true,
	"logrus": true,
}

var validSinks = map[string]bool{
	"null": true,
	"file": true,
}

// Validate checks the sweep configuration for semantic errors.
//
// Returns nil if valid, or a ValidationErrors containing all validation
// errors.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if len(c.Libraries) == 0 {
		errs.Add("libraries", "at least one library is required")
	}
	for i, lib := range c.Libraries {
		if !validLibraries[lib] {
			errs.Add(fmt.Sprintf("libraries[%d]", i), fmt.Sprintf("unknown library: %s", lib))
		}
	}

	if len(c.Async) == 0 {
		errs.Add("async", "at least one delivery mode is required")
	}

	if len(c.Sinks) == 0 {
		errs.Add("sinks", "at least one sink is required")
	}
	for i, s := range c.Sinks {
		if !validSinks[s] {
			errs.Add(fmt.Sprintf("sinks[%d]", i), fmt.Sprintf("unknown sink: %s", s))
		}
	}

	if len(c.Producers) == 0 {
		errs.Add("producers", "at least one producer count is required")
	}
	for i, p := range c.Producers {
		if p <= 0 {
			errs.Add(fmt.Sprintf("producers[%d]", i), "producer count must be positive")
		}
	}

	if len(c.MessageSizes) == 0 {
		errs.Add("messageSizes", "at least one message size is required")
	}
	for i, b := range c.MessageSizes {
		if b <= 0 {
			errs.Add(fmt.Sprintf("messageSizes[%d]", i), "message size must be positive")
		}
	}

	if c.TotalMessages <= 0 {
		errs.Add("totalMessages", "total message count must be positive")
	}
	if c.WarmupMessages < 0 {
		errs.Add("warmupMessages", "warm-up message count cannot be negative")
	}
	if c.Timeout < 0 {
		errs.Add("timeout", "timeout cannot be negative")
	}
	if c.OutputDir == "" {
		errs.Add("outputDir", "output directory is required")
	}
	if c.CSVFile == "" {
		errs.Add("csvFile", "CSV file name is required")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ScenarioCount returns the number of matrix cells the configuration
// describes.
func (c *Config) ScenarioCount() int {
	return len(c.Libraries) * len(c.Async) * len(c.Sinks) *
		len(c.Producers) * len(c.MessageSizes)
}

// CSVPath returns the latency CSV location resolved against OutputDir.
func (c *Config) CSVPath() string {
	return c.resolve(c.CSVFile)
}

// JSONPath returns the JSON report location, or "" when disabled.
func (c *Config) JSONPath() string {
	return c.resolve(c.JSONFile)
}

// HTMLPath returns the HTML report location, or "" when disabled.
func (c *Config) HTMLPath() string {
	return c.resolve(c.HTMLFile)
}

func (c *Config) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}
