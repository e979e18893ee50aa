// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Sources, Output, Tokenizer, Compiler, Logging, Metrics).
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Sources   SourcesConfig   `yaml:"sources"`
	Output    OutputConfig    `yaml:"output"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Compiler  CompilerConfig  `yaml:"compiler"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SourcesConfig describes where corpus files live and which ones qualify.
type SourcesConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
	IgnoreFile string   `yaml:"ignoreFile"`
}

// OutputConfig controls the emitted frequency list.
type OutputConfig struct {
	Path            string `yaml:"path"`
	Separator       string `yaml:"separator"`
	MinCount        uint64 `yaml:"minCount"`
	SplitByLanguage bool   `yaml:"splitByLanguage"`
	LanguageDir     string `yaml:"languageDir"`
	LanguagePrefix  string `yaml:"languagePrefix"`
}

// TokenizerConfig holds the tunable parts of the normalization policy.
// The policy itself (sigil stripping, mention/URL dropping) is fixed;
// only the minimum token length is configurable.
type TokenizerConfig struct {
	MinTokenLength int `yaml:"minTokenLength"`
}

// CompilerConfig controls pipeline parallelism and progress reporting.
type CompilerConfig struct {
	Workers       int `yaml:"workers"`
	ProgressEvery int `yaml:"progressEvery"`
	MaxLineBytes  int `yaml:"maxLineBytes"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns a Config matching the conventional no-argument
// invocation: read ./sources, write ./wordfreq.txt.
func defaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			Dir:        "sources",
			Extensions: []string{".txt", ".json", ".jsonl", ".bz2", ".gz", ".zst", ".lz4"},
			IgnoreFile: ".freqignore",
		},
		Output: OutputConfig{
			Path:           "wordfreq.txt",
			Separator:      "\t",
			MinCount:       0,
			LanguageDir:    "output",
			LanguagePrefix: "wordfreq",
		},
		Tokenizer: TokenizerConfig{
			MinTokenLength: 2,
		},
		Compiler: CompilerConfig{
			Workers:       runtime.NumCPU(),
			ProgressEvery: 100,
			MaxLineBytes:  4 * 1024 * 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

func (c *Config) validate() error {
	if c.Sources.Dir == "" {
		return fmt.Errorf("sources.dir must not be empty")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	if c.Compiler.Workers < 1 {
		c.Compiler.Workers = runtime.NumCPU()
	}
	if c.Compiler.MaxLineBytes < 64*1024 {
		c.Compiler.MaxLineBytes = 64 * 1024
	}
	if c.Tokenizer.MinTokenLength < 1 {
		c.Tokenizer.MinTokenLength = 1
	}
	return nil
}

// applyEnvOverrides reads WF_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WF_SOURCES_DIR"); v != "" {
		cfg.Sources.Dir = v
	}
	if v := os.Getenv("WF_SOURCES_EXTENSIONS"); v != "" {
		cfg.Sources.Extensions = strings.Split(v, ",")
	}
	if v := os.Getenv("WF_OUTPUT_PATH"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("WF_OUTPUT_MIN_COUNT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Output.MinCount = n
		}
	}
	if v := os.Getenv("WF_OUTPUT_SPLIT_BY_LANGUAGE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Output.SplitByLanguage = b
		}
	}
	if v := os.Getenv("WF_COMPILER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Compiler.Workers = n
		}
	}
	if v := os.Getenv("WF_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WF_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("WF_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("WF_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = n
		}
	}
}
