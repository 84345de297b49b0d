package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents wlmerge configuration options
type Config struct {
	// Output is the path of the merged output file
	Output string `yaml:"output"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty = console only)
	LogDir string `yaml:"log_dir"`

	// Exact confirms hash matches against line content before dropping a line
	Exact bool `yaml:"exact"`

	// ReserveLines is the number of unique lines to reserve room for up front
	ReserveLines int `yaml:"reserve_lines"`

	// ProgressInterval is the number of merge rounds between progress reports (0 = off)
	ProgressInterval int `yaml:"progress_interval"`

	// ReadBufferKB is the read buffer size per input file, in KiB
	ReadBufferKB int `yaml:"read_buffer_kb"`

	// WriteBufferKB is the output buffer size, in KiB
	WriteBufferKB int `yaml:"write_buffer_kb"`

	// FDWarnThreshold is the input count above which a file descriptor warning is shown
	FDWarnThreshold int `yaml:"fd_warn_threshold"`

	// Exclude lists glob patterns for resolved files to leave out
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Output:           "merged.txt",
		LogLevel:         "info",
		LogDir:           "",
		Exact:            false,
		ReserveLines:     10_000_000,
		ProgressInterval: 10_000,
		ReadBufferKB:     128,
		WriteBufferKB:    1024,
		FDWarnThreshold:  100,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed or has unknown keys, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys present in the file overwrite defaults; absent keys keep them
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FlagOverrides holds CLI flag values; nil fields were not set on the command line
type FlagOverrides struct {
	Output       *string
	LogLevel     *string
	LogDir       *string
	Exact        *bool
	ReserveLines *int
	Exclude      []string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values; exclude patterns are appended
func (c *Config) MergeWithFlags(flags FlagOverrides) {
	if flags.Output != nil {
		c.Output = *flags.Output
	}
	if flags.LogLevel != nil {
		c.LogLevel = *flags.LogLevel
	}
	if flags.LogDir != nil {
		c.LogDir = *flags.LogDir
	}
	if flags.Exact != nil {
		c.Exact = *flags.Exact
	}
	if flags.ReserveLines != nil {
		c.ReserveLines = *flags.ReserveLines
	}
	c.Exclude = append(c.Exclude, flags.Exclude...)
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.ReserveLines < 0 {
		return fmt.Errorf("reserve_lines must be >= 0, got %d", c.ReserveLines)
	}
	if c.ProgressInterval < 0 {
		return fmt.Errorf("progress_interval must be >= 0, got %d", c.ProgressInterval)
	}
	if c.ReadBufferKB <= 0 {
		return fmt.Errorf("read_buffer_kb must be > 0, got %d", c.ReadBufferKB)
	}
	if c.WriteBufferKB <= 0 {
		return fmt.Errorf("write_buffer_kb must be > 0, got %d", c.WriteBufferKB)
	}
	if c.FDWarnThreshold < 0 {
		return fmt.Errorf("fd_warn_threshold must be >= 0, got %d", c.FDWarnThreshold)
	}

	return nil
}
