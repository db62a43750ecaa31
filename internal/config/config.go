/*
Package config provides configuration management for the dupescan
application. It handles environment variables and validation of all
configuration parameters.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Environment Variables:

	DUPESCAN_WORKERS          Number of concurrent hashing workers
	DUPESCAN_PATTERNS         Comma-separated wildcard name filters
	DUPESCAN_EXCLUDE_EMPTY    Skip zero-length files
	DUPESCAN_SIZE_ONLY        Compare by size only, skip hashing
	DUPESCAN_CASE_INSENSITIVE Case-insensitive pattern matching
	DUPESCAN_OUTPUT           Output format: text|json|yaml
	DUPESCAN_OUTPUT_FILE      Output file path
	DUPESCAN_RATE_LIMIT       Rate limit for hashing operations
	DUPESCAN_NO_PROGRESS      Disable progress reporting
	DUPESCAN_NO_COLOR         Disable colored output
	DUPESCAN_VERBOSE          Verbosity level (number of 'v's)

Default Values:

	Workers:   Number of CPU cores
	Output:    "text"
	RateLimit: 0 (unlimited)
	Matching:  case-sensitive, empty files included, content hashing on
*/
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Workers is the number of concurrent hashing workers
	Workers int

	// Patterns is a list of wildcard filters for base file names
	Patterns []string

	// ExcludeEmpty drops zero-length files during traversal
	ExcludeEmpty bool

	// SizeOnly compares files by size alone, skipping content hashing
	SizeOnly bool

	// CaseSensitive toggles case-sensitive pattern matching
	CaseSensitive bool

	// Output specifies the output format (text, json, or yaml)
	Output string

	// OutputFile is the path to write the report (empty for stdout)
	OutputFile string

	// RateLimit caps hashing operations per second (0 for unlimited)
	RateLimit int

	// NoProgress disables progress reporting
	NoProgress bool

	// NoColor disables colored output
	NoColor bool

	// Verbose sets the verbosity level
	Verbose int
}

// validOutputFormats contains the list of supported output formats
var validOutputFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("output", "text")
	v.SetDefault("rate_limit", 0)
	v.SetDefault("exclude_empty", false)
	v.SetDefault("size_only", false)
	v.SetDefault("case_insensitive", false)
	v.SetDefault("no_progress", false)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", 0)

	v.SetEnvPrefix("DUPESCAN")
	v.AutomaticEnv()

	v.BindEnv("workers")
	v.BindEnv("patterns")
	v.BindEnv("exclude_empty")
	v.BindEnv("size_only")
	v.BindEnv("case_insensitive")
	v.BindEnv("output")
	v.BindEnv("output_file")
	v.BindEnv("rate_limit")
	v.BindEnv("no_progress")
	v.BindEnv("no_color")
	v.BindEnv("verbose")

	// Verbosity arrives as a string of 'v's
	if verboseStr := v.GetString("verbose"); verboseStr != "" {
		v.Set("verbose", strings.Count(verboseStr, "v"))
	}

	cfg := Config{
		Workers:       v.GetInt("workers"),
		ExcludeEmpty:  v.GetBool("exclude_empty"),
		SizeOnly:      v.GetBool("size_only"),
		CaseSensitive: !v.GetBool("case_insensitive"),
		Output:        v.GetString("output"),
		OutputFile:    v.GetString("output_file"),
		RateLimit:     v.GetInt("rate_limit"),
		NoProgress:    v.GetBool("no_progress"),
		NoColor:       v.GetBool("no_color"),
		Verbose:       v.GetInt("verbose"),
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if patternsStr := v.GetString("patterns"); patternsStr != "" {
		parts := strings.Split(patternsStr, ",")
		cfg.Patterns = make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Patterns = append(cfg.Patterns, trimmed)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers count must be positive")
	}
	if c.Workers > runtime.NumCPU()*MaxWorkerMultiplier {
		return fmt.Errorf("workers count cannot exceed system CPU count * %d", MaxWorkerMultiplier)
	}

	if !validOutputFormats[c.Output] {
		return fmt.Errorf("invalid output format: must be one of [text json yaml]")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, Patterns: %v, ExcludeEmpty: %v, SizeOnly: %v, "+
			"CaseSensitive: %v, Output: %s, OutputFile: %s, RateLimit: %d, "+
			"NoProgress: %v, NoColor: %v, Verbose: %d}",
		c.Workers, c.Patterns, c.ExcludeEmpty, c.SizeOnly,
		c.CaseSensitive, c.Output, c.OutputFile, c.RateLimit,
		c.NoProgress, c.NoColor, c.Verbose,
	)
}
