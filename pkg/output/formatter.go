/*
Package output renders duplicate-search results in various formats
including a human-readable report, JSON, and YAML. It supports colored
output and statistics inclusion.

Basic usage:

	formatter := output.NewFormatter(output.Config{
		Format:     output.FormatText,
		WithStats:  true,
		WithColors: true,
	}, log)

	report, err := formatter.Format(result)
*/
package output

import (
	"fmt"

	"github.com/sonemaro/dupescan/pkg/dedup"
	"github.com/sonemaro/dupescan/pkg/logger"
)

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Config holds formatter configuration
type Config struct {
	Format     Format
	WithStats  bool
	WithColors bool

	// SizeOnly annotates the report when groups were matched by size
	// alone.
	SizeOnly bool
}

// Formatter defines the interface for result formatting
type Formatter interface {
	Format(*dedup.DuplicateFiles) (string, error)
}

type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	return &formatter{
		config: config,
		log:    log,
	}
}

// Format renders the result according to the configured format
func (f *formatter) Format(result *dedup.DuplicateFiles) (string, error) {
	if result == nil {
		msg := "nil result provided for formatting"
		f.log.Error(msg)
		return "", fmt.Errorf(msg)
	}

	f.log.WithFields(logger.Fields{
		"format":    f.config.Format,
		"withStats": f.config.WithStats,
		"groups":    len(result.Groups),
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatText:
		return f.formatText(result), nil
	case FormatJSON:
		return f.formatJSON(result)
	case FormatYAML:
		return f.formatYAML(result)
	default:
		msg := fmt.Sprintf("unsupported format: %s", f.config.Format)
		f.log.Error(msg)
		return "", fmt.Errorf(msg)
	}
}

// FormatSize renders a byte count the way the report prints it.
func FormatSize(size int64) string {
	const (
		kb = int64(1) << 10
		mb = int64(1) << 20
		gb = int64(1) << 30
	)

	switch {
	case size >= gb:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
