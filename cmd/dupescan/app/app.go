/*
Package app provides the main application container and orchestration for
the dupescan application. It manages component lifecycle, coordinates a
duplicate search, and handles graceful shutdown.

The container initializes and manages the core components:
- Logger for structured logging
- Duplicate finder (walk, size grouping, hashing)
- Progress visualization
- Output formatting

Usage:

	application := app.New(cfg)
	defer application.Shutdown()

	if err := application.Run(path, options); err != nil {
	    os.Exit(1)
	}
*/
package app

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/spf13/afero"

	"github.com/sonemaro/dupescan/internal/config"
	"github.com/sonemaro/dupescan/pkg/dedup"
	"github.com/sonemaro/dupescan/pkg/logger"
	"github.com/sonemaro/dupescan/pkg/output"
	"github.com/sonemaro/dupescan/pkg/progress"
)

// ScanOptions defines the options for one duplicate search
type ScanOptions struct {
	// Output format (text, json, yaml)
	Format output.Format

	// Output file path (empty for stdout)
	OutputPath string

	// Wildcard filters applied to base file names
	Patterns []string

	// Skip zero-length files
	ExcludeEmpty bool

	// Compare by size only, skip content hashing
	SizeOnly bool

	// Case-sensitive pattern matching
	CaseSensitive bool
}

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger
	fs     afero.Fs

	progress progress.Progress

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config: cfg,
		fs:     afero.NewOsFs(),
		ctx:    ctx,
		cancel: cancel,
	}

	a.log = logger.NewLogger(logger.Config{
		Verbosity: cfg.Verbose,
	})

	if !cfg.NoProgress {
		a.progress = progress.New(progress.Config{
			Style:   progress.StyleSpinner,
			NoColor: cfg.NoColor,
		}, a.log)
	}

	a.setupSignalHandling()

	a.log.WithFields(logger.Fields{
		"workers": cfg.Workers,
		"verbose": cfg.Verbose,
	}).Debug("Application initialized")

	return a
}

// Run executes a duplicate search with the given options
func (a *App) Run(path string, opts *ScanOptions) error {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
		}
	}()

	a.log.WithFields(logger.Fields{
		"path":     path,
		"format":   opts.Format,
		"patterns": opts.Patterns,
		"sizeOnly": opts.SizeOnly,
	}).Info("Starting duplicate search")

	if a.progress != nil {
		a.progress.Start("Scanning for duplicates...")
	}

	finder := dedup.NewFinder(dedup.Options{
		Patterns:      opts.Patterns,
		CaseSensitive: opts.CaseSensitive,
		ExcludeEmpty:  opts.ExcludeEmpty,
		SizeOnly:      opts.SizeOnly,
		Workers:       a.config.Workers,
		RateLimit:     a.config.RateLimit,
	}, a.fs, a.log)

	result, err := finder.Find(a.ctx, path)
	if err != nil {
		if a.progress != nil {
			a.progress.Error(fmt.Sprintf("Search failed: %v", err))
		}
		return fmt.Errorf("duplicate search failed: %w", err)
	}

	if a.progress != nil {
		a.progress.Stop()
	}

	formatter := output.NewFormatter(output.Config{
		Format:     opts.Format,
		WithStats:  true,
		WithColors: !a.config.NoColor,
		SizeOnly:   opts.SizeOnly,
	}, a.log)

	report, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}

	if err := a.writeOutput(report, opts.OutputPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"groups":   len(result.Groups),
		"files":    result.TotalFiles(),
		"outputTo": opts.OutputPath,
	}).Info("Duplicate search completed")

	return nil
}

// Shutdown performs a graceful shutdown of the application
func (a *App) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true

	a.log.Debug("Shutting down")
	a.cancel()
	if a.progress != nil {
		a.progress.Stop()
	}
}

// writeOutput writes the formatted report to the configured destination
func (a *App) writeOutput(content string, outputPath string) error {
	if outputPath == "" {
		_, err := fmt.Fprintln(os.Stdout, content)
		return err
	}

	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Writing output file")

	return os.WriteFile(outputPath, []byte(content), 0644)
}
