package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sonemaro/dupescan/cmd/dupescan/app"
	"github.com/sonemaro/dupescan/internal/config"
	"github.com/sonemaro/dupescan/internal/version"
	"github.com/sonemaro/dupescan/pkg/output"
)

var (
	// Global flags
	verbosity  int
	noProgress bool
	noColor    bool

	// Scan flags
	patterns        []string
	excludeEmpty    bool
	sizeOnly        bool
	caseInsensitive bool
	workers         int
	rateLimit       int
	outputType      string
	outputFile      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dupescan [flags] <path>",
	Short: "Find groups of files with identical content",
	Long: `dupescan v` + version.Version + `
========================================

Scans a directory tree for duplicate files. Candidates are grouped by size
first, then separated by a streaming content checksum, so files without a
possible duplicate are never read.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runScan,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flag("full").Value.String() == "true" {
			fmt.Println(version.FullVersion())
		} else {
			fmt.Println(version.Version)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"verbose output (can be used multiple times)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false,
		"disable progress reporting")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")

	rootCmd.Flags().StringSliceVarP(&patterns, "pattern", "p", nil,
		"wildcard name filters, e.g. '*.txt' (can be specified multiple times)")
	rootCmd.Flags().BoolVar(&excludeEmpty, "exclude-empty", false,
		"exclude zero-length files from the search")
	rootCmd.Flags().BoolVar(&sizeOnly, "size-only", false,
		"compare files only by size, not content")
	rootCmd.Flags().BoolVar(&caseInsensitive, "case-insensitive", false,
		"use case-insensitive filter matching")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0,
		"number of concurrent hashing workers (default: number of CPUs)")
	rootCmd.Flags().IntVarP(&rateLimit, "rate-limit", "r", 0,
		"rate limit for hashing operations (ops/sec, default: unlimited)")
	rootCmd.Flags().StringVarP(&outputType, "output", "o", "",
		"output format: text|json|yaml")
	rootCmd.Flags().StringVarP(&outputFile, "output-file", "f", "",
		"write the report to a file instead of stdout")

	versionCmd.Flags().BoolP("full", "f", false, "show full version information")

	rootCmd.AddCommand(versionCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Command-line flags override environment configuration
	cfg.Verbose = verbosity
	if noProgress {
		cfg.NoProgress = true
	}
	if noColor {
		cfg.NoColor = true
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.RateLimit = rateLimit
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputType
	}
	if cmd.Flags().Changed("output-file") {
		cfg.OutputFile = outputFile
	}
	if len(patterns) > 0 {
		cfg.Patterns = patterns
	}
	if excludeEmpty {
		cfg.ExcludeEmpty = true
	}
	if sizeOnly {
		cfg.SizeOnly = true
	}
	if caseInsensitive {
		cfg.CaseSensitive = false
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	application := app.New(&cfg)
	defer application.Shutdown()

	return application.Run(args[0], &app.ScanOptions{
		Format:        output.Format(cfg.Output),
		OutputPath:    cfg.OutputFile,
		Patterns:      cfg.Patterns,
		ExcludeEmpty:  cfg.ExcludeEmpty,
		SizeOnly:      cfg.SizeOnly,
		CaseSensitive: cfg.CaseSensitive,
	})
}
