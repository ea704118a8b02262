package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/leapscan/leap-events/internal/collector"
	"github.com/leapscan/leap-events/internal/config"
	"github.com/leapscan/leap-events/internal/eventbrite"
	"github.com/leapscan/leap-events/internal/export"
	"github.com/leapscan/leap-events/internal/listing"
	"github.com/leapscan/leap-events/internal/logger"
	"github.com/spf13/cobra"
)

const ExitError = 1

var (
	flagToken   string
	flagOutDir  string
	flagConfig  string
	flagFormat  string
	flagDays    int
	flagPause   time.Duration
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leap-events",
		Short: "Collect upcoming SoCal events into CSV and Markdown",
		Long: `Crawls the public event listings for a fixed set of keyword and city
combinations, fetches event details from the API, keeps events starting
within the next 30 days in the target city, and exports a CSV table and
a Markdown digest.`,
		RunE: runCollect,
	}

	cmd.Flags().StringVar(&flagToken, "token", "", "API bearer token (default: "+config.TokenEnvVar+" env var)")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", ".", "Directory for the export files")
	cmd.Flags().StringVar(&flagConfig, "config", "", "YAML file overriding the city/keyword sets")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&flagDays, "days", config.DefaultLookaheadDays, "Lookahead window in days")
	cmd.Flags().DurationVar(&flagPause, "pause", config.DefaultPause, "Pause between detail fetches")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Collect and report without writing files")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runCollect is the main command logic
func runCollect(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	token, err := config.ResolveToken(flagToken)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
		if err != nil {
			return err
		}
	}

	sc := listing.New()
	api := eventbrite.NewClientWithBaseURL(token, config.APIHost, flagPause)

	col, err := collector.New(cfg, sc, api, time.Now(), flagDays, log)
	if err != nil {
		return err
	}

	records, stats, err := col.Run()
	if err != nil {
		return fmt.Errorf("collecting events: %w", err)
	}

	result := &OutputResult{
		CollectedAt: time.Now().UTC(),
		Records:     records,
		Stats:       stats,
	}

	if !flagDryRun {
		csvPath, mdPath, err := export.WriteFiles(flagOutDir, config.CSVFileName, config.MarkdownFileName, records)
		if err != nil {
			return fmt.Errorf("writing exports: %w", err)
		}
		result.CSVPath = csvPath
		result.MarkdownPath = mdPath
	}

	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
