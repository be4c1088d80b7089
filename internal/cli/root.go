// Package cli provides the command-line interface for quarry.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/config"
	"github.com/quarrylabs/quarry/internal/extract"
	"github.com/quarrylabs/quarry/internal/gitrepo"
	"github.com/quarrylabs/quarry/internal/ingest"
	"github.com/quarrylabs/quarry/internal/validate"
	"github.com/quarrylabs/quarry/internal/vector"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose   bool
	submitter string

	// Global config and wired engine
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
	engine   *ingest.Orchestrator
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Knowledge ingestion engine",
	Long: `Quarry ingests heterogeneous knowledge sources - individual files,
whole folder trees, structured bibliographic text, and remote source-code
repositories - validates and classifies every item, extracts normalized
text, and indexes it for similarity search.

Every submission is tracked as a job with per-item results and errors;
partial failure degrades gracefully instead of aborting the batch.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLog = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)

		if submitter == "" {
			submitter = os.Getenv("USER")
			if submitter == "" {
				submitter = "anonymous"
			}
		}

		formats := validate.DefaultTable()
		var ignoreDirs []string
		if cfg.OverlayFile != "" {
			overlay, err := config.LoadOverlay(cfg.OverlayFile)
			if err != nil {
				return fmt.Errorf("load config overlay: %w", err)
			}
			for ext, cat := range overlay.Formats {
				formats[ext] = validate.Category(cat)
			}
			if overlay.IgnoreDirs != nil {
				ignoreDirs = overlay.IgnoreDirs
			}
		}

		var index vector.Index
		if cfg.WeaviateHost != "" {
			weaviateIndex, err := vector.NewWeaviateIndex(cfg.WeaviateHost, cfg.WeaviateScheme)
			if err != nil {
				return fmt.Errorf("connect vector index: %w", err)
			}
			index = weaviateIndex
		} else {
			logger.Warn("no vector backend configured, using in-memory index")
			index = vector.NewMemoryIndex()
		}

		repo := gitrepo.NewProcessor(
			gitrepo.WithAPIBase(cfg.GitHubAPIBase),
			gitrepo.WithCloneTimeout(cfg.CloneTimeout),
			gitrepo.WithLogger(logger),
		)

		var err error
		engine, err = ingest.New(ingest.Config{
			MaxFileSize:      cfg.MaxFileSize,
			MaxRepoSize:      cfg.MaxRepoSize,
			BatchSize:        cfg.BatchSize,
			ItemTimeout:      cfg.ItemTimeout,
			RegistryCapacity: cfg.RegistryCapacity,
			Formats:          formats,
			IgnoreDirs:       ignoreDirs,
		},
			extract.NewRegistry(extract.NewTextAgent()),
			index,
			ingest.WithRepoProcessor(repo),
			ingest.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("init ingestion engine: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if engine != nil {
			engine.Close()
		}
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&submitter, "submitter", "u", "", "submitter identity (defaults to $USER)")
}
