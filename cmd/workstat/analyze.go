package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/workstat/internal/config"
	"github.com/nao1215/workstat/internal/database"
	"github.com/nao1215/workstat/internal/loader"
	"github.com/nao1215/workstat/internal/log"
	"github.com/nao1215/workstat/internal/model"
	"github.com/nao1215/workstat/internal/pipeline"
	"github.com/nao1215/workstat/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [dataset files]",
		Short: "Analyze employee datasets and render a report",
		Long: `Analyze computes summary statistics over employee datasets.

Each input file must be a CSV with a header row or a JSON array of employee
objects, carrying the columns: age, salary, department, city. Arbitrary
source headers can be remapped via the configuration file.

The report contains:
- Total headcount and average age/salary
- Distinct departments and cities in first-seen order
- Average salary and age per department

Examples:
  # Analyze a single dataset
  workstat analyze employees.csv

  # Analyze multiple datasets concurrently
  workstat analyze q1.csv q2.csv q3.csv

  # Output JSON report
  workstat analyze --json employees.csv

  # Write the report to a file
  workstat analyze -o report.txt employees.csv

  # Use a custom configuration file
  workstat analyze -c myconfig.yaml employees.csv

Configuration file (.workstat) example:
  datasets:
    payroll:
      delimiter: ";"
      currency: "€"
      columns:
        annual_pay: salary
        team: department`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Batch processing flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses for multiple files")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .workstat in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History database flags
	cmd.Flags().Bool("no-save", false,
		"Do not save the analysis to the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with personal-data masking
	verbose := getVerboseFlag(cmd)
	logger := log.NewLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnalyze(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load dataset-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.DatasetConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.DatasetConfigs = &config.File{
			Datasets: make(map[string]config.DatasetConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	// Positional arguments are the dataset files
	cfg.Inputs = args

	return cfg, nil
}

// runAnalyze loads the datasets, runs the analysis, and emits reports.
func runAnalyze(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"inputs", cfg.Inputs,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close() //nolint:errcheck // Best-effort close on exit
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Load all datasets up front so malformed files fail before any output
	datasets := make([]*model.Dataset, 0, len(cfg.Inputs))
	for _, path := range cfg.Inputs {
		ds, err := loadDataset(cfg, path)
		if err != nil {
			return err
		}
		datasets = append(datasets, ds)
	}

	start := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewAnalysisPipeline(pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	analyses, err := bp.Process(ctx, datasets)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for _, analysis := range analyses {
		if err := outputReport(cmd, cfg, analysis.Summary); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", analysis.Summary.Dataset, err)
		}
		if err := saveSummary(ctx, db, analysis.Summary, logger); err != nil {
			logger.Error("failed to save analysis",
				"dataset", analysis.Summary.Dataset,
				"error", err,
			)
		}
	}

	logger.Info("analysis complete",
		"datasets", len(analyses),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return nil
}

// loadDataset loads one dataset file with its per-dataset configuration.
func loadDataset(cfg *config.Config, path string) (*model.Dataset, error) {
	name := datasetNameFromPath(path)
	dc := cfg.DatasetConfigs.GetDatasetConfig(name)

	l := loader.New(
		loader.WithColumnMapping(dc.Columns),
		loader.WithDelimiter(dc.DelimiterRune()),
	)

	ds, err := l.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

// datasetNameFromPath derives the dataset name used for configuration and
// history lookups from a file path.
func datasetNameFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// outputReport writes the summary in the configured format and destination.
func outputReport(cmd *cobra.Command, cfg *config.Config, summary *model.Summary) error {
	out, closeFn, err := reportDestination(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := buildReportWriter(cfg, summary.Dataset, out)
	_, err = w.Write(summary)
	return err
}

// reportDestination returns the report output writer and a close function.
// Reports go to stdout unless a report file is configured; the file is
// opened in append mode so multi-dataset runs collect every report.
func reportDestination(cmd *cobra.Command, cfg *config.Config) (io.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// buildReportWriter selects the report writer for the configured format.
func buildReportWriter(cfg *config.Config, dataset string, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		currency := cfg.DatasetConfigs.GetDatasetConfig(dataset).Currency
		return report.NewTextWriter(out, report.WithCurrency(currency))
	}
}

// saveSummary stores one summary in the history database when enabled.
func saveSummary(ctx context.Context, db *database.HistoryDB, summary *model.Summary, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.Save(ctx, summary)
	if err != nil {
		return err
	}

	logger.Info("analysis saved",
		"dataset", summary.Dataset,
		"runID", id,
	)
	return nil
}
