package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 4 concurrent analyses balances throughput with
	// memory usage when many dataset files are passed at once. Analysis is
	// CPU- and allocation-light, so a small limit is enough.
	DefaultBatchSize = 4

	// DefaultCurrency is the currency symbol used in salary figures.
	DefaultCurrency = "$"

	// AppName is the application name used for XDG directory paths.
	AppName = "workstat"
)

// Config holds all configuration options for workstat.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Inputs is the list of dataset files (.csv or .json) to analyze.
	// Must contain at least one path.
	Inputs []string

	// BatchSize is the number of concurrent analyses when processing
	// multiple dataset files.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .workstat in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DatasetConfigs holds per-dataset configurations loaded from the
	// config file. This is populated by LoadConfigFile.
	DatasetConfigs *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// SaveToDB indicates whether to save analysis results to the history
	// database for later comparison.
	SaveToDB bool

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/workstat on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize: DefaultBatchSize,
		SaveToDB:  true,
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for workstat.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/workstat
// On macOS: ~/Library/Application Support/workstat
// On Windows: %LOCALAPPDATA%\workstat
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for workstat.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one dataset to analyze
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	// BatchSize must be positive; zero would mean no analysis runs
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
