package config

// DatasetConfig holds per-dataset configuration for a single dataset name.
// This allows customizing how individual files are loaded and rendered.
type DatasetConfig struct {
	// Columns remaps source CSV headers to canonical column names.
	// Keys are source headers, values are canonical names
	// (e.g. "annual_pay: salary").
	Columns map[string]string `yaml:"columns,omitempty"`

	// Delimiter overrides the CSV field delimiter for this dataset.
	// Must be a single character; empty means comma.
	Delimiter string `yaml:"delimiter,omitempty"`

	// Currency overrides the currency symbol used in salary figures.
	Currency string `yaml:"currency,omitempty"`
}

// File represents the structure of the .workstat configuration file.
type File struct {
	// Datasets maps dataset names (source file base name without extension)
	// to their dataset-specific configurations.
	Datasets map[string]DatasetConfig `yaml:"datasets,omitempty"`

	// Defaults contains default dataset configuration applied to all
	// datasets unless overridden in the dataset-specific configuration.
	Defaults DatasetConfig `yaml:"defaults,omitempty"`
}

// GetDatasetConfig returns the configuration for a specific dataset name.
// It merges the dataset-specific configuration with defaults.
func (cf *File) GetDatasetConfig(name string) DatasetConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with dataset-specific configuration if present
	if dc, ok := cf.Datasets[name]; ok {
		if len(dc.Columns) > 0 {
			result.Columns = dc.Columns
		}
		if dc.Delimiter != "" {
			result.Delimiter = dc.Delimiter
		}
		if dc.Currency != "" {
			result.Currency = dc.Currency
		}
	}

	return result
}

// DelimiterRune returns the configured CSV delimiter as a rune,
// or 0 when unset so the loader keeps its default.
func (dc DatasetConfig) DelimiterRune() rune {
	for _, r := range dc.Delimiter {
		return r
	}
	return 0
}
