package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/workstat/internal/model"
)

// numericColumns lists the canonical columns parsed as numbers.
// Every other column is kept as text.
var numericColumns = map[string]bool{
	model.ColumnAge:    true,
	model.ColumnSalary: true,
}

// Loader reads employee datasets from files.
//
// Design decision: Loader is a struct with functional options rather than
// free functions because column remapping and delimiter settings come from
// per-dataset configuration and need to travel with the loader.
type Loader struct {
	// columnMapping maps source header names to canonical column names.
	// Headers not present in the map are used as-is (lowercased).
	columnMapping map[string]string

	// comma is the CSV field delimiter.
	comma rune
}

// Option configures a Loader.
type Option func(*Loader)

// WithColumnMapping remaps source headers to canonical column names.
// Keys are source header names, values are canonical names
// (e.g. "annual_pay" -> "salary").
func WithColumnMapping(mapping map[string]string) Option {
	return func(l *Loader) {
		l.columnMapping = mapping
	}
}

// WithDelimiter sets the CSV field delimiter. The default is a comma.
func WithDelimiter(comma rune) Option {
	return func(l *Loader) {
		if comma != 0 {
			l.comma = comma
		}
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{comma: ','}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile loads a dataset from the given path, choosing the format by
// file extension. The dataset name is the base file name without extension.
func (l *Loader) LoadFile(path string) (*model.Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dataset path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	name := datasetName(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return l.LoadCSV(name, f)
	case ".json":
		return l.LoadJSON(name, f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadCSV reads a CSV stream with a header row into a columnar dataset.
// The canonical age and salary columns are parsed as numbers; all other
// columns are loaded as text.
func (l *Loader) LoadCSV(name string, r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = l.comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = l.canonicalName(h)
	}

	cells := make([][]string, len(names))
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		row++
		for i := range names {
			cells[i] = append(cells[i], strings.TrimSpace(record[i]))
		}
	}

	columns := make([]model.Column, len(names))
	for i, colName := range names {
		if numericColumns[colName] {
			values, err := parseNumbers(colName, cells[i])
			if err != nil {
				return nil, err
			}
			columns[i] = model.NewNumberColumn(colName, values)
			continue
		}
		columns[i] = model.NewTextColumn(colName, cells[i])
	}

	return model.NewDataset(name, columns...)
}

// canonicalName maps a source header to its canonical column name.
func (l *Loader) canonicalName(header string) string {
	h := strings.TrimSpace(header)
	if mapped, ok := l.columnMapping[h]; ok {
		return mapped
	}
	return strings.ToLower(h)
}

// parseNumbers parses a column of raw cells into floats.
// Row numbers in error messages are 1-based data rows (the header is row 0).
func parseNumbers(column string, cells []string) ([]float64, error) {
	values := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %q: %w", i+1, column, cell, ErrBadNumber)
		}
		values[i] = v
	}
	return values, nil
}

// datasetName derives the dataset name from a file path.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
