package model

import (
	"errors"
	"fmt"
)

// Dataset lookup errors.
//
// Design decision: We use package-level sentinel errors so that callers can
// use errors.Is() for programmatic handling while the wrapped message still
// names the offending column.
var (
	// ErrColumnNotFound is returned when a requested column does not exist
	// in the dataset. This is the data-shape error for schema violations.
	ErrColumnNotFound = errors.New("column not found in dataset")

	// ErrColumnType is returned when a column exists but does not hold the
	// requested kind of values (e.g. asking for numbers from a text column).
	ErrColumnType = errors.New("column has wrong type")

	// ErrRaggedColumns is returned when columns of different lengths are
	// combined into one dataset. All columns must have the same row count.
	ErrRaggedColumns = errors.New("columns have different lengths")
)

// ColumnKind identifies the value kind a Column holds.
type ColumnKind int

const (
	// KindNumber marks a column of float64 values.
	KindNumber ColumnKind = iota

	// KindText marks a column of string values.
	KindText
)

// String returns the human-readable kind name.
func (k ColumnKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Column is a single named column of a Dataset. Exactly one of the value
// slices is populated, according to Kind.
type Column struct {
	// Name is the canonical column name (e.g. "age", "department").
	Name string

	// Kind determines which value slice is populated.
	Kind ColumnKind

	// numbers holds the values of a KindNumber column.
	numbers []float64

	// text holds the values of a KindText column.
	text []string
}

// NewNumberColumn creates a numeric column with the given values.
func NewNumberColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: KindNumber, numbers: values}
}

// NewTextColumn creates a text column with the given values.
func NewTextColumn(name string, values []string) Column {
	return Column{Name: name, Kind: KindText, text: values}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.Kind == KindNumber {
		return len(c.numbers)
	}
	return len(c.text)
}

// Dataset is an ordered, columnar table of employee data.
//
// The dataset is supplied by the caller and treated as read-only by every
// consumer: the analyzer never mutates it, and accessor methods return the
// backing slices without copying on the understanding that callers do not
// write through them.
//
// Design decision: We store data column-major rather than as a []Record
// because the analyzer consumes whole columns (means, distinct values,
// group-by) and because schema errors ("column absent") are naturally
// expressed as name lookups against a column table.
type Dataset struct {
	// name identifies the dataset, typically the source file base name.
	name string

	// columns holds the columns in source order.
	columns []Column

	// byName maps a column name to its index in columns.
	byName map[string]int

	// rows is the shared row count of all columns.
	rows int
}

// NewDataset creates a Dataset from the given columns.
// All columns must have the same length; a mismatch returns ErrRaggedColumns.
// A duplicate column name returns an error naming the column.
func NewDataset(name string, columns ...Column) (*Dataset, error) {
	ds := &Dataset{
		name:    name,
		columns: columns,
		byName:  make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if _, ok := ds.byName[col.Name]; ok {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		ds.byName[col.Name] = i

		if i == 0 {
			ds.rows = col.Len()
			continue
		}
		if col.Len() != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w",
				col.Name, col.Len(), ds.rows, ErrRaggedColumns)
		}
	}

	return ds, nil
}

// FromRecords builds a Dataset with the four canonical employee columns
// from a slice of records. This is the convenience constructor for callers
// that already hold row-oriented data.
func FromRecords(name string, records []Record) *Dataset {
	ages := make([]float64, len(records))
	salaries := make([]float64, len(records))
	departments := make([]string, len(records))
	cities := make([]string, len(records))

	for i, r := range records {
		ages[i] = float64(r.Age)
		salaries[i] = r.Salary
		departments[i] = r.Department
		cities[i] = r.City
	}

	// Error is impossible here: column names are fixed and lengths equal.
	ds, _ := NewDataset(name,
		NewNumberColumn(ColumnAge, ages),
		NewNumberColumn(ColumnSalary, salaries),
		NewTextColumn(ColumnDepartment, departments),
		NewTextColumn(ColumnCity, cities),
	)
	return ds
}

// Name returns the dataset name.
func (ds *Dataset) Name() string {
	return ds.name
}

// Len returns the number of rows in the dataset.
func (ds *Dataset) Len() int {
	return ds.rows
}

// ColumnNames returns the column names in source order.
func (ds *Dataset) ColumnNames() []string {
	names := make([]string, len(ds.columns))
	for i, col := range ds.columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.byName[name]
	return ok
}

// NumberColumn returns the values of the named numeric column.
// It returns ErrColumnNotFound if the column does not exist and
// ErrColumnType if it is not numeric.
func (ds *Dataset) NumberColumn(name string) ([]float64, error) {
	i, ok := ds.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrColumnNotFound)
	}
	col := ds.columns[i]
	if col.Kind != KindNumber {
		return nil, fmt.Errorf("%q is %s, want number: %w", name, col.Kind, ErrColumnType)
	}
	return col.numbers, nil
}

// TextColumn returns the values of the named text column.
// It returns ErrColumnNotFound if the column does not exist and
// ErrColumnType if it is not text.
func (ds *Dataset) TextColumn(name string) ([]string, error) {
	i, ok := ds.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrColumnNotFound)
	}
	col := ds.columns[i]
	if col.Kind != KindText {
		return nil, fmt.Errorf("%q is %s, want text: %w", name, col.Kind, ErrColumnType)
	}
	return col.text, nil
}

// Records materializes the dataset as row-oriented employee records.
// It requires the four canonical columns and returns a data-shape error
// if any is absent.
func (ds *Dataset) Records() ([]Record, error) {
	ages, err := ds.NumberColumn(ColumnAge)
	if err != nil {
		return nil, err
	}
	salaries, err := ds.NumberColumn(ColumnSalary)
	if err != nil {
		return nil, err
	}
	departments, err := ds.TextColumn(ColumnDepartment)
	if err != nil {
		return nil, err
	}
	cities, err := ds.TextColumn(ColumnCity)
	if err != nil {
		return nil, err
	}

	records := make([]Record, ds.rows)
	for i := range records {
		records[i] = Record{
			Age:        int(ages[i]),
			Salary:     salaries[i],
			Department: departments[i],
			City:       cities[i],
		}
	}
	return records, nil
}
