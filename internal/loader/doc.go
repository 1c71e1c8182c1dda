// Package loader reads employee datasets from external files.
//
// Supported formats:
//   - CSV with a header row (encoding/csv)
//   - JSON arrays of employee objects (encoding/json)
//
// The loader only builds a columnar model.Dataset from the source file;
// schema validation (which columns must exist) belongs to the analyze
// package, so a file with missing columns loads successfully and fails
// at analysis time with a data-shape error. Malformed cells, however,
// are load-time errors and carry the row and column of the offending value.
package loader
