package loader

import "errors"

// Loader errors.
var (
	// ErrNoHeader is returned when a CSV file is empty or has no header row.
	ErrNoHeader = errors.New("csv file has no header row")

	// ErrBadNumber is returned when a numeric column contains a cell that
	// cannot be parsed as a number. The wrapped message carries the row
	// number and column name.
	ErrBadNumber = errors.New("invalid numeric value")

	// ErrUnsupportedFormat is returned when a file extension is neither
	// .csv nor .json.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)
