package analyze

import "errors"

// Analysis errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each return site. This allows callers to use
// errors.Is() for programmatic handling while still providing human-readable
// messages. Missing-column errors are not duplicated here: the dataset's own
// model.ErrColumnNotFound is propagated so there is a single schema-error
// identity across the module.
var (
	// ErrEmptyDataset is returned when a dataset has zero rows.
	// An average over zero rows is undefined, and we reject the input
	// rather than reporting NaN values.
	ErrEmptyDataset = errors.New("dataset has no rows")

	// ErrNilDataset is returned when a nil dataset is passed to Analyze.
	ErrNilDataset = errors.New("dataset is nil")
)
