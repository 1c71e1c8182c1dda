// Package database provides SQLite-based persistence for analysis history.
//
// Every analysis run can be saved as a row in the history database, keyed by
// dataset name and timestamp. The compare command reads this history to show
// how a dataset's headcount and averages changed between runs.
//
// Design decision: We use modernc.org/sqlite, a pure-Go SQLite driver,
// so the binary builds without cgo on every platform.
package database
