// Package model defines the core data structures used throughout workstat.
//
// This package contains the following main types:
//   - Record: A single employee row
//   - Dataset: A columnar, read-only table of employee records
//   - Summary: The aggregated statistics produced by an analysis
//   - DeptAverages: An ordered department-to-average mapping
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (loader, analyze, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
