// Package main provides the entry point for the workstat CLI.
//
// Workstat analyzes employee datasets and renders summary reports.
// It computes headcounts, averages, and per-department statistics from
// CSV or JSON files.
//
// Usage:
//
//	workstat analyze <dataset.csv>
//	workstat compare <dataset-name>
//
// See --help for all available options.
package main

// main is the entry point for workstat.
func main() {
	Execute()
}
