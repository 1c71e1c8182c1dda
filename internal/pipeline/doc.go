// Package pipeline orchestrates the analysis of employee datasets.
//
// A Pipeline executes an ordered list of Steps against a model.Analysis,
// giving each statistic its own step with structured logging and context
// cancellation between steps. The BatchProcessor runs one pipeline per
// dataset with bounded concurrency for multi-file invocations.
//
// The steps compute the same results as analyze.Analyze; the pipeline form
// exists for the CLI, where per-step logging and cancellation matter.
package pipeline
