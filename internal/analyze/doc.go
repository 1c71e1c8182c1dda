// Package analyze computes summary statistics over employee datasets.
//
// The package exposes the column-level primitives (Mean, Distinct,
// GroupedMeans) and the Analyze function that composes them into a complete
// model.Summary. All functions are pure: they never mutate the input dataset
// and hold no package-level state, so they are safe to call concurrently
// from independent call sites.
//
// Design decision: The pipeline package drives the same primitives as
// discrete steps to get per-step logging and cancellation; Analyze exists as
// the one-call library entry point for callers that do not need a pipeline.
package analyze
