package model

import "time"

// Analysis carries one dataset through the analysis pipeline.
// Steps accumulate their results into Summary; the zero-value Summary is
// created up front so every step can write to it without nil checks.
type Analysis struct {
	// Dataset is the input data. Steps treat it as read-only.
	Dataset *Dataset `json:"-"`

	// Summary collects the aggregated statistics as steps execute.
	Summary *Summary `json:"summary"`

	// StartedAt is when the pipeline began executing.
	StartedAt time.Time `json:"started_at"`

	// Err holds the first critical step error, if any.
	// It is kept out of JSON output; ErrorMessage carries the text.
	Err error `json:"-"`

	// ErrorMessage is the human-readable form of Err.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAnalysis creates an Analysis for the given dataset.
func NewAnalysis(ds *Dataset) *Analysis {
	name := ""
	if ds != nil {
		name = ds.Name()
	}
	return &Analysis{
		Dataset:   ds,
		StartedAt: time.Now().UTC(),
		Summary: &Summary{
			Dataset:     name,
			GeneratedAt: time.Now().UTC(),
		},
	}
}
