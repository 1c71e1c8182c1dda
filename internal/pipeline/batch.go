package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/workstat/internal/model"
)

// BatchProcessor handles concurrent analysis of multiple datasets.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-dataset execution
// 2. It allows different batch strategies (e.g., rate limiting)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each dataset.
	// We use a factory to ensure each analysis gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed analyses.
	// Access is synchronized via mutex.
	results []*model.Analysis
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each dataset to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak between
// analyses and allows for per-dataset customization if needed.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*model.Analysis, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process analyzes all datasets with bounded concurrency and returns the
// analyses in the same order as the input.
//
// A failed analysis does not abort the batch: its error is recorded in the
// returned Analysis, and the first error is also returned after all
// datasets have been processed.
func (bp *BatchProcessor) Process(ctx context.Context, datasets []*model.Dataset) ([]*model.Analysis, error) {
	analyses := make([]*model.Analysis, len(datasets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, ds := range datasets {
		g.Go(func() error {
			analysis := model.NewAnalysis(ds)
			analyses[i] = analysis

			bp.logger.Info("analyzing dataset",
				"dataset", ds.Name(),
				"rows", ds.Len(),
			)

			if err := bp.pipelineFactory().Execute(ctx, analysis); err != nil {
				// Keep going; the error is recorded in the analysis.
				bp.logger.Error("analysis failed",
					"dataset", ds.Name(),
					"error", err,
				)
				return nil
			}

			bp.mu.Lock()
			bp.results = append(bp.results, analysis)
			bp.mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return analyses, err
	}

	// Surface the first recorded failure to the caller.
	for _, a := range analyses {
		if a != nil && a.Err != nil {
			return analyses, a.Err
		}
	}
	return analyses, nil
}

// Results returns the successfully completed analyses.
func (bp *BatchProcessor) Results() []*model.Analysis {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	out := make([]*model.Analysis, len(bp.results))
	copy(out, bp.results)
	return out
}
