package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of crawls a BatchProcessor runs at once
// unless WithConcurrency says otherwise.
const DefaultConcurrency = 5

// BatchProcessor crawls several start URLs concurrently. Each URL gets a
// fresh pipeline from the factory and its request is clamped to the batch
// caps (model.BatchMaxPages and model.BatchMaxTimeout).
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each URL.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent crawls.
	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent crawls.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// checkBatch enforces the batch size bounds.
func checkBatch(reqs []model.CrawlRequest) error {
	if len(reqs) == 0 {
		return ErrEmptyBatch
	}
	if len(reqs) > model.BatchMaxURLs {
		return ErrBatchTooLarge
	}
	return nil
}

// ProcessBatch crawls every request and returns one result per request,
// in request order. Failed crawls are reported in their result, not as an
// error. The error is non-nil only when the batch is rejected or ctx is
// cancelled; URLs that never started then carry a failed result.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, reqs []model.CrawlRequest) ([]*model.AggregatedResult, error) {
	if err := checkBatch(reqs); err != nil {
		return nil, err
	}

	results := make([]*model.AggregatedResult, len(reqs))
	err := bp.process(ctx, reqs, func(result *model.AggregatedResult, index int) {
		results[index] = result
	})

	for i, r := range results {
		if r == nil {
			results[i] = model.FailedResult(reqs[i].URL, context.Cause(ctx))
		}
	}

	return results, err
}

// ProcessBatchWithCallback crawls every request and calls callback as each
// crawl completes. The callback is called from the goroutine that ran the
// crawl, so it must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	reqs []model.CrawlRequest,
	callback func(result *model.AggregatedResult, index int),
) error {
	if err := checkBatch(reqs); err != nil {
		return err
	}
	return bp.process(ctx, reqs, callback)
}

func (bp *BatchProcessor) process(
	ctx context.Context,
	reqs []model.CrawlRequest,
	callback func(result *model.AggregatedResult, index int),
) error {
	bp.logger.Info("starting batch processing",
		"total_urls", len(reqs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("crawling url",
				"url", req.URL,
				"index", i+1,
				"total", len(reqs),
			)

			req = req.Clamp(model.BatchMaxPages, model.BatchMaxTimeout)
			result := bp.pipelineFactory().Run(ctx, req)

			if !result.Success {
				bp.logger.Warn("crawl failed",
					"url", req.URL,
					"error", result.Error,
				)
			}

			callback(result, i)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_urls", len(reqs),
		"elapsed", time.Since(startTime),
	)

	return err
}

// CountSuccessful returns the number of results with Success set.
func CountSuccessful(results []*model.AggregatedResult) int {
	n := 0
	for _, r := range results {
		if r != nil && r.Success {
			n++
		}
	}
	return n
}
