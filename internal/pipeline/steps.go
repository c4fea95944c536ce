package pipeline

import (
	"context"
	"log/slog"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"github.com/waseemnasir2k26/contact-extractor/internal/target"
)

// Crawler runs one crawl from an already validated start URL.
// *crawler.Spider implements it.
type Crawler interface {
	Crawl(ctx context.Context, req model.CrawlRequest) *model.AggregatedResult
}

// ValidateStep checks the start URL and replaces it with its canonical
// form. An invalid or blocked URL is terminal: the step stores a failed
// result on the job and returns the validation error.
type ValidateStep struct{}

// NewValidateStep creates a new ValidateStep.
func NewValidateStep() *ValidateStep {
	return &ValidateStep{}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do executes the validation step.
func (s *ValidateStep) Do(_ context.Context, job *Job) error {
	canonical, err := target.Normalize(job.Request.URL)
	if err != nil {
		job.Result = model.FailedResult(job.Input, err)
		return err
	}
	job.Request.URL = canonical
	return nil
}

// CrawlStep crawls the validated start URL and stores the aggregated
// result on the job.
type CrawlStep struct {
	crawler Crawler
	logger  *slog.Logger
}

// CrawlStepOption configures a CrawlStep.
type CrawlStepOption func(*CrawlStep)

// WithCrawlLogger sets the logger for the crawl step.
func WithCrawlLogger(logger *slog.Logger) CrawlStepOption {
	return func(s *CrawlStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCrawlStep creates a CrawlStep that delegates to c.
func NewCrawlStep(c Crawler, opts ...CrawlStepOption) *CrawlStep {
	s := &CrawlStep{
		crawler: c,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl step. Per-page failures and budget exhaustion are
// recorded on the result, so Do never returns an error.
func (s *CrawlStep) Do(ctx context.Context, job *Job) error {
	job.Result = s.crawler.Crawl(ctx, job.Request)

	s.logger.Info("crawl completed",
		"url", job.Request.URL,
		"pages", job.Result.PagesScraped,
		"failed_pages", job.Result.FailedPages,
		"stop_reason", job.Result.StopReason.String(),
		"items", job.Result.TotalItems(),
	)

	return nil
}
