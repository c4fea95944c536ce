package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// Job carries one crawl request through the pipeline. Steps read the
// request and write the result.
type Job struct {
	// Request is the crawl request. ValidateStep replaces its URL with the
	// canonical form.
	Request model.CrawlRequest

	// Input is the URL exactly as the caller supplied it.
	Input string

	// Result is set by the step that produced it.
	Result *model.AggregatedResult

	// PerformedSteps lists the names of the steps that completed.
	PerformedSteps []string
}

// NewJob returns a Job for req.
func NewJob(req model.CrawlRequest) *Job {
	return &Job{
		Request:        req,
		Input:          req.URL,
		PerformedSteps: make([]string, 0),
	}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each receiving the job modified by the
// previous ones.
type Step interface {
	// Do executes the step. A returned error stops the pipeline.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// maxPages and maxTimeout are the hard caps Run applies to requests.
	maxPages   int
	maxTimeout time.Duration

	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithLimits sets the hard caps Run applies to max_pages and timeout.
// Non-positive values keep the defaults.
func WithLimits(maxPages int, maxTimeout time.Duration) Option {
	return func(p *Pipeline) {
		if maxPages > 0 {
			p.maxPages = maxPages
		}
		if maxTimeout > 0 {
			p.maxTimeout = maxTimeout
		}
	}
}

// New creates an empty Pipeline. Steps are added with AddStep.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:      make([]Step, 0),
		maxPages:   model.MaxPagesLimit,
		maxTimeout: model.MaxTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// NewContactPipeline returns a pipeline that validates the start URL and
// then crawls it with c.
func NewContactPipeline(c Crawler, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewValidateStep(),
		NewCrawlStep(c, WithCrawlLogger(p.logger)),
	)
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence and stops at the first error.
// Cancellation is checked before each step; steps handle their own
// deadlines.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"url", job.Input,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"url", job.Request.URL,
		)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Warn("step failed",
				"step", step.Name(),
				"url", job.Input,
				"error", err,
			)
			return err
		}

		job.PerformedSteps = append(job.PerformedSteps, step.Name())
	}

	return nil
}

// Run clamps req to the pipeline limits, executes every step and returns
// the result. It never returns nil: a failing step that left no result
// yields a failed result carrying the step's error.
func (p *Pipeline) Run(ctx context.Context, req model.CrawlRequest) *model.AggregatedResult {
	job := NewJob(req.Clamp(p.maxPages, p.maxTimeout))

	err := p.Execute(ctx, job)
	if job.Result != nil {
		return job.Result
	}
	if err == nil {
		err = ErrNoResult
	}
	return model.FailedResult(job.Input, err)
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
