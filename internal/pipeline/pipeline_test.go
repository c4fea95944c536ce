package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"github.com/waseemnasir2k26/contact-extractor/internal/target"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, job *Job) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, job *Job) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, job)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// fakeCrawler records the requests it receives and returns a result with
// one email.
type fakeCrawler struct {
	mu       sync.Mutex
	requests []model.CrawlRequest
	delay    time.Duration
}

func (f *fakeCrawler) Crawl(ctx context.Context, req model.CrawlRequest) *model.AggregatedResult {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	result := model.NewAggregatedResult(req.URL)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			result.StopReason = model.StopReasonCancelled
			return result
		case <-time.After(f.delay):
		}
	}
	result.PagesScraped = 1
	result.Emails = []string{"info@" + strings.TrimPrefix(req.URL, "https://")}
	result.StopReason = model.StopReasonQueueEmpty
	return result
}

func (f *fakeCrawler) seen() []model.CrawlRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CrawlRequest(nil), f.requests...)
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.maxPages != model.MaxPagesLimit {
			t.Errorf("expected max pages %d, got %d", model.MaxPagesLimit, p.maxPages)
		}
		if p.maxTimeout != model.MaxTimeout {
			t.Errorf("expected max timeout %v, got %v", model.MaxTimeout, p.maxTimeout)
		}
		if p.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithLimits option", func(t *testing.T) {
		t.Parallel()

		p := New(WithLimits(5, 20*time.Second))

		if p.maxPages != 5 {
			t.Errorf("expected max pages 5, got %d", p.maxPages)
		}
		if p.maxTimeout != 20*time.Second {
			t.Errorf("expected max timeout 20s, got %v", p.maxTimeout)
		}
	})

	t.Run("ignores non-positive limits", func(t *testing.T) {
		t.Parallel()

		p := New(WithLimits(0, -time.Second))

		if p.maxPages != model.MaxPagesLimit {
			t.Errorf("expected max pages %d, got %d", model.MaxPagesLimit, p.maxPages)
		}
		if p.maxTimeout != model.MaxTimeout {
			t.Errorf("expected max timeout %v, got %v", model.MaxTimeout, p.maxTimeout)
		}
	})

	t.Run("contact pipeline validates then crawls", func(t *testing.T) {
		t.Parallel()

		p := NewContactPipeline(&fakeCrawler{})
		names := p.StepNames()

		if len(names) != 2 || names[0] != "validate" || names[1] != "crawl" {
			t.Errorf("expected [validate crawl], got %v", names)
		}
	})
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New()
		for _, name := range []string{"first", "second", "third"} {
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *Job) error {
					order = append(order, name)
					return nil
				},
			})
		}

		job := NewJob(model.NewCrawlRequest("example.com"))
		if err := p.Execute(context.Background(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Join(order, ",") != "first,second,third" {
			t.Errorf("expected first,second,third, got %v", order)
		}
		if len(job.PerformedSteps) != 3 {
			t.Errorf("expected 3 performed steps, got %d", len(job.PerformedSteps))
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		errStep := errors.New("step failed")
		failing := &mockStep{
			name:   "failing",
			doFunc: func(_ context.Context, _ *Job) error { return errStep },
		}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		err := p.Execute(context.Background(), NewJob(model.NewCrawlRequest("example.com")))
		if !errors.Is(err, errStep) {
			t.Errorf("expected step error, got %v", err)
		}
		if after.callCount != 0 {
			t.Errorf("expected step after failure to be skipped, got %d calls", after.callCount)
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		err := p.Execute(ctx, NewJob(model.NewCrawlRequest("example.com")))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Errorf("expected step not to run, got %d calls", step.callCount)
		}
	})
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	t.Run("bare domain is validated and crawled", func(t *testing.T) {
		t.Parallel()

		crawler := &fakeCrawler{}
		p := NewContactPipeline(crawler)

		result := p.Run(context.Background(), model.NewCrawlRequest("example.com"))

		if !result.Success {
			t.Fatalf("expected success, got error %q", result.Error)
		}
		if result.SourceURL != "https://example.com" {
			t.Errorf("expected source url https://example.com, got %q", result.SourceURL)
		}
		seen := crawler.seen()
		if len(seen) != 1 || seen[0].URL != "https://example.com" {
			t.Errorf("expected one crawl of https://example.com, got %v", seen)
		}
	})

	t.Run("requests are clamped to hard caps", func(t *testing.T) {
		t.Parallel()

		crawler := &fakeCrawler{}
		p := NewContactPipeline(crawler)

		req := model.CrawlRequest{URL: "example.com", MaxPages: 500, Timeout: time.Hour}
		p.Run(context.Background(), req)

		seen := crawler.seen()
		if len(seen) != 1 {
			t.Fatalf("expected 1 crawl, got %d", len(seen))
		}
		if seen[0].MaxPages != model.MaxPagesLimit {
			t.Errorf("expected max pages %d, got %d", model.MaxPagesLimit, seen[0].MaxPages)
		}
		if seen[0].Timeout != model.MaxTimeout {
			t.Errorf("expected timeout %v, got %v", model.MaxTimeout, seen[0].Timeout)
		}
	})

	t.Run("blocked and invalid start urls never crawl", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			input   string
			wantErr error
		}{
			{input: "localhost", wantErr: target.ErrBlockedHost},
			{input: "http://127.0.0.1/x", wantErr: target.ErrBlockedHost},
			{input: "http://192.168.1.5", wantErr: target.ErrBlockedHost},
			{input: "http://10.0.0.1", wantErr: target.ErrBlockedHost},
			{input: "", wantErr: target.ErrInvalidURL},
			{input: "ftp://example.com", wantErr: target.ErrInvalidURL},
		}

		for _, tt := range tests {
			crawler := &fakeCrawler{}
			p := NewContactPipeline(crawler)

			result := p.Run(context.Background(), model.NewCrawlRequest(tt.input))

			if result.Success {
				t.Errorf("%q: expected success=false", tt.input)
			}
			if result.Error == "" {
				t.Errorf("%q: expected populated error", tt.input)
			}
			if _, err := target.Normalize(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("%q: expected %v, got %v", tt.input, tt.wantErr, err)
			}
			if result.TotalItems() != 0 {
				t.Errorf("%q: expected empty categories, got %d items", tt.input, result.TotalItems())
			}
			if result.Emails == nil || result.Phones == nil || result.SocialLinks == nil {
				t.Errorf("%q: expected non-nil empty lists", tt.input)
			}
			if len(crawler.seen()) != 0 {
				t.Errorf("%q: expected no crawl, got %d", tt.input, len(crawler.seen()))
			}
		}
	})

	t.Run("failed result keeps the raw input as source url", func(t *testing.T) {
		t.Parallel()

		p := NewContactPipeline(&fakeCrawler{})
		result := p.Run(context.Background(), model.NewCrawlRequest("localhost"))

		if result.SourceURL != "localhost" {
			t.Errorf("expected source url localhost, got %q", result.SourceURL)
		}
	})

	t.Run("pipeline without result step reports an error", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "noop"})

		result := p.Run(context.Background(), model.NewCrawlRequest("example.com"))

		if result.Success {
			t.Error("expected success=false")
		}
		if result.Error != ErrNoResult.Error() {
			t.Errorf("expected error %q, got %q", ErrNoResult.Error(), result.Error)
		}
	})
}

func TestValidateStep(t *testing.T) {
	t.Parallel()

	step := NewValidateStep()
	if step.Name() != "validate" {
		t.Errorf("expected name validate, got %q", step.Name())
	}

	job := NewJob(model.NewCrawlRequest("  Example.COM/Contact#top "))
	if err := step.Do(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Request.URL != "https://example.com/Contact" {
		t.Errorf("expected https://example.com/Contact, got %q", job.Request.URL)
	}
	if job.Result != nil {
		t.Error("expected no result after successful validation")
	}
}

func TestCrawlStep(t *testing.T) {
	t.Parallel()

	crawler := &fakeCrawler{}
	step := NewCrawlStep(crawler, WithCrawlLogger(nil))

	if step.Name() != "crawl" {
		t.Errorf("expected name crawl, got %q", step.Name())
	}
	if step.logger == nil {
		t.Error("expected nil logger to keep the default")
	}

	job := NewJob(model.CrawlRequest{URL: "https://acme.com", MaxPages: 3, Timeout: time.Second})
	if err := step.Do(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Result == nil || job.Result.PagesScraped != 1 {
		t.Fatalf("expected result with 1 page, got %+v", job.Result)
	}
	if job.Result.Emails[0] != "info@acme.com" {
		t.Errorf("expected info@acme.com, got %v", job.Result.Emails)
	}
}
