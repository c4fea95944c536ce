package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"github.com/waseemnasir2k26/contact-extractor/internal/target"
)

const (
	// defaultRenderSettle is how long the page may run scripts after
	// DOMContentLoaded before the DOM is captured.
	defaultRenderSettle = time.Second

	// defaultRenderSessions bounds concurrent browser sessions.
	defaultRenderSessions = 2
)

// ChromedpRenderer renders pages with headless Chrome through chromedp.
// Each Render call starts its own browser allocator so that sessions do
// not share cookies or storage.
type ChromedpRenderer struct {
	// execPath is the Chrome binary; empty lets chromedp search for one.
	execPath string

	// userAgent is the User-Agent reported by the browser.
	userAgent string

	// maxBodySize caps the captured HTML.
	maxBodySize int64

	// settle is the pause between navigation and DOM capture.
	settle time.Duration

	// semaphore bounds concurrent sessions.
	semaphore chan struct{}

	// logger for structured logging.
	logger *slog.Logger
}

// RenderOption configures a ChromedpRenderer.
type RenderOption func(*ChromedpRenderer)

// WithExecPath sets the Chrome or Chromium binary to launch.
func WithExecPath(path string) RenderOption {
	return func(r *ChromedpRenderer) {
		r.execPath = path
	}
}

// WithRenderUserAgent sets the browser User-Agent.
func WithRenderUserAgent(ua string) RenderOption {
	return func(r *ChromedpRenderer) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// WithRenderMaxBodySize caps the captured HTML in bytes.
func WithRenderMaxBodySize(size int64) RenderOption {
	return func(r *ChromedpRenderer) {
		if size > 0 {
			r.maxBodySize = size
		}
	}
}

// WithSettleTime sets the pause between navigation and DOM capture.
func WithSettleTime(d time.Duration) RenderOption {
	return func(r *ChromedpRenderer) {
		if d >= 0 {
			r.settle = d
		}
	}
}

// WithSessions bounds the number of concurrent browser sessions.
func WithSessions(n int) RenderOption {
	return func(r *ChromedpRenderer) {
		if n > 0 {
			r.semaphore = make(chan struct{}, n)
		}
	}
}

// WithRenderLogger sets a custom logger.
func WithRenderLogger(logger *slog.Logger) RenderOption {
	return func(r *ChromedpRenderer) {
		r.logger = logger
	}
}

// NewChromedpRenderer creates a renderer. No browser is started until the
// first Render call.
func NewChromedpRenderer(opts ...RenderOption) *ChromedpRenderer {
	r := &ChromedpRenderer{
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		settle:      defaultRenderSettle,
		semaphore:   make(chan struct{}, defaultRenderSessions),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Render implements Renderer.
func (r *ChromedpRenderer) Render(ctx context.Context, url string, timeout time.Duration) (*model.FetchResult, error) {
	select {
	case r.semaphore <- struct{}{}:
		defer func() { <-r.semaphore }()
	case <-ctx.Done():
		return nil, &Error{URL: url, Kind: ErrFetchTimeout, Causes: []string{"waiting for a browser session"}}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(r.userAgent),
		chromedp.WindowSize(1920, 1080),
	)
	if r.execPath != "" {
		execOpts = append(execOpts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, execOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	start := time.Now()
	var (
		html     string
		title    string
		finalURL string
	)

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.settle),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		kind := ErrRendererUnavailable
		if ctx.Err() != nil {
			kind = ErrFetchTimeout
		}
		r.logger.Debug("render failed", "url", url, "error", err)
		return nil, &Error{URL: url, Kind: kind, Causes: []string{describeRenderError(err)}}
	}

	if finalURL == "" {
		finalURL = url
	}
	if target.IsBlockedRedirect(url, finalURL) {
		r.logger.Debug("render redirect refused", "url", url, "final_url", finalURL)
		return nil, &Error{URL: url, Kind: ErrBlockedRedirect, Causes: []string{"redirected to " + finalURL}}
	}

	truncated := false
	if int64(len(html)) > r.maxBodySize {
		html = html[:r.maxBodySize]
		truncated = true
	}

	r.logger.Debug("render complete",
		"url", url,
		"final_url", finalURL,
		"latency_ms", time.Since(start).Milliseconds(),
		"html_bytes", len(html),
	)

	return &model.FetchResult{
		URL:          finalURL,
		RequestedURL: url,
		StatusCode:   200,
		ContentType:  "text/html",
		HTML:         html,
		Title:        title,
		Truncated:    truncated,
		Rendered:     true,
		FetchedAt:    time.Now().UTC(),
	}, nil
}

// describeRenderError shortens chromedp errors for diagnostics.
func describeRenderError(err error) string {
	msg := fmt.Sprintf("chromedp: %v", err)
	if len(msg) > 80 {
		msg = msg[:80]
	}
	return msg
}
