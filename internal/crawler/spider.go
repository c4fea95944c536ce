package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/waseemnasir2k26/contact-extractor/internal/fetcher"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"github.com/waseemnasir2k26/contact-extractor/internal/target"
)

// Defaults for Spider options.
const (
	// DefaultRequestTimeout caps a single fetch. The effective timeout is
	// the smaller of this and the remaining crawl budget.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultMinRenderText is the visible-text length under which a page
	// is re-fetched through the renderer when render mode is on.
	DefaultMinRenderText = 100
)

// PageFetcher retrieves a single page under a timeout.
// *fetcher.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (*model.FetchResult, error)
}

// Extractor pulls contact records out of one page.
// *extract.Extractor satisfies it.
type Extractor interface {
	Extract(text, html string) model.ExtractionResult
}

// State is the lifecycle stage of one crawl.
type State int

const (
	// StateIdle is a crawl that has not received its start URL.
	StateIdle State = iota
	// StateSeeded is a crawl whose queue holds only the start URL.
	StateSeeded
	// StateVisiting is a crawl that is fetching pages.
	StateVisiting
	// StateExhausted is a finished crawl.
	StateExhausted
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeeded:
		return "seeded"
	case StateVisiting:
		return "visiting"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Spider crawls a small set of same-site pages and extracts contact data.
//
// A Spider holds configuration only. Every Crawl call owns its own queue,
// visited set and aggregator, so one Spider can serve concurrent crawls.
type Spider struct {
	// fetcher retrieves static pages.
	fetcher PageFetcher

	// extractor runs the category rules over each page.
	extractor Extractor

	// renderer is the optional JavaScript rendering fallback.
	renderer fetcher.Renderer

	// requestTimeout caps each fetch.
	requestTimeout time.Duration

	// minRenderText is the text length under which rendering is tried.
	minRenderText int

	// rateLimit and rateBurst configure a per-crawl politeness limiter.
	// A zero rateLimit disables it.
	rateLimit rate.Limit
	rateBurst int

	// probeContactPaths queues ContactPaths on the start origin.
	probeContactPaths bool

	// filter holds user-supplied ignore and follow patterns.
	filter patternFilter

	// limits caps the aggregated result.
	limits model.AggregateLimits

	logger *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithRequestTimeout sets the per-fetch timeout cap.
func WithRequestTimeout(d time.Duration) SpiderOption {
	return func(s *Spider) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithRenderer sets the rendering fallback used for requests with
// RenderMode enabled.
func WithRenderer(r fetcher.Renderer) SpiderOption {
	return func(s *Spider) {
		s.renderer = r
	}
}

// WithMinRenderText sets the visible-text length under which a page is
// rendered.
func WithMinRenderText(n int) SpiderOption {
	return func(s *Spider) {
		s.minRenderText = n
	}
}

// WithRateLimit limits fetches to perSecond requests per second within a
// crawl. Waiting for the limiter counts against the crawl budget.
func WithRateLimit(perSecond float64) SpiderOption {
	return func(s *Spider) {
		if perSecond > 0 {
			s.rateLimit = rate.Limit(perSecond)
			s.rateBurst = 1
		}
	}
}

// WithProbeContactPaths queues well-known contact paths on the start
// origin right after the start page.
func WithProbeContactPaths(enabled bool) SpiderOption {
	return func(s *Spider) {
		s.probeContactPaths = enabled
	}
}

// WithIgnorePatterns sets URL path patterns to skip during crawling.
// Patterns use glob syntax (e.g., "/admin/*", "*.php", "/print*").
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.filter.ignore = patterns
	}
}

// WithFollowPatterns sets URL path patterns to follow during crawling.
// If set, only discovered URLs matching at least one pattern are queued.
// The start URL is always visited.
func WithFollowPatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.filter.follow = patterns
	}
}

// WithAggregateLimits sets the caps of the aggregated result.
func WithAggregateLimits(limits model.AggregateLimits) SpiderOption {
	return func(s *Spider) {
		s.limits = limits
	}
}

// WithSpiderLogger sets the logger.
func WithSpiderLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider that fetches with f and extracts with e.
func NewSpider(f PageFetcher, e Extractor, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:        f,
		extractor:      e,
		requestTimeout: DefaultRequestTimeout,
		minRenderText:  DefaultMinRenderText,
		limits:         model.DefaultAggregateLimits(),
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// crawl is the state of a single Crawl call.
type crawl struct {
	spider   *Spider
	req      model.CrawlRequest
	state    State
	deadline time.Time
	queue    *frontier
	visited  map[string]bool
	fetched  map[string]bool
	sites    map[string]bool
	agg      *model.Aggregator
	limiter  *rate.Limiter
	failed   int
}

// Crawl visits pages starting at req.URL, which must already be validated
// and normalized, and returns the aggregated contact data.
//
// The crawl stops when the queue is empty, req.MaxPages distinct URLs have
// been visited, the req.Timeout budget is spent or ctx is cancelled. None
// of these is an error: the result always holds what was aggregated so far
// and has Success set.
func (s *Spider) Crawl(ctx context.Context, req model.CrawlRequest) *model.AggregatedResult {
	start := time.Now()
	req = req.Clamp(0, 0)

	c := &crawl{
		spider:   s,
		req:      req,
		state:    StateIdle,
		deadline: start.Add(req.Timeout),
		queue:    newFrontier(),
		visited:  make(map[string]bool),
		fetched:  make(map[string]bool),
		sites:    make(map[string]bool),
		agg:      model.NewAggregator(s.limits),
	}
	if s.rateLimit > 0 {
		c.limiter = rate.NewLimiter(s.rateLimit, s.rateBurst)
	}

	crawlCtx, cancel := context.WithDeadline(ctx, c.deadline)
	defer cancel()

	startURL := normalizeURL(req.URL)
	if u, err := url.Parse(startURL); err == nil {
		c.sites[RegistrableDomain(u.Hostname())] = true
	}
	c.queue.pushBack(startURL)
	c.transition(StateSeeded)

	reason := c.run(ctx, crawlCtx)
	c.transition(StateExhausted)

	result := model.NewAggregatedResult(req.URL)
	c.agg.Fill(result)
	result.PagesScraped = c.agg.Pages()
	result.FailedPages = c.failed
	result.StopReason = reason
	result.TimeTaken = roundSeconds(time.Since(start))

	s.logger.Debug("crawl finished",
		"url", req.URL,
		"pages", result.PagesScraped,
		"failed", result.FailedPages,
		"stop_reason", reason.String(),
		"items", result.TotalItems(),
	)

	return result
}

// run is the Visiting loop. parent is the caller's context and is used to
// tell cancellation apart from budget exhaustion.
func (c *crawl) run(parent, ctx context.Context) model.StopReason {
	for {
		if c.queue.size() == 0 {
			return model.StopReasonQueueEmpty
		}
		if len(c.visited) >= c.req.MaxPages {
			return model.StopReasonPageCap
		}
		if reason, stop := c.interrupted(parent); stop {
			return reason
		}

		next, _ := c.queue.pop()
		if c.visited[next] {
			continue
		}
		c.visited[next] = true
		if c.state == StateSeeded {
			c.transition(StateVisiting)
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				if reason, stop := c.interrupted(parent); stop {
					return reason
				}
				return model.StopReasonBudget
			}
		}

		effective := c.visit(ctx, next)
		if len(c.visited) == 1 && c.spider.probeContactPaths {
			c.probe(effective)
		}
	}
}

// interrupted reports whether the caller cancelled or the budget ran out.
func (c *crawl) interrupted(parent context.Context) (model.StopReason, bool) {
	if parent.Err() != nil {
		return model.StopReasonCancelled, true
	}
	if time.Until(c.deadline) <= 0 {
		return model.StopReasonBudget, true
	}
	return model.StopReasonNone, false
}

// visit fetches, extracts and aggregates one page, then queues its links.
// It returns the effective URL of the page, or pageURL when the fetch failed.
func (c *crawl) visit(ctx context.Context, pageURL string) string {
	s := c.spider

	page, err := s.fetcher.Fetch(ctx, pageURL, c.timeout())
	if err != nil {
		c.failed++
		s.logger.Debug("page skipped", "url", pageURL, "error", err)
		return pageURL
	}

	parsed := c.parse(page)

	if c.req.RenderMode && s.renderer != nil && len(parsed.Text) < s.minRenderText && time.Until(c.deadline) > 0 {
		if rendered, ok := c.render(ctx, pageURL, len(parsed.Text)); ok {
			page, parsed = rendered.page, rendered.parsed
		}
	}

	html := page.HTML
	if page.IsPlainText() {
		html = ""
	}
	c.agg.Add(s.extractor.Extract(parsed.Text, html))

	c.fetched[normalizeURL(page.URL)] = true

	c.enqueue(parsed.Links)
	return page.URL
}

// parse derives links and visible text from a fetched page. A parse
// failure leaves the page usable through its raw HTML.
func (c *crawl) parse(page *model.FetchResult) *ParseResult {
	if page.IsPlainText() {
		text := page.HTML
		if len(text) > MaxTextLength {
			text = text[:MaxTextLength]
		}
		page.Text = text
		return &ParseResult{Text: text}
	}

	parsed := &ParseResult{}
	parser, err := NewParser(page.URL)
	if err == nil {
		parsed, err = parser.Parse(strings.NewReader(page.HTML))
	}
	if err != nil {
		c.spider.logger.Debug("parse failed", "url", page.URL, "error", err)
	}
	if parsed.Title != "" {
		page.Title = parsed.Title
	}
	page.Text = parsed.Text
	return parsed
}

type renderedPage struct {
	page   *model.FetchResult
	parsed *ParseResult
}

// render re-fetches pageURL through the renderer and keeps the result only
// when it yields more visible text than the static page. A render that
// ended on a private or loopback host is discarded.
func (c *crawl) render(ctx context.Context, pageURL string, staticText int) (renderedPage, bool) {
	page, err := c.spider.renderer.Render(ctx, pageURL, c.timeout())
	if err != nil {
		c.spider.logger.Debug("render failed", "url", pageURL, "error", err)
		return renderedPage{}, false
	}
	if target.IsBlockedRedirect(pageURL, page.URL) {
		c.spider.logger.Debug("render redirect refused", "url", pageURL, "final_url", page.URL)
		return renderedPage{}, false
	}
	page.Rendered = true
	parsed := c.parse(page)
	if len(parsed.Text) <= staticText {
		return renderedPage{}, false
	}
	return renderedPage{page: page, parsed: parsed}, true
}

// enqueue queues same-site links that pass the skip lists and user
// patterns. Priority links go to the front in discovery order.
func (c *crawl) enqueue(links []string) {
	var front, back []string
	for _, link := range links {
		candidate, ok := c.candidate(link)
		if !ok {
			continue
		}
		if candidate.Priority == PriorityHigh {
			front = append(front, candidate.URL)
		} else {
			back = append(back, candidate.URL)
		}
	}
	c.queue.pushFront(front...)
	c.queue.pushBack(back...)
}

// candidate turns a discovered link into a LinkCandidate, or reports false
// when the link must not be queued.
func (c *crawl) candidate(link string) (LinkCandidate, bool) {
	normalized := normalizeURL(link)
	if c.visited[normalized] || c.fetched[normalized] {
		return LinkCandidate{}, false
	}
	if !c.sameSite(normalized) || IsSkipped(normalized) || !c.spider.filter.allows(normalized) {
		return LinkCandidate{}, false
	}
	return LinkCandidate{URL: normalized, Priority: Classify(normalized)}, true
}

func (c *crawl) sameSite(link string) bool {
	for site := range c.sites {
		if SameSite(site, link) {
			return true
		}
	}
	return false
}

// probe queues ContactPaths on the origin of base ahead of everything else.
// A base that redirected off the start site falls back to the start URL.
func (c *crawl) probe(base string) {
	if !c.sameSite(base) {
		base = c.req.URL
	}
	origin, err := url.Parse(base)
	if err != nil {
		return
	}
	probes := make([]string, 0, len(ContactPaths))
	for _, p := range ContactPaths {
		u := url.URL{Scheme: origin.Scheme, Host: origin.Host, Path: p}
		normalized := normalizeURL(u.String())
		if c.visited[normalized] || c.fetched[normalized] {
			continue
		}
		probes = append(probes, normalized)
	}
	c.queue.pushFront(probes...)
}

// timeout returns min(request cap, remaining budget).
func (c *crawl) timeout() time.Duration {
	remaining := time.Until(c.deadline)
	if remaining < c.spider.requestTimeout {
		return remaining
	}
	return c.spider.requestTimeout
}

func (c *crawl) transition(to State) {
	c.spider.logger.Debug("crawl state", "url", c.req.URL, "from", c.state.String(), "to", to.String())
	c.state = to
}

// roundSeconds returns d in seconds rounded to two decimals.
func roundSeconds(d time.Duration) float64 {
	return float64(d.Round(10*time.Millisecond)) / float64(time.Second)
}
