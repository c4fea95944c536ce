package model

import "time"

// Crawl limits applied to every CrawlRequest.
const (
	// DefaultMaxPages is the page cap used when a request does not set one.
	DefaultMaxPages = 10

	// MaxPagesLimit is the hard upper bound on pages per crawl.
	MaxPagesLimit = 50

	// DefaultTimeout is the total crawl budget used when a request does not set one.
	DefaultTimeout = 30 * time.Second

	// MaxTimeout is the hard upper bound on the total crawl budget.
	MaxTimeout = 120 * time.Second

	// BatchMaxURLs is the maximum number of start URLs in one batch.
	BatchMaxURLs = 10

	// BatchMaxPages is the page cap applied to each crawl of a batch.
	BatchMaxPages = 10

	// BatchMaxTimeout is the budget cap applied to each crawl of a batch.
	BatchMaxTimeout = 60 * time.Second
)

// CrawlRequest describes one crawl. It is treated as immutable once the
// crawl starts; Clamp returns a copy instead of modifying the receiver.
type CrawlRequest struct {
	// URL is the start URL as supplied by the caller. It is validated and
	// normalized before the crawl begins.
	URL string `json:"url"`

	// MaxPages is the maximum number of distinct URLs the crawl may visit.
	MaxPages int `json:"max_pages"`

	// Timeout is the total wall-clock budget of the crawl.
	Timeout time.Duration `json:"-"`

	// RenderMode enables the headless rendering fallback for pages whose
	// static HTML carries too little visible text.
	RenderMode bool `json:"render"`
}

// NewCrawlRequest returns a request for url with the default limits.
func NewCrawlRequest(url string) CrawlRequest {
	return CrawlRequest{
		URL:      url,
		MaxPages: DefaultMaxPages,
		Timeout:  DefaultTimeout,
	}
}

// Clamp returns a copy of the request with MaxPages and Timeout forced into
// (0, maxPages] and (0, maxTimeout]. Zero or negative values fall back to
// the package defaults before the caps are applied.
func (r CrawlRequest) Clamp(maxPages int, maxTimeout time.Duration) CrawlRequest {
	if r.MaxPages <= 0 {
		r.MaxPages = DefaultMaxPages
	}
	if maxPages > 0 && r.MaxPages > maxPages {
		r.MaxPages = maxPages
	}

	if r.Timeout <= 0 {
		r.Timeout = DefaultTimeout
	}
	if maxTimeout > 0 && r.Timeout > maxTimeout {
		r.Timeout = maxTimeout
	}

	return r
}
