package model

import (
	"sort"
	"time"
)

// StopReason explains why a crawl stopped visiting pages.
type StopReason string

// Stop reasons.
const (
	// StopReasonNone is set on results that never started a crawl.
	StopReasonNone StopReason = ""
	// StopReasonQueueEmpty means every discovered URL was visited.
	StopReasonQueueEmpty StopReason = "queue_empty"
	// StopReasonPageCap means max_pages distinct URLs were visited.
	StopReasonPageCap StopReason = "page_cap"
	// StopReasonBudget means the wall-clock budget ran out.
	StopReasonBudget StopReason = "budget"
	// StopReasonCancelled means the caller cancelled the crawl.
	StopReasonCancelled StopReason = "cancelled"
)

// String returns the string representation of the StopReason.
func (r StopReason) String() string {
	if r == StopReasonNone {
		return "none"
	}
	return string(r)
}

// AggregatedResult is the outcome of one crawl. It is the only artifact
// visible to callers and is not modified after the crawl returns it.
//
// All list fields are non-nil so that they encode as [] rather than null.
type AggregatedResult struct {
	// Success is false only when the crawl could not start.
	Success bool `json:"success"`

	// SourceURL is the canonical start URL, or the raw input when
	// validation failed.
	SourceURL string `json:"source_url"`

	// PagesScraped counts pages that were fetched and extracted.
	PagesScraped int `json:"pages_scraped"`

	// TimeTaken is the crawl duration in seconds. Informational only.
	TimeTaken float64 `json:"time_taken"`

	Emails      []string                   `json:"emails"`
	Phones      []Phone                    `json:"phones"`
	WhatsApp    []WhatsApp                 `json:"whatsapp"`
	SocialLinks map[string][]SocialProfile `json:"social_links"`
	Names       []string                   `json:"names"`
	Addresses   []string                   `json:"addresses"`

	// Error describes why the crawl could not start.
	Error string `json:"error,omitempty"`

	// FailedPages counts visited URLs whose fetch failed.
	FailedPages int `json:"failed_pages"`

	// StopReason records which condition ended the crawl.
	StopReason StopReason `json:"stop_reason,omitempty"`

	// ExtractedAt is when the crawl finished.
	ExtractedAt time.Time `json:"extracted_at"`
}

// NewAggregatedResult returns a successful, empty result for sourceURL.
func NewAggregatedResult(sourceURL string) *AggregatedResult {
	return &AggregatedResult{
		Success:     true,
		SourceURL:   sourceURL,
		Emails:      []string{},
		Phones:      []Phone{},
		WhatsApp:    []WhatsApp{},
		SocialLinks: map[string][]SocialProfile{},
		Names:       []string{},
		Addresses:   []string{},
		ExtractedAt: time.Now().UTC(),
	}
}

// FailedResult returns a result with success=false, the given error and
// every category empty.
func FailedResult(sourceURL string, err error) *AggregatedResult {
	r := NewAggregatedResult(sourceURL)
	r.Success = false
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// SocialCount returns the number of social profiles across all platforms.
func (r *AggregatedResult) SocialCount() int {
	n := 0
	for _, profiles := range r.SocialLinks {
		n += len(profiles)
	}
	return n
}

// TotalItems returns the number of records across all categories.
func (r *AggregatedResult) TotalItems() int {
	return len(r.Emails) + len(r.Phones) + len(r.WhatsApp) +
		r.SocialCount() + len(r.Names) + len(r.Addresses)
}

// Platforms returns the platforms present in SocialLinks, sorted.
func (r *AggregatedResult) Platforms() []string {
	platforms := make([]string, 0, len(r.SocialLinks))
	for p := range r.SocialLinks {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}
