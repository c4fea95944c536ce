package model

import "time"

// FetchResult is a single retrieved page. It is owned by the fetch call
// that produced it and is consumed once by the link parser and the
// extractors before being discarded.
type FetchResult struct {
	// URL is the effective URL after redirects.
	URL string `json:"url"`

	// RequestedURL is the URL the fetch was issued for, before any
	// protocol swap or redirect.
	RequestedURL string `json:"requested_url"`

	// StatusCode is the HTTP status of the final response.
	StatusCode int `json:"status_code"`

	// ContentType is the media type of the response without parameters.
	ContentType string `json:"content_type"`

	// HTML is the raw body, truncated to the fetcher's size cap.
	HTML string `json:"-"`

	// Text is the visible text of the page, set after parsing.
	Text string `json:"-"`

	// Title is the content of the <title> element, set after parsing.
	Title string `json:"title,omitempty"`

	// Truncated reports whether the body hit the size cap.
	Truncated bool `json:"truncated,omitempty"`

	// Rendered reports whether the page came from the headless renderer.
	Rendered bool `json:"rendered,omitempty"`

	// Error is an optional diagnostic tag. A FetchResult with a non-empty
	// Error still carries usable content.
	Error string `json:"error,omitempty"`

	// FetchedAt is when the response was received.
	FetchedAt time.Time `json:"fetched_at"`
}

// IsPlainText reports whether the page was served as text/plain.
func (p *FetchResult) IsPlainText() bool {
	return p.ContentType == "text/plain"
}
