package model

import (
	"testing"
	"time"
)

func TestCrawlRequestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		req          CrawlRequest
		maxPages     int
		maxTimeout   time.Duration
		wantPages    int
		wantTimeout  time.Duration
		wantRendered bool
	}{
		{
			name:        "zero values fall back to defaults",
			req:         CrawlRequest{URL: "https://example.com"},
			maxPages:    MaxPagesLimit,
			maxTimeout:  MaxTimeout,
			wantPages:   DefaultMaxPages,
			wantTimeout: DefaultTimeout,
		},
		{
			name:        "values above the caps are lowered",
			req:         CrawlRequest{MaxPages: 500, Timeout: 10 * time.Minute},
			maxPages:    MaxPagesLimit,
			maxTimeout:  MaxTimeout,
			wantPages:   MaxPagesLimit,
			wantTimeout: MaxTimeout,
		},
		{
			name:        "batch caps are stricter",
			req:         CrawlRequest{MaxPages: 30, Timeout: 90 * time.Second},
			maxPages:    BatchMaxPages,
			maxTimeout:  BatchMaxTimeout,
			wantPages:   BatchMaxPages,
			wantTimeout: BatchMaxTimeout,
		},
		{
			name:         "values within range are kept",
			req:          CrawlRequest{MaxPages: 3, Timeout: 5 * time.Second, RenderMode: true},
			maxPages:     MaxPagesLimit,
			maxTimeout:   MaxTimeout,
			wantPages:    3,
			wantTimeout:  5 * time.Second,
			wantRendered: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.req.Clamp(tt.maxPages, tt.maxTimeout)
			if got.MaxPages != tt.wantPages {
				t.Errorf("expected max pages %d, got %d", tt.wantPages, got.MaxPages)
			}
			if got.Timeout != tt.wantTimeout {
				t.Errorf("expected timeout %v, got %v", tt.wantTimeout, got.Timeout)
			}
			if got.RenderMode != tt.wantRendered {
				t.Errorf("expected render mode %v, got %v", tt.wantRendered, got.RenderMode)
			}
		})
	}

	t.Run("does not modify the receiver", func(t *testing.T) {
		t.Parallel()

		req := CrawlRequest{MaxPages: 100}
		_ = req.Clamp(MaxPagesLimit, MaxTimeout)
		if req.MaxPages != 100 {
			t.Errorf("expected receiver to keep 100, got %d", req.MaxPages)
		}
	})
}

func TestNewCrawlRequest(t *testing.T) {
	t.Parallel()

	req := NewCrawlRequest("example.com")
	if req.URL != "example.com" {
		t.Errorf("expected URL example.com, got %q", req.URL)
	}
	if req.MaxPages != DefaultMaxPages {
		t.Errorf("expected %d pages, got %d", DefaultMaxPages, req.MaxPages)
	}
	if req.Timeout != DefaultTimeout {
		t.Errorf("expected %v timeout, got %v", DefaultTimeout, req.Timeout)
	}
}
