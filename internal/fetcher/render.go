package fetcher

import (
	"context"
	"time"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// Renderer retrieves a page after executing its JavaScript. The crawler
// calls it only as a fallback, so implementations may be slow.
type Renderer interface {
	// Render loads url and returns the rendered DOM. The call must return
	// within timeout.
	Render(ctx context.Context, url string, timeout time.Duration) (*model.FetchResult, error)
}

// RendererFunc adapts an ordinary function to the Renderer interface.
type RendererFunc func(ctx context.Context, url string, timeout time.Duration) (*model.FetchResult, error)

// Render calls f(ctx, url, timeout).
func (f RendererFunc) Render(ctx context.Context, url string, timeout time.Duration) (*model.FetchResult, error) {
	return f(ctx, url, timeout)
}
