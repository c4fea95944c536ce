package fetcher

import (
	"errors"
	"strings"
)

// Fetch failure kinds. Match them with errors.Is against the error
// returned by Fetch or Render.
var (
	// ErrFetchTimeout is returned when the deadline expired before any
	// attempt succeeded.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrFetchRefused is returned for 401, 403 and 429 responses.
	ErrFetchRefused = errors.New("fetch refused")

	// ErrContentTypeMismatch is returned when the response is not HTML
	// or plain text.
	ErrContentTypeMismatch = errors.New("content type mismatch")

	// ErrFetchFailed is returned when every attempt failed for other reasons.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrInvalidProxyAddress is returned when the proxy address is not in
	// host:port form.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected host:port")

	// ErrBlockedRedirect is returned when a redirect points at a loopback
	// or private-network host.
	ErrBlockedRedirect = errors.New("redirect to a local or private network address")

	// ErrRendererUnavailable is returned when the headless browser could
	// not be started.
	ErrRendererUnavailable = errors.New("renderer unavailable")
)

// maxCauses bounds the number of distinct causes kept on an Error.
const maxCauses = 3

// Error describes a failed fetch of one URL.
type Error struct {
	// URL is the URL the fetch was issued for.
	URL string

	// Kind is one of the sentinel errors above.
	Kind error

	// Causes lists distinct per-attempt failures in the order observed.
	Causes []string

	// StatusCode is the last HTTP status seen, or 0.
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.URL != "" {
		b.WriteString(" for ")
		b.WriteString(e.URL)
	}
	if len(e.Causes) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Causes, "; "))
	}
	return b.String()
}

// Unwrap returns the failure kind so that errors.Is works on *Error.
func (e *Error) Unwrap() error {
	return e.Kind
}

// causes accumulates distinct failure descriptions.
type causes struct {
	list []string
	seen map[string]bool

	// mismatch is set once any attempt got a response with an
	// unsupported content type.
	mismatch bool
}

func newCauses() *causes {
	return &causes{seen: make(map[string]bool)}
}

func (c *causes) add(cause string, mismatch bool) {
	if mismatch {
		c.mismatch = true
	}
	if c.seen[cause] {
		return
	}
	c.seen[cause] = true
	if len(c.list) < maxCauses {
		c.list = append(c.list, cause)
	}
}
