package fetcher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"github.com/waseemnasir2k26/contact-extractor/internal/target"
)

const (
	// DefaultUserAgent is sent when no other User-Agent is configured.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultMaxBodySize is the default response body cap (512 KiB).
	DefaultMaxBodySize int64 = 512 * 1024

	// DefaultMaxRedirects is the number of redirects followed per attempt.
	DefaultMaxRedirects = 5

	// connectTimeout bounds TCP connection setup for a single attempt.
	connectTimeout = 10 * time.Second
)

// errTooManyRedirects is recorded as a cause when the redirect cap is hit.
var errTooManyRedirects = errors.New("too many redirects")

// Fetcher retrieves pages using the attempt ladder. A Fetcher is safe for
// concurrent use; it holds only immutable configuration and HTTP clients.
type Fetcher struct {
	// verified checks server certificates.
	verified *http.Client

	// insecure skips certificate verification.
	insecure *http.Client

	// userAgent is the User-Agent header to use.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// maxRedirects limits redirects followed per attempt.
	maxRedirects int

	// proxyAddress routes connections through a SOCKS5 proxy when set.
	proxyAddress string

	// cookie and headers are added to every request.
	cookie  string
	headers map[string]string

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithMaxRedirects sets the number of redirects followed per attempt.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRedirects = n
		}
	}
}

// WithProxy routes all connections through the SOCKS5 proxy at address
// ("host:port").
func WithProxy(address string) Option {
	return func(f *Fetcher) {
		f.proxyAddress = address
	}
}

// WithCookie adds a raw cookie string (e.g., "session=abc") to every request.
func WithCookie(cookie string) Option {
	return func(f *Fetcher) {
		f.cookie = cookie
	}
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher. It fails only when the proxy address is invalid.
func New(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		userAgent:    DefaultUserAgent,
		maxBodySize:  DefaultMaxBodySize,
		maxRedirects: DefaultMaxRedirects,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	dialer := &net.Dialer{Timeout: connectTimeout}
	var dial contextDialer = dialer
	if f.proxyAddress != "" {
		d, err := newSOCKS5Dialer(f.proxyAddress, dialer)
		if err != nil {
			return nil, err
		}
		dial = d
	}

	f.verified = f.newClient(dial, true)
	f.insecure = f.newClient(dial, false)

	return f, nil
}

// newClient builds an http.Client. No cookie jar is attached so that
// nothing leaks between crawls sharing a Fetcher.
func (f *Fetcher) newClient(dial contextDialer, verify bool) *http.Client {
	transport := &http.Transport{
		DialContext: dial.DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !verify, //nolint:gosec // last rungs of the ladder only
			MinVersion:         tls.VersionTLS12,
		},
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: connectTimeout,

		// Bodies are decoded by readBody, which also handles brotli.
		DisableCompression: true,
	}

	var rt http.RoundTripper = transport
	if f.cookie != "" || len(f.headers) > 0 {
		rt = &headerInjectingTransport{base: transport, cookie: f.cookie, headers: f.headers}
	}

	return &http.Client{
		Transport:     rt,
		CheckRedirect: f.checkRedirect,
	}
}

// checkRedirect caps redirects and refuses redirects from a public host
// into a local or private network.
func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > f.maxRedirects {
		return errTooManyRedirects
	}
	if len(via) > 0 && !target.IsBlockedHost(via[0].URL.Hostname()) &&
		target.IsBlockedHost(req.URL.Hostname()) {
		return ErrBlockedRedirect
	}
	return nil
}

// Fetch retrieves rawURL within timeout, walking the attempt ladder until
// one attempt returns an HTML or plain-text page.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) (*model.FetchResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	failures := newCauses()
	lastStatus := 0

	for _, attempt := range Ladder(rawURL) {
		// Plain http has no certificate, so the unverified rung would repeat
		// the verified one.
		if !attempt.VerifyTLS && strings.HasPrefix(attempt.URL, "http://") {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		page, status, err := f.try(ctx, attempt)
		if status != 0 {
			lastStatus = status
		}
		if err == nil {
			page.RequestedURL = rawURL
			return page, nil
		}

		switch {
		case errors.Is(err, ErrFetchRefused), errors.Is(err, ErrBlockedRedirect):
			return nil, &Error{URL: rawURL, Kind: kindOf(err), Causes: []string{err.Error()}, StatusCode: status}
		case errors.Is(err, errBinaryContent):
			return nil, &Error{URL: rawURL, Kind: ErrContentTypeMismatch, Causes: []string{err.Error()}, StatusCode: status}
		case errors.Is(err, ErrContentTypeMismatch):
			failures.add(err.Error(), true)
		default:
			failures.add(describe(err), false)
		}

		f.logger.Debug("fetch attempt failed",
			"url", attempt.URL,
			"verify_tls", attempt.VerifyTLS,
			"error", err,
		)
	}

	kind := ErrFetchFailed
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = ErrFetchTimeout
		failures.add("timeout", false)
	case ctx.Err() != nil:
		failures.add(ctx.Err().Error(), false)
	case failures.mismatch:
		// The server answered, so failures on the other rungs are noise.
		kind = ErrContentTypeMismatch
	}

	return nil, &Error{URL: rawURL, Kind: kind, Causes: failures.list, StatusCode: lastStatus}
}

// errBinaryContent marks content types that end the ladder at once.
var errBinaryContent = fmt.Errorf("%w: binary content", ErrContentTypeMismatch)

// try performs a single attempt. It returns the HTTP status when a
// response was received.
func (f *Fetcher) try(ctx context.Context, attempt Attempt) (*model.FetchResult, int, error) {
	client := f.verified
	if !attempt.VerifyTLS {
		client = f.insecure
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attempt.URL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/plain;q=0.8,*/*;q=0.5")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	status := resp.StatusCode
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden, status == http.StatusTooManyRequests:
		return nil, status, fmt.Errorf("%w: HTTP %d", ErrFetchRefused, status)
	case status < 200 || status > 299:
		return nil, status, fmt.Errorf("HTTP %d", status)
	}

	mt := mediaType(resp.Header.Get("Content-Type"))
	if isBinaryType(mt) {
		return nil, status, fmt.Errorf("%w (%s)", errBinaryContent, mt)
	}
	if mt != "" && !isAcceptedType(mt) {
		return nil, status, fmt.Errorf("%w: %s", ErrContentTypeMismatch, mt)
	}

	body, truncated, err := readBody(resp, f.maxBodySize)
	if err != nil {
		return nil, status, err
	}

	if mt == "" {
		mt = mediaType(http.DetectContentType([]byte(body)))
		if !isAcceptedType(mt) {
			return nil, status, fmt.Errorf("%w: sniffed %s", ErrContentTypeMismatch, mt)
		}
	}

	return &model.FetchResult{
		URL:         resp.Request.URL.String(),
		StatusCode:  status,
		ContentType: mt,
		HTML:        body,
		Truncated:   truncated,
		FetchedAt:   time.Now().UTC(),
	}, status, nil
}

// kindOf maps a terminal attempt error to its failure kind.
func kindOf(err error) error {
	if errors.Is(err, ErrFetchRefused) {
		return ErrFetchRefused
	}
	return ErrFetchFailed
}

// describe turns a transport error into a short, stable cause string so
// that equal failures on different rungs deduplicate.
func describe(err error) string {
	var (
		urlErr  *url.Error
		certErr *tls.CertificateVerificationError
		unkErr  x509.UnknownAuthorityError
		hostErr x509.HostnameError
		dnsErr  *net.DNSError
		opErr   *net.OpError
	)

	switch {
	case errors.Is(err, errTooManyRedirects):
		return "too many redirects"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &certErr), errors.As(err, &unkErr), errors.As(err, &hostErr):
		return "TLS verification failed"
	case errors.As(err, &dnsErr):
		return "DNS lookup failed"
	case errors.As(err, &opErr):
		return "connection failed"
	case errors.As(err, &urlErr) && urlErr.Timeout():
		return "timeout"
	}

	msg := err.Error()
	if len(msg) > 80 {
		msg = msg[:80]
	}
	return msg
}
