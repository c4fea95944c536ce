package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
)

// readBody decodes the response body and reads at most maxBytes of it.
// Overflow is not an error: the body is cut and truncated is set.
func readBody(resp *http.Response, maxBytes int64) (body string, truncated bool, err error) {
	if resp == nil || resp.Body == nil {
		return "", false, errors.New("empty response body")
	}

	reader := io.Reader(resp.Body)
	closers := []io.Closer{resp.Body}
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close() //nolint:errcheck // best-effort cleanup
		}
	}()

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", false, fmt.Errorf("gzip decode: %w", err)
		}
		reader = gz
		closers = append(closers, gz)
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "deflate":
		fl := flate.NewReader(resp.Body)
		reader = fl
		closers = append(closers, fl)
	}

	// Read one byte past the cap to tell an exact fit from an overflow.
	raw, err := io.ReadAll(io.LimitReader(reader, maxBytes+1))
	if err != nil {
		return "", false, fmt.Errorf("read body: %w", err)
	}
	if int64(len(raw)) > maxBytes {
		raw = raw[:maxBytes]
		truncated = true
	}

	return toUTF8(raw, resp.Header.Get("Content-Type")), truncated, nil
}

// toUTF8 converts raw from the charset named in contentType, or the one
// sniffed from the content, to UTF-8. Undecodable input is returned as is.
func toUTF8(raw []byte, contentType string) string {
	r, err := charset.NewReader(strings.NewReader(string(raw)), contentType)
	if err != nil {
		return string(raw)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// mediaType returns the lowercased media type of a Content-Type header
// value without parameters.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Fall back to the part before the first ';'.
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// isAcceptedType reports whether the media type is one the crawler parses.
func isAcceptedType(mt string) bool {
	switch mt {
	case "text/html", "application/xhtml+xml", "text/plain":
		return true
	default:
		return false
	}
}

// isBinaryType reports whether the media type is never worth another
// ladder attempt.
func isBinaryType(mt string) bool {
	return strings.HasPrefix(mt, "image/") ||
		strings.HasPrefix(mt, "video/") ||
		strings.HasPrefix(mt, "audio/") ||
		mt == "application/pdf"
}
