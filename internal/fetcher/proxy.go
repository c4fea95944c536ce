package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/proxy"
)

// contextDialer is satisfied by *net.Dialer and by the SOCKS5 dialer from
// golang.org/x/net/proxy.
type contextDialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// newSOCKS5Dialer returns a dialer that routes connections through the
// SOCKS5 proxy at address. forward dials the proxy itself.
func newSOCKS5Dialer(address string, forward *net.Dialer) (contextDialer, error) {
	if !isValidProxyAddress(address) {
		return nil, ErrInvalidProxyAddress
	}

	d, err := proxy.SOCKS5("tcp", address, nil, forward)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	cd, ok := d.(contextDialer)
	if !ok {
		return nil, fmt.Errorf("SOCKS5 dialer does not support contexts")
	}
	return cd, nil
}

// isValidProxyAddress checks that address is host:port with a port in
// 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" || port == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// headerInjectingTransport adds configured headers and a cookie to every
// request, redirects included.
type headerInjectingTransport struct {
	base    http.RoundTripper
	cookie  string
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clone := req.Clone(req.Context())

	if t.cookie != "" {
		existing := clone.Header.Get("Cookie")
		if existing != "" {
			clone.Header.Set("Cookie", existing+"; "+t.cookie)
		} else {
			clone.Header.Set("Cookie", t.cookie)
		}
	}

	for key, value := range t.headers {
		// Host is a request field, not a header.
		if strings.EqualFold(key, "Host") {
			clone.Host = value
			continue
		}
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
