package target

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// MaxInputLength is the number of characters kept from the raw input.
	MaxInputLength = 2000

	// minHostLength is the shortest host accepted.
	minHostLength = 3
)

// blockedHosts are refused by exact match on the lowercased host.
var blockedHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
	"::1":       true,
	"[::1]":     true,
}

// blockedPrefixes cover 10.0.0.0/8, 192.168.0.0/16 and every second octet
// of 172.16.0.0/12.
var blockedPrefixes = []string{
	"10.",
	"192.168.",
	"172.16.", "172.17.", "172.18.", "172.19.",
	"172.20.", "172.21.", "172.22.", "172.23.",
	"172.24.", "172.25.", "172.26.", "172.27.",
	"172.28.", "172.29.", "172.30.", "172.31.",
}

// Normalize validates raw and returns the canonical absolute URL.
//
// The input is trimmed, cut to MaxInputLength characters and stripped of
// control characters (0x00-0x1F, 0x7F). When it carries no scheme,
// "https://" is prepended. Schemes other than http and https are refused.
// The scheme and host are lowercased and any fragment is dropped.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if r := []rune(s); len(r) > MaxInputLength {
		s = string(r[:MaxInputLength])
	}
	s = stripControl(s)
	if s == "" {
		return "", fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}

	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		if strings.Contains(s, "://") {
			return "", fmt.Errorf("%w: unsupported scheme", ErrInvalidURL)
		}
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	host := u.Hostname()
	if len(host) < minHostLength {
		return "", fmt.Errorf("%w: missing or too short host", ErrInvalidURL)
	}

	if IsBlockedHost(host) {
		return "", fmt.Errorf("%w: %s", ErrBlockedHost, host)
	}

	return u.String(), nil
}

// IsBlockedHost reports whether host is a loopback or private-network
// address. host must not include a port. Trailing dots of fully qualified
// names are ignored, so "localhost." is blocked like "localhost".
func IsBlockedHost(host string) bool {
	h := strings.TrimRight(strings.ToLower(strings.TrimSpace(host)), ".")
	if blockedHosts[h] {
		return true
	}
	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(h, prefix) {
			return true
		}
	}
	return false
}

// IsBlockedRedirect reports whether moving from the page at from to the
// page at to leaves a public host for a blocked one. An unparsable to is
// treated as blocked.
func IsBlockedRedirect(from, to string) bool {
	dst, err := url.Parse(to)
	if err != nil {
		return true
	}
	src, err := url.Parse(from)
	if err == nil && IsBlockedHost(src.Hostname()) {
		return false
	}
	return IsBlockedHost(dst.Hostname())
}

// stripControl removes ASCII control characters.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
