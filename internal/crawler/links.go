package crawler

import (
	"net"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Priority is the traversal class of a discovered link.
type Priority int

const (
	// PriorityNormal links are appended to the back of the queue.
	PriorityNormal Priority = iota
	// PriorityHigh links are pushed to the front of the queue.
	PriorityHigh
)

// String returns the string representation of the Priority.
func (p Priority) String() string {
	if p == PriorityHigh {
		return "priority"
	}
	return "normal"
}

// LinkCandidate is a discovered same-site URL and its traversal class.
type LinkCandidate struct {
	URL      string
	Priority Priority
}

// priorityKeywords mark contact-like paths.
var priorityKeywords = []string{"contact", "about", "team", "support", "imprint", "impressum"}

// ContactPaths are probed on the start origin when path probing is enabled.
var ContactPaths = []string{
	"/contact",
	"/contact-us",
	"/about",
	"/about-us",
	"/team",
	"/support",
	"/imprint",
	"/impressum",
}

// skipPaths are path fragments whose pages rarely carry contact data.
var skipPaths = []string{
	"/blog", "/news", "/articles", "/posts",
	"/products", "/shop", "/store", "/cart", "/checkout",
	"/login", "/signin", "/register", "/signup", "/auth",
	"/search", "/tag", "/category", "/archive",
	"/wp-content", "/wp-includes", "/wp-admin", "/wp-json",
	"/static", "/assets", "/images", "/css", "/js", "/fonts",
	"/api/", "/feed", "/rss", "/sitemap",
}

// skipExtensions are file types that are never HTML pages.
var skipExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	".zip": true, ".rar": true, ".tar": true, ".gz": true, ".7z": true,
	".exe": true, ".dmg": true, ".pkg": true, ".msi": true, ".deb": true, ".rpm": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true, ".webm": true,
	".css": true, ".js": true, ".json": true, ".xml": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
}

// Classify returns the traversal class of rawURL based on its path.
func Classify(rawURL string) Priority {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PriorityNormal
	}
	p := strings.ToLower(u.Path)
	for _, keyword := range priorityKeywords {
		if strings.Contains(p, keyword) {
			return PriorityHigh
		}
	}
	return PriorityNormal
}

// RegistrableDomain returns the eTLD+1 of host, e.g. "example.co.uk" for
// "www.shop.example.co.uk". IP literals and hosts without a known public
// suffix are returned lowercased and unchanged.
func RegistrableDomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// SameSite reports whether rawURL shares the registrable domain site.
func SameSite(site, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}
	return RegistrableDomain(u.Hostname()) == site
}

// IsSkipped reports whether rawURL points at a path or file type that is
// never worth visiting for contact data.
func IsSkipped(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	p := strings.ToLower(u.Path)
	if skipExtensions[path.Ext(p)] {
		return true
	}
	for _, fragment := range skipPaths {
		if strings.Contains(p, fragment) {
			return true
		}
	}
	return false
}

// normalizeURL normalizes a URL for deduplication: the fragment is dropped,
// scheme and host are lowercased, an empty path becomes "/" and a trailing
// slash on any other path is removed.
func normalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	switch {
	case u.Path == "":
		u.Path = "/"
	case u.Path != "/" && strings.HasSuffix(u.Path, "/"):
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = ""
		if u.Path == "" {
			u.Path = "/"
		}
	}

	return u.String()
}

// patternFilter applies user-configured ignore and follow path patterns.
type patternFilter struct {
	// ignore are glob patterns of paths to skip, e.g. "/admin/*" or "*.php".
	ignore []string

	// follow, when set, restricts the crawl to matching paths.
	follow []string
}

// allows checks if a URL should be crawled based on ignore/follow patterns.
//
// Logic:
//  1. If URL matches any ignore pattern, skip it
//  2. If follow patterns are set and URL matches none, skip it
//  3. Otherwise, crawl it
func (f patternFilter) allows(targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil {
		return false
	}

	p := u.Path
	if p == "" {
		p = "/"
	}

	for _, pattern := range f.ignore {
		if matchPattern(pattern, p) {
			return false
		}
	}

	if len(f.follow) == 0 {
		return true
	}
	for _, pattern := range f.follow {
		if matchPattern(pattern, p) {
			return true
		}
	}
	return false
}

// matchPattern checks if a path matches a glob pattern.
// Patterns can use:
//   - * to match any sequence of non-separator characters
//   - ? to match any single character
//
// Examples:
//   - "/admin/*" matches "/admin/dashboard", "/admin"
//   - "*.php" matches "/index.php"
//   - "/team/v?" matches "/team/v1"
func matchPattern(pattern, p string) bool {
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(p, prefix+"/") || p == prefix {
			return true
		}
	}

	if strings.HasPrefix(pattern, "*.") {
		if strings.HasSuffix(p, strings.TrimPrefix(pattern, "*")) {
			return true
		}
	}

	if matched, err := filepath.Match(pattern, p); err == nil && matched {
		return true
	}

	// Bare patterns such as "print*" are tried against the last segment.
	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		if matched, err := filepath.Match(pattern, path.Base(p)); err == nil && matched {
			return true
		}
	}

	return false
}
