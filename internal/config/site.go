package config

import (
	"maps"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SiteConfig holds crawl settings for one site.
type SiteConfig struct {
	// Cookie is an HTTP cookie sent with every request to this site.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers included in requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// MaxPages overrides the page cap for this site. Zero keeps the
	// global value.
	MaxPages int `yaml:"max_pages,omitempty"`

	// Render enables the headless fallback for this site.
	Render bool `yaml:"render,omitempty"`

	// IgnorePatterns are URL path patterns never enqueued.
	IgnorePatterns []string `yaml:"ignore,omitempty"`

	// FollowPatterns restrict traversal to matching paths when set.
	FollowPatterns []string `yaml:"follow,omitempty"`
}

// File represents the structure of the .contact-extractor configuration file.
type File struct {
	// Defaults applies to every site unless a site entry overrides it.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Sites maps registrable domains (for example "acme.com") to their
	// settings. Subdomains of a listed domain share its entry.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Server configures the HTTP service.
	Server ServerConfig `yaml:"server,omitempty"`
}

// NewFile returns an empty configuration file.
func NewFile() *File {
	return &File{Sites: make(map[string]SiteConfig)}
}

// GetSiteConfig returns the configuration for the site rawURL belongs to,
// merged over the defaults. rawURL may be a full URL or a bare host.
// Lookup tries the exact host, the host without "www." and finally the
// registrable domain.
func (cf *File) GetSiteConfig(rawURL string) SiteConfig {
	if cf == nil {
		return SiteConfig{}
	}
	return mergeSiteConfig(cf.Defaults, cf.Sites[cf.SiteKey(rawURL)])
}

// SiteKey returns the Sites key rawURL resolves to, or "" when only the
// defaults apply. Start URLs with the same key share one configuration.
func (cf *File) SiteKey(rawURL string) string {
	if cf == nil {
		return ""
	}
	for _, key := range siteKeys(rawURL) {
		if _, ok := cf.Sites[key]; ok {
			return key
		}
	}
	return ""
}

// siteKeys returns the candidate Sites keys for rawURL, most specific first.
func siteKeys(rawURL string) []string {
	host := rawURL
	if strings.Contains(rawURL, "://") {
		if u, err := url.Parse(rawURL); err == nil {
			host = u.Hostname()
		}
	} else if i := strings.IndexAny(host, "/:"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return nil
	}

	keys := []string{host}
	if trimmed := strings.TrimPrefix(host, "www."); trimmed != host {
		keys = append(keys, trimmed)
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && domain != keys[len(keys)-1] {
		keys = append(keys, domain)
	}
	return keys
}

// mergeSiteConfig merges site-specific overrides into defaults. The
// result never shares its Headers map with either input.
func mergeSiteConfig(defaults, override SiteConfig) SiteConfig {
	result := defaults
	result.Headers = maps.Clone(defaults.Headers)

	if override.Cookie != "" {
		result.Cookie = override.Cookie
	}
	if override.MaxPages > 0 {
		result.MaxPages = override.MaxPages
	}
	if override.Render {
		result.Render = true
	}
	if len(override.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(override.Headers))
		}
		maps.Copy(result.Headers, override.Headers)
	}
	if len(override.IgnorePatterns) > 0 {
		result.IgnorePatterns = override.IgnorePatterns
	}
	if len(override.FollowPatterns) > 0 {
		result.FollowPatterns = override.FollowPatterns
	}
	return result
}
