package fetcher

import (
	"net/url"
)

// Attempt is one rung of the fetch ladder.
type Attempt struct {
	// URL is the URL to request, with the scheme already chosen.
	URL string

	// VerifyTLS selects the certificate-verifying client.
	VerifyTLS bool

	// Alternate is true when the scheme was swapped from the original.
	Alternate bool
}

// Ladder returns the ordered attempts for rawURL. URLs that are not http
// or https, or that cannot be parsed, yield a single verified attempt.
func Ladder(rawURL string) []Attempt {
	alt := alternate(rawURL)
	if alt == "" {
		return []Attempt{{URL: rawURL, VerifyTLS: true}}
	}

	return []Attempt{
		{URL: rawURL, VerifyTLS: true},
		{URL: alt, VerifyTLS: true, Alternate: true},
		{URL: rawURL, VerifyTLS: false},
		{URL: alt, VerifyTLS: false, Alternate: true},
	}
}

// alternate swaps http and https. It returns "" for other schemes.
func alternate(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "http"
	case "http":
		u.Scheme = "https"
	default:
		return ""
	}
	return u.String()
}
