package extract

import (
	"regexp"
	"strings"
)

// Email length bounds.
const (
	minEmailLength = 6
	maxEmailLength = 254
)

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]{1,64}@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z]{2,})+`)
	mailtoPattern   = regexp.MustCompile(`(?i)mailto:([a-z0-9._%+-]{1,64}@[a-z0-9.-]+\.[a-z]{2,})`)
	obfuscatedEmail = regexp.MustCompile(`(?i)([a-z0-9._%+-]+)\s*[\[(]\s*at\s*[\])]\s*([a-z0-9-]+(?:\.[a-z0-9-]+)*)\s*[\[(]\s*dot\s*[\])]\s*([a-z]{2,10})\b`)
)

// emailRejects are addresses that look valid but never reach a person:
// asset names, role and bounce mailboxes, sink domains and encoded junk.
var emailRejects = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.(?:png|jpe?g|gif|svg|webp|ico|bmp|css|js|woff2?|ttf|eot)$`),
	regexp.MustCompile(`(?i)^(?:no-?reply|donotreply|do-not-reply|mailer-daemon|postmaster|admin|root|webmaster)@`),
	regexp.MustCompile(`(?i)@(?:example\.(?:com|org|net)|test\.com|localhost|sentry\.io|wixpress\.com|w3\.org|domain\.com|email\.com)$`),
	regexp.MustCompile(`@[0-9]+x?\.`),
	regexp.MustCompile(`^[0-9]+@`),
	regexp.MustCompile(`%[0-9a-fA-F]{2}`),
}

// EmailRules are the email recognizers in evaluation order.
func EmailRules() []Rule {
	return []Rule{
		{
			Name:      "address",
			Source:    SourceText,
			Pattern:   emailPattern,
			Reject:    emailRejects,
			Normalize: normalizeEmail,
			Validate:  ValidEmail,
		},
		{
			Name:      "mailto",
			Source:    SourceHTML,
			Pattern:   mailtoPattern,
			Reject:    emailRejects,
			Normalize: normalizeEmail,
			Validate:  ValidEmail,
		},
		{
			Name:      "obfuscated",
			Source:    SourceText,
			Pattern:   obfuscatedEmail,
			Template:  "$1@$2.$3",
			Reject:    emailRejects,
			Normalize: normalizeEmail,
			Validate:  ValidEmail,
		},
		{
			Name:      "markup",
			Source:    SourceHTML,
			Pattern:   emailPattern,
			Reject:    emailRejects,
			Normalize: normalizeEmail,
			Validate:  ValidEmail,
		},
	}
}

func normalizeEmail(s string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(s)), ".")
}

// ValidEmail reports whether s has exactly one "@" with a non-empty local
// part and a dotted domain whose last label is 2 to 10 letters.
func ValidEmail(s string) bool {
	if len(s) < minEmailLength || len(s) > maxEmailLength {
		return false
	}

	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}

	tld := domain[strings.LastIndex(domain, ".")+1:]
	if len(tld) < 2 || len(tld) > 10 {
		return false
	}
	for _, r := range tld {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func newEmailCategory(limit int) *Category[string] {
	return &Category[string]{
		Name:  "email",
		Rules: EmailRules(),
		Limit: limit,
		Build: func(m Match) (string, string, bool) {
			return m.Value, m.Value, true
		},
	}
}
