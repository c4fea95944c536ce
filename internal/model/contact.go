package model

import "strings"

// Phone is one extracted phone number.
type Phone struct {
	// E164 is the number in E.164 form when it parses as a valid number
	// for the configured region, otherwise the canonical digit string.
	E164 string `json:"e164_or_digits"`

	// Digits is the canonical digit-only projection. It is the dedup key.
	Digits string `json:"digits"`

	// Formatted is the international rendering when the number is valid,
	// otherwise the trimmed original text.
	Formatted string `json:"formatted"`

	// Original is the text as it appeared on the page.
	Original string `json:"original"`
}

// WhatsApp is one click-to-chat number.
type WhatsApp struct {
	// Number is the digit-only number. It is the dedup key.
	Number string `json:"number"`

	// Link is the wa.me link for Number.
	Link string `json:"link"`
}

// SocialProfile is a profile link on a social platform.
// Two profiles are the same entity when Platform and Username match.
type SocialProfile struct {
	Username string         `json:"username"`
	URL      string         `json:"url"`
	Platform SocialPlatform `json:"platform"`
}

// socialKey is the dedup key of a SocialProfile. The profile location
// keeps profiles that share a username under different bases apart, such
// as LinkedIn /in/acme and /company/acme.
type socialKey struct {
	platform SocialPlatform
	username string
	location string
}

func (s SocialProfile) key() socialKey {
	return socialKey{platform: s.Platform, username: s.Username, location: profileLocation(s.URL)}
}

// profileLocation reduces a profile URL to host and path without scheme,
// "www." or trailing slashes.
func profileLocation(u string) string {
	u = strings.ToLower(u)
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimRight(u, "/")
}

// ExtractionResult holds everything the extractors found on one page.
// Lists are in discovery order and already deduplicated within the page.
type ExtractionResult struct {
	Emails    []string        `json:"emails"`
	Phones    []Phone         `json:"phones"`
	WhatsApp  []WhatsApp      `json:"whatsapp"`
	Socials   []SocialProfile `json:"socials"`
	Names     []string        `json:"names"`
	Addresses []string        `json:"addresses"`
}

// IsEmpty reports whether no category produced a record.
func (r *ExtractionResult) IsEmpty() bool {
	return len(r.Emails) == 0 &&
		len(r.Phones) == 0 &&
		len(r.WhatsApp) == 0 &&
		len(r.Socials) == 0 &&
		len(r.Names) == 0 &&
		len(r.Addresses) == 0
}

// Count returns the total number of records across all categories.
func (r *ExtractionResult) Count() int {
	return len(r.Emails) + len(r.Phones) + len(r.WhatsApp) +
		len(r.Socials) + len(r.Names) + len(r.Addresses)
}
