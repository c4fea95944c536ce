package extract

import "regexp"

// Address length bounds per rule.
const (
	minStreetAddressLength = 16
	minPostalAddressLength = 21
	maxPostalAddressLength = 199
)

var (
	// 123 Main Street, Suite 4, Springfield, IL 62704
	streetAddress = regexp.MustCompile(`(?i)\b\d{1,5}\s+[\w\s]{1,30}?\b(?:street|st|avenue|ave|road|rd|highway|hwy|square|sq|trail|trl|drive|dr|court|ct|parkway|pkwy|circle|cir|boulevard|blvd|lane|ln|way)\.?(?:[\s,]+(?:apt|apartment|suite|ste|unit|#)\s*\.?\s*\d+)?[\s,]+[a-z][a-z\s]{1,30},\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`)

	// 10 Downing Street, London, SW1A 2AA / 5 Rue de Rivoli, Paris, 75001
	postalAddress = regexp.MustCompile(`\b\d{1,5}\s+[\w .'-]{2,40}(?:,\s*[\w .'-]{2,30}){1,2}[, ]+(?:\d{4,6}|[A-Z]{1,2}\d[A-Z\d]?\s?\d[A-Z]{2})\b`)
)

// AddressRules are the address recognizers in evaluation order. Both run
// over the visible text, which is already whitespace-collapsed.
func AddressRules() []Rule {
	return []Rule{
		{
			Name:      "street",
			Source:    SourceText,
			Pattern:   streetAddress,
			Normalize: collapseSpace,
			Validate:  lengthBetween(minStreetAddressLength, 0),
		},
		{
			Name:      "postal",
			Source:    SourceText,
			Pattern:   postalAddress,
			Normalize: collapseSpace,
			Validate:  lengthBetween(minPostalAddressLength, maxPostalAddressLength),
		},
	}
}

// lengthBetween accepts strings of at least lo and, when hi is positive,
// at most hi bytes.
func lengthBetween(lo, hi int) func(string) bool {
	return func(s string) bool {
		return len(s) >= lo && (hi <= 0 || len(s) <= hi)
	}
}

func newAddressCategory(limit int) *Category[string] {
	return &Category[string]{
		Name:  "address",
		Rules: AddressRules(),
		Limit: limit,
		Build: func(m Match) (string, string, bool) {
			return m.Value, m.Value, true
		},
	}
}
