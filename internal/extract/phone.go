package extract

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// Phone digit bounds.
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// DefaultRegion is the region used to parse numbers without a country code.
const DefaultRegion = "US"

var (
	internationalPhone = regexp.MustCompile(`\+[1-9]\d{0,2}[-.\s]?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`)
	bracketedCodePhone = regexp.MustCompile(`\(\+\d{1,4}\)\s?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	northAmericanPhone = regexp.MustCompile(`\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	separatedPhone     = regexp.MustCompile(`(?:^|[^\d+-])(\d{3}[-.]\d{3}[-.]\d{4})\b`)
	telLinkPhone       = regexp.MustCompile(`(?i)tel:(\+?[0-9\s\-.()]{10,20})`)
)

// phoneRejects are digit runs that are not phone numbers.
var phoneRejects = []*regexp.Regexp{
	// dates such as 2024-05-01 or 2021/12
	regexp.MustCompile(`20[0-2]\d[-/]`),
	// IPv4 addresses
	regexp.MustCompile(`^\d{1,3}(?:\.\d{1,3}){3}$`),
	// version numbers such as 1.2.3 or 10.15.7.1
	regexp.MustCompile(`^v?\d{1,3}\.\d{1,3}\.\d{1,3}(?:\.\d+)*$`),
}

// PhoneRules are the phone recognizers in evaluation order.
func PhoneRules() []Rule {
	rules := []struct {
		name    string
		source  Source
		pattern *regexp.Regexp
	}{
		{name: "international", source: SourceText, pattern: internationalPhone},
		{name: "bracketed-code", source: SourceText, pattern: bracketedCodePhone},
		{name: "north-american", source: SourceText, pattern: northAmericanPhone},
		{name: "separated", source: SourceText, pattern: separatedPhone},
		{name: "tel-link", source: SourceHTML, pattern: telLinkPhone},
	}

	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, Rule{
			Name:      r.name,
			Source:    r.source,
			Pattern:   r.pattern,
			Reject:    phoneRejects,
			Normalize: strings.TrimSpace,
			Validate:  ValidPhone,
		})
	}
	return out
}

// ValidPhone reports whether the digit projection of s has between
// MinPhoneDigits and MaxPhoneDigits digits.
func ValidPhone(s string) bool {
	n := len(digitsOnly(s))
	return n >= MinPhoneDigits && n <= MaxPhoneDigits
}

// NewPhone builds a phone record from the text found on the page. When
// the number parses as valid for region, E164 and Formatted carry the
// E.164 and international renderings; otherwise both fall back to the
// digit string and the trimmed original.
func NewPhone(original, region string) model.Phone {
	original = collapseSpace(original)
	digits := digitsOnly(original)

	phone := model.Phone{
		E164:      digits,
		Digits:    digits,
		Formatted: original,
		Original:  original,
	}

	num, err := phonenumbers.Parse(original, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return phone
	}
	phone.E164 = phonenumbers.Format(num, phonenumbers.E164)
	phone.Formatted = phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	return phone
}

func newPhoneCategory(limit int, region string) *Category[model.Phone] {
	return &Category[model.Phone]{
		Name:      "phone",
		Rules:     PhoneRules(),
		Limit:     limit,
		Exclusive: true,
		Build: func(m Match) (model.Phone, string, bool) {
			phone := NewPhone(m.Value, region)
			return phone, phone.Digits, true
		},
	}
}
