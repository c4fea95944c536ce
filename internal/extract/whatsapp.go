package extract

import (
	"regexp"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// MinWhatsAppDigits is the shortest accepted click-to-chat number.
const MinWhatsAppDigits = 10

// WhatsAppLinkBase prefixes a number to form its click-to-chat link.
const WhatsAppLinkBase = "https://wa.me/"

// WhatsAppRules are the WhatsApp recognizers in evaluation order.
func WhatsAppRules() []Rule {
	patterns := []struct {
		name    string
		source  Source
		pattern *regexp.Regexp
	}{
		{name: "wa.me", source: SourceAll, pattern: regexp.MustCompile(`(?i)\bwa\.me/\+?(\d{10,15})\b`)},
		{name: "api", source: SourceAll, pattern: regexp.MustCompile(`(?i)api\.whatsapp\.com/send/?\?phone=\+?(\d{10,15})\b`)},
		{name: "web", source: SourceAll, pattern: regexp.MustCompile(`(?i)web\.whatsapp\.com/send/?\?phone=\+?(\d{10,15})\b`)},
		{name: "app", source: SourceAll, pattern: regexp.MustCompile(`(?i)whatsapp://send/?\?phone=\+?(\d{10,15})\b`)},
		{name: "context", source: SourceText, pattern: regexp.MustCompile(`(?i)\b(?:whatsapp|wsp)\b[\s:.-]*(\+?\d[\d \-]{8,20}\d)\b`)},
	}

	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, Rule{
			Name:      p.name,
			Source:    p.source,
			Pattern:   p.pattern,
			Normalize: digitsOnly,
			Validate:  validWhatsApp,
		})
	}
	return rules
}

func validWhatsApp(digits string) bool {
	return len(digits) >= MinWhatsAppDigits && len(digits) <= MaxPhoneDigits
}

func newWhatsAppCategory(limit int) *Category[model.WhatsApp] {
	return &Category[model.WhatsApp]{
		Name:  "whatsapp",
		Rules: WhatsAppRules(),
		Limit: limit,
		Build: func(m Match) (model.WhatsApp, string, bool) {
			return model.WhatsApp{Number: m.Value, Link: WhatsAppLinkBase + m.Value}, m.Value, true
		},
	}
}
