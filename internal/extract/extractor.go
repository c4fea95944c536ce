package extract

import (
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// DefaultPageLimits returns the per-page caps of each category.
func DefaultPageLimits() model.AggregateLimits {
	return model.AggregateLimits{
		Emails:             15,
		Phones:             10,
		WhatsApp:           5,
		SocialsPerPlatform: 5,
		Names:              10,
		Addresses:          5,
	}
}

// Extractor runs the six category tables over one page at a time.
// It holds no per-page state and is safe for concurrent use.
type Extractor struct {
	// region is the default region for numbers without a country code.
	region string

	// limits are the per-page caps.
	limits model.AggregateLimits

	emails    *Category[string]
	phones    *Category[model.Phone]
	whatsapp  *Category[model.WhatsApp]
	socials   []*Category[model.SocialProfile]
	names     *Category[string]
	addresses *Category[string]
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRegion sets the ISO 3166 region used to parse phone numbers that
// carry no country code, e.g. "GB".
func WithRegion(region string) Option {
	return func(e *Extractor) {
		if region != "" {
			e.region = region
		}
	}
}

// WithLimits sets the per-page caps.
func WithLimits(limits model.AggregateLimits) Option {
	return func(e *Extractor) {
		e.limits = limits
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		region: DefaultRegion,
		limits: DefaultPageLimits(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.emails = newEmailCategory(e.limits.Emails)
	e.phones = newPhoneCategory(e.limits.Phones, e.region)
	e.whatsapp = newWhatsAppCategory(e.limits.WhatsApp)
	e.socials = make([]*Category[model.SocialProfile], 0, len(model.SocialPlatforms))
	for _, platform := range model.SocialPlatforms {
		e.socials = append(e.socials, newSocialCategory(platform, e.limits.SocialsPerPlatform))
	}
	e.names = newNameCategory(e.limits.Names)
	e.addresses = newAddressCategory(e.limits.Addresses)

	return e
}

// Region returns the default phone region.
func (e *Extractor) Region() string {
	return e.region
}

// Extract returns the contact records found in a page's visible text and
// raw HTML. Either may be empty. The result depends only on its inputs.
func (e *Extractor) Extract(text, html string) model.ExtractionResult {
	c := NewContent(text, html)

	result := model.ExtractionResult{
		Emails:    e.emails.Extract(c),
		Phones:    e.phones.Extract(c),
		WhatsApp:  e.whatsapp.Extract(c),
		Socials:   make([]model.SocialProfile, 0),
		Names:     e.names.Extract(c),
		Addresses: e.addresses.Extract(c),
	}
	for _, cat := range e.socials {
		result.Socials = append(result.Socials, cat.Extract(c)...)
	}

	return result
}
