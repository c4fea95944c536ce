package model

import (
	"sort"
)

// AggregateLimits caps the size of each category in an AggregatedResult.
// A value of zero or less means the category is unbounded.
type AggregateLimits struct {
	Emails             int
	Phones             int
	WhatsApp           int
	SocialsPerPlatform int
	Names              int
	Addresses          int
}

// DefaultAggregateLimits returns the caps applied across a whole crawl.
func DefaultAggregateLimits() AggregateLimits {
	return AggregateLimits{
		Emails:             50,
		Phones:             30,
		WhatsApp:           20,
		SocialsPerPlatform: 20,
		Names:              10,
		Addresses:          5,
	}
}

// Aggregator folds per-page ExtractionResults into one deduplicated,
// capped result. It knows nothing about fetching or timing, and it is not
// safe for concurrent use: one crawl owns one Aggregator.
type Aggregator struct {
	limits AggregateLimits

	// emails is the full union; sorting and capping happen on output so
	// that the result is independent of page order.
	emails map[string]struct{}

	phones    []Phone
	phoneKeys map[string]struct{}

	whatsapp     []WhatsApp
	whatsappKeys map[string]struct{}

	socials    map[SocialPlatform][]SocialProfile
	socialKeys map[socialKey]struct{}

	names   []string
	nameSet map[string]struct{}

	addresses []string
	addrSet   map[string]struct{}

	pages int
}

// NewAggregator creates an Aggregator with the given limits.
func NewAggregator(limits AggregateLimits) *Aggregator {
	return &Aggregator{
		limits:       limits,
		emails:       make(map[string]struct{}),
		phoneKeys:    make(map[string]struct{}),
		whatsappKeys: make(map[string]struct{}),
		socials:      make(map[SocialPlatform][]SocialProfile),
		socialKeys:   make(map[socialKey]struct{}),
		nameSet:      make(map[string]struct{}),
		addrSet:      make(map[string]struct{}),
	}
}

// underCap reports whether a category holding n records may accept another.
func underCap(n, limit int) bool {
	return limit <= 0 || n < limit
}

// Add merges one page's records into the running total.
func (a *Aggregator) Add(r ExtractionResult) {
	a.pages++

	for _, email := range r.Emails {
		if email == "" {
			continue
		}
		a.emails[email] = struct{}{}
	}

	for _, phone := range r.Phones {
		key := phone.Digits
		if key == "" {
			continue
		}
		if _, ok := a.phoneKeys[key]; ok {
			continue
		}
		if !underCap(len(a.phones), a.limits.Phones) {
			break
		}
		a.phoneKeys[key] = struct{}{}
		a.phones = append(a.phones, phone)
	}

	for _, wa := range r.WhatsApp {
		if wa.Number == "" {
			continue
		}
		if _, ok := a.whatsappKeys[wa.Number]; ok {
			continue
		}
		if !underCap(len(a.whatsapp), a.limits.WhatsApp) {
			break
		}
		a.whatsappKeys[wa.Number] = struct{}{}
		a.whatsapp = append(a.whatsapp, wa)
	}

	for _, profile := range r.Socials {
		if profile.Username == "" || profile.Platform == SocialPlatformUnknown {
			continue
		}
		key := profile.key()
		if _, ok := a.socialKeys[key]; ok {
			continue
		}
		if !underCap(len(a.socials[profile.Platform]), a.limits.SocialsPerPlatform) {
			continue
		}
		a.socialKeys[key] = struct{}{}
		a.socials[profile.Platform] = append(a.socials[profile.Platform], profile)
	}

	a.names = appendUnique(a.names, a.nameSet, r.Names, a.limits.Names)
	a.addresses = appendUnique(a.addresses, a.addrSet, r.Addresses, a.limits.Addresses)
}

// appendUnique appends values not yet in seen to dst until limit is reached.
func appendUnique(dst []string, seen map[string]struct{}, values []string, limit int) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		if !underCap(len(dst), limit) {
			break
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}

// Pages returns the number of ExtractionResults added so far.
func (a *Aggregator) Pages() int {
	return a.pages
}

// Emails returns the sorted, capped email union.
func (a *Aggregator) Emails() []string {
	emails := make([]string, 0, len(a.emails))
	for e := range a.emails {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	if a.limits.Emails > 0 && len(emails) > a.limits.Emails {
		emails = emails[:a.limits.Emails]
	}
	return emails
}

// Fill copies the aggregate into r. Slices are copied so later calls to
// Add do not alter a result that has already been handed out.
func (a *Aggregator) Fill(r *AggregatedResult) {
	r.Emails = a.Emails()
	r.Phones = append([]Phone{}, a.phones...)
	r.WhatsApp = append([]WhatsApp{}, a.whatsapp...)
	r.Names = append([]string{}, a.names...)
	r.Addresses = append([]string{}, a.addresses...)

	r.SocialLinks = make(map[string][]SocialProfile, len(a.socials))
	for platform, profiles := range a.socials {
		if len(profiles) == 0 {
			continue
		}
		r.SocialLinks[string(platform)] = append([]SocialProfile{}, profiles...)
	}
}
