package extract

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

const samplePage = `<html><head><title>Acme</title></head><body>
<a href="mailto:a@b.com">Email</a>
<p>Call (555) 123-4567</p>
<a href="https://wa.me/15551234567">WhatsApp</a>
<a href="https://facebook.com/acme">Facebook</a>
</body></html>`

const samplePageText = "Acme Email Call (555) 123-4567 WhatsApp Facebook"

func TestExtractorSamplePage(t *testing.T) {
	t.Parallel()

	result := New().Extract(samplePageText, samplePage)

	if !reflect.DeepEqual(result.Emails, []string{"a@b.com"}) {
		t.Errorf("expected emails [a@b.com], got %v", result.Emails)
	}

	if len(result.Phones) != 1 {
		t.Fatalf("expected 1 phone, got %d: %+v", len(result.Phones), result.Phones)
	}
	if result.Phones[0].Digits != "5551234567" {
		t.Errorf("expected digits 5551234567, got %q", result.Phones[0].Digits)
	}

	expectedWA := []model.WhatsApp{{Number: "15551234567", Link: "https://wa.me/15551234567"}}
	if !reflect.DeepEqual(result.WhatsApp, expectedWA) {
		t.Errorf("expected %+v, got %+v", expectedWA, result.WhatsApp)
	}

	expectedSocial := []model.SocialProfile{{
		Username: "acme",
		URL:      "https://facebook.com/acme",
		Platform: model.SocialPlatformFacebook,
	}}
	if !reflect.DeepEqual(result.Socials, expectedSocial) {
		t.Errorf("expected %+v, got %+v", expectedSocial, result.Socials)
	}
}

func TestExtractorIdempotent(t *testing.T) {
	t.Parallel()

	html := samplePage + `<p>Founder: Jane Doe</p><p>123 Main Street, Springfield, IL 62704</p>
		<a href="https://twitter.com/acmehq">t</a><a href="https://github.com/acme">g</a>`
	text := samplePageText + " Founder: Jane Doe 123 Main Street, Springfield, IL 62704"

	e := New()
	first := e.Extract(text, html)
	second := e.Extract(text, html)

	if !sameResult(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
	if first.Count() == 0 {
		t.Error("expected records")
	}
}

func sameResult(a, b model.ExtractionResult) bool {
	sorted := func(s []string) []string {
		out := append([]string{}, s...)
		sort.Strings(out)
		return out
	}
	return reflect.DeepEqual(sorted(a.Emails), sorted(b.Emails)) &&
		reflect.DeepEqual(sorted(a.Names), sorted(b.Names)) &&
		reflect.DeepEqual(sorted(a.Addresses), sorted(b.Addresses)) &&
		len(a.Phones) == len(b.Phones) &&
		len(a.WhatsApp) == len(b.WhatsApp) &&
		len(a.Socials) == len(b.Socials)
}

func TestExtractorEmptyPage(t *testing.T) {
	t.Parallel()

	result := New().Extract("", "")
	if !result.IsEmpty() {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.Emails == nil || result.Socials == nil {
		t.Error("expected non-nil lists")
	}
}

func TestExtractorLimits(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := range 30 {
		b.WriteString("person")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString("@acme.com ")
	}

	limits := DefaultPageLimits()
	limits.Emails = 3
	result := New(WithLimits(limits)).Extract(b.String(), "")

	if len(result.Emails) != 3 {
		t.Errorf("expected 3 emails, got %d", len(result.Emails))
	}
}

func TestWithRegion(t *testing.T) {
	t.Parallel()

	if got := New().Region(); got != DefaultRegion {
		t.Errorf("expected default region %q, got %q", DefaultRegion, got)
	}
	if got := New(WithRegion("GB")).Region(); got != "GB" {
		t.Errorf("expected region GB, got %q", got)
	}
	if got := New(WithRegion("")).Region(); got != DefaultRegion {
		t.Errorf("expected empty region to keep %q, got %q", DefaultRegion, got)
	}
}

func TestExtractedRecordsSatisfyInvariants(t *testing.T) {
	t.Parallel()

	html := `<a href="mailto:sales@acme.io">x</a><a href="tel:+1 (650) 253-0000">call</a>
		<a href="https://x.com/share">s</a><a href="https://x.com/acme_dev">a</a>
		<a href="https://instagram.com/explore/">e</a><a href="https://instagram.com/acme.shop">i</a>`
	text := "sales@acme.io support@acme.co.uk logo@2x.png +44 20 7946 0958 (555) 123-4567 2024-01-15"

	result := New().Extract(text, html)

	for _, email := range result.Emails {
		local, domain, ok := strings.Cut(email, "@")
		if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
			t.Errorf("expected one @ with two non-empty parts, got %q", email)
		}
		tld := domain[strings.LastIndex(domain, ".")+1:]
		if len(tld) < 2 || len(tld) > 10 {
			t.Errorf("expected 2-10 letter tld, got %q", email)
		}
	}

	seen := map[string]bool{}
	for _, phone := range result.Phones {
		if n := len(phone.Digits); n < MinPhoneDigits || n > MaxPhoneDigits {
			t.Errorf("expected 10-15 digits, got %q", phone.Digits)
		}
		if seen[phone.Digits] {
			t.Errorf("expected unique digits, got duplicate %q", phone.Digits)
		}
		seen[phone.Digits] = true
	}

	for _, profile := range result.Socials {
		if reservedUsernames[profile.Username] {
			t.Errorf("expected no reserved usernames, got %+v", profile)
		}
	}
}
