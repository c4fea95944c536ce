package extract

import (
	"reflect"
	"testing"
)

func TestWhatsAppExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		html     string
		expected []string
	}{
		{name: "wa.me", html: `<a href="https://wa.me/15551234567">chat</a>`, expected: []string{"15551234567"}},
		{name: "wa.me with plus", html: `<a href="https://wa.me/+447700900123">chat</a>`, expected: []string{"447700900123"}},
		{name: "api", html: `<a href="https://api.whatsapp.com/send?phone=15551234567&text=hi">chat</a>`, expected: []string{"15551234567"}},
		{name: "web", html: `<a href="https://web.whatsapp.com/send?phone=15551234567">chat</a>`, expected: []string{"15551234567"}},
		{name: "app scheme", html: `<a href="whatsapp://send?phone=447700900123">chat</a>`, expected: []string{"447700900123"}},
		{name: "text context", text: "WhatsApp: +1 555 123 4567", expected: []string{"15551234567"}},
		{name: "same number once", html: `<a href="https://wa.me/15551234567">a</a><a href="https://api.whatsapp.com/send?phone=15551234567">b</a>`, expected: []string{"15551234567"}},
		{name: "too short", html: `<a href="https://wa.me/123456789">chat</a>`, expected: []string{}},
		{name: "too long", html: `<a href="https://wa.me/1234567890123456">chat</a>`, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records := newWhatsAppCategory(5).Extract(NewContent(tt.text, tt.html))
			got := make([]string, 0, len(records))
			for _, r := range records {
				got = append(got, r.Number)
				if r.Link != WhatsAppLinkBase+r.Number {
					t.Errorf("expected link for %s, got %q", r.Number, r.Link)
				}
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
