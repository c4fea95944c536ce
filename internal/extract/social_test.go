package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

func TestSocialExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		platform model.SocialPlatform
		html     string
		text     string
		expected []string
	}{
		{name: "facebook page", platform: model.SocialPlatformFacebook, html: `<a href="https://www.facebook.com/Acme/">f</a>`, expected: []string{"acme https://facebook.com/acme"}},
		{name: "facebook short link", platform: model.SocialPlatformFacebook, html: `<a href="https://fb.me/acme.co">f</a>`, expected: []string{"acme.co https://facebook.com/acme.co"}},
		{name: "facebook sharer", platform: model.SocialPlatformFacebook, html: `<a href="https://www.facebook.com/sharer/sharer.php?u=x">s</a><a href="https://facebook.com/sharer.php?u=x">s</a>`, expected: []string{}},
		{name: "facebook numeric", platform: model.SocialPlatformFacebook, html: `<a href="https://facebook.com/123456789">f</a>`, expected: []string{}},
		{name: "x.com", platform: model.SocialPlatformTwitter, html: `<a href="https://x.com/AcmeHQ">x</a>`, expected: []string{"acmehq https://twitter.com/acmehq"}},
		{name: "twitter intent", platform: model.SocialPlatformTwitter, html: `<a href="https://twitter.com/intent/tweet?text=hi">t</a>`, expected: []string{}},
		{name: "other x.com hosts", platform: model.SocialPlatformTwitter, html: `<a href="https://dropbox.com/team">d</a>`, expected: []string{}},
		{name: "x.com subdomain of another host", platform: model.SocialPlatformTwitter, html: `<a href="https://foo.x.com/bob">f</a>`, expected: []string{}},
		{name: "mobile twitter", platform: model.SocialPlatformTwitter, html: `<a href="https://mobile.twitter.com/acmehq">t</a>`, expected: []string{"acmehq https://twitter.com/acmehq"}},
		{name: "linkedin profile", platform: model.SocialPlatformLinkedIn, html: `<a href="https://www.linkedin.com/in/jane-doe/">l</a>`, expected: []string{"jane-doe https://linkedin.com/in/jane-doe"}},
		{name: "linkedin company", platform: model.SocialPlatformLinkedIn, html: `<a href="https://linkedin.com/company/acme-inc">l</a>`, expected: []string{"acme-inc https://linkedin.com/company/acme-inc"}},
		{name: "linkedin profile and company with one name", platform: model.SocialPlatformLinkedIn, html: `<a href="https://linkedin.com/in/acme">l</a><a href="https://linkedin.com/company/acme">c</a>`, expected: []string{"acme https://linkedin.com/in/acme", "acme https://linkedin.com/company/acme"}},
		{name: "instagram post", platform: model.SocialPlatformInstagram, html: `<a href="https://instagram.com/p/Cx1/">p</a>`, expected: []string{}},
		{name: "instagram profile", platform: model.SocialPlatformInstagram, html: `<a href="https://instagram.com/acme.shop">i</a>`, expected: []string{"acme.shop https://instagram.com/acme.shop"}},
		{name: "youtube handle", platform: model.SocialPlatformYouTube, html: `<a href="https://youtube.com/@AcmeTV">y</a>`, expected: []string{"acmetv https://youtube.com/@acmetv"}},
		{name: "tiktok", platform: model.SocialPlatformTikTok, html: `<a href="https://www.tiktok.com/@acme_co">t</a>`, expected: []string{"acme_co https://tiktok.com/@acme_co"}},
		{name: "pinterest", platform: model.SocialPlatformPinterest, html: `<a href="https://pinterest.com/acmeboards/">p</a>`, expected: []string{"acmeboards https://pinterest.com/acmeboards"}},
		{name: "github repo", platform: model.SocialPlatformGitHub, html: `<a href="https://github.com/acme/tool">g</a><a href="https://github.com/features">f</a>`, expected: []string{"acme https://github.com/acme"}},
		{name: "telegram", platform: model.SocialPlatformTelegram, html: `<a href="https://t.me/acme_support">t</a><a href="https://t.me/share/url?url=x">s</a>`, expected: []string{"acme_support https://t.me/acme_support"}},
		{name: "telegram alias", platform: model.SocialPlatformTelegram, html: `<a href="https://telegram.me/acmebot">t</a>`, expected: []string{"acmebot https://t.me/acmebot"}},
		{name: "plain text url", platform: model.SocialPlatformFacebook, text: "Follow facebook.com/acme.", expected: []string{"acme https://facebook.com/acme"}},
		{name: "html and text once", platform: model.SocialPlatformFacebook, html: `<a href="https://facebook.com/acme">f</a>`, text: "facebook.com/acme", expected: []string{"acme https://facebook.com/acme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			profiles := newSocialCategory(tt.platform, 5).Extract(NewContent(tt.text, tt.html))
			got := make([]string, 0, len(profiles))
			for _, p := range profiles {
				if p.Platform != tt.platform {
					t.Errorf("expected platform %s, got %s", tt.platform, p.Platform)
				}
				got = append(got, p.Username+" "+p.URL)
			}
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSocialLimitPerPlatform(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := range 8 {
		fmt.Fprintf(&b, `<a href="https://facebook.com/acme%d">f</a>`, i)
	}
	b.WriteString(`<a href="https://github.com/acme">g</a>`)

	result := New().Extract("", b.String())

	counts := map[model.SocialPlatform]int{}
	for _, p := range result.Socials {
		counts[p.Platform]++
	}
	if counts[model.SocialPlatformFacebook] != DefaultPageLimits().SocialsPerPlatform {
		t.Errorf("expected %d facebook profiles, got %d", DefaultPageLimits().SocialsPerPlatform, counts[model.SocialPlatformFacebook])
	}
	if counts[model.SocialPlatformGitHub] != 1 {
		t.Errorf("expected 1 github profile, got %d", counts[model.SocialPlatformGitHub])
	}
}

func TestValidUsername(t *testing.T) {
	t.Parallel()

	reserved := map[string]bool{"login": true}
	tests := []struct {
		username string
		expected bool
	}{
		{username: "acme", expected: true},
		{username: "a1", expected: true},
		{username: "a", expected: false},
		{username: "12345", expected: false},
		{username: "login", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			t.Parallel()

			if got := ValidUsername(tt.username, reserved); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEveryPlatformHasRules(t *testing.T) {
	t.Parallel()

	for _, platform := range model.SocialPlatforms {
		if len(SocialRules(platform)) == 0 {
			t.Errorf("expected rules for %s", platform)
		}
	}
}
