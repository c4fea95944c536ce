package model

import (
	"testing"
)

func TestSocialPlatform(t *testing.T) {
	t.Parallel()

	t.Run("String returns correct value", func(t *testing.T) {
		t.Parallel()
		if got := SocialPlatformFacebook.String(); got != "facebook" {
			t.Errorf("expected facebook, got %s", got)
		}
		if got := SocialPlatformUnknown.String(); got != "unknown" {
			t.Errorf("expected unknown, got %s", got)
		}
	})

	t.Run("IsValid returns true for known platforms", func(t *testing.T) {
		t.Parallel()
		for _, p := range SocialPlatforms {
			if !p.IsValid() {
				t.Errorf("expected %s to be valid", p)
			}
		}
		if SocialPlatformUnknown.IsValid() {
			t.Error("expected unknown to be invalid")
		}
		if SocialPlatform("myspace").IsValid() {
			t.Error("expected myspace to be invalid")
		}
	})

	t.Run("ProfileBaseURL is set for every known platform", func(t *testing.T) {
		t.Parallel()
		for _, p := range SocialPlatforms {
			if p.ProfileBaseURL() == "" {
				t.Errorf("expected base URL for %s", p)
			}
		}
		if got := SocialPlatformTelegram.ProfileBaseURL(); got != "https://t.me/" {
			t.Errorf("expected https://t.me/, got %s", got)
		}
		if got := SocialPlatformUnknown.ProfileBaseURL(); got != "" {
			t.Errorf("expected empty base URL, got %s", got)
		}
	})

	t.Run("ParseSocialPlatform parses correctly", func(t *testing.T) {
		t.Parallel()
		if got := ParseSocialPlatform("twitter"); got != SocialPlatformTwitter {
			t.Errorf("expected twitter, got %v", got)
		}
		if got := ParseSocialPlatform("x"); got != SocialPlatformTwitter {
			t.Errorf("expected twitter for x, got %v", got)
		}
		if got := ParseSocialPlatform("fb"); got != SocialPlatformFacebook {
			t.Errorf("expected facebook for fb, got %v", got)
		}
		if got := ParseSocialPlatform("invalid"); got != SocialPlatformUnknown {
			t.Errorf("expected unknown, got %v", got)
		}
	})
}
