package model

// SocialPlatform identifies a social network whose profile links are
// extracted. The value is the key used in AggregatedResult.SocialLinks.
type SocialPlatform string

// Supported platforms.
const (
	SocialPlatformUnknown   SocialPlatform = ""
	SocialPlatformFacebook  SocialPlatform = "facebook"
	SocialPlatformTwitter   SocialPlatform = "twitter"
	SocialPlatformLinkedIn  SocialPlatform = "linkedin"
	SocialPlatformInstagram SocialPlatform = "instagram"
	SocialPlatformYouTube   SocialPlatform = "youtube"
	SocialPlatformTikTok    SocialPlatform = "tiktok"
	SocialPlatformPinterest SocialPlatform = "pinterest"
	SocialPlatformGitHub    SocialPlatform = "github"
	SocialPlatformTelegram  SocialPlatform = "telegram"
)

// SocialPlatforms lists every known platform in extraction order.
var SocialPlatforms = []SocialPlatform{
	SocialPlatformFacebook,
	SocialPlatformTwitter,
	SocialPlatformLinkedIn,
	SocialPlatformInstagram,
	SocialPlatformYouTube,
	SocialPlatformTikTok,
	SocialPlatformPinterest,
	SocialPlatformGitHub,
	SocialPlatformTelegram,
}

// profileBaseURLs maps a platform to the prefix that, followed by a
// username, forms its canonical profile URL.
var profileBaseURLs = map[SocialPlatform]string{
	SocialPlatformFacebook:  "https://facebook.com/",
	SocialPlatformTwitter:   "https://twitter.com/",
	SocialPlatformLinkedIn:  "https://linkedin.com/in/",
	SocialPlatformInstagram: "https://instagram.com/",
	SocialPlatformYouTube:   "https://youtube.com/@",
	SocialPlatformTikTok:    "https://tiktok.com/@",
	SocialPlatformPinterest: "https://pinterest.com/",
	SocialPlatformGitHub:    "https://github.com/",
	SocialPlatformTelegram:  "https://t.me/",
}

// platformAliases are the short names accepted by ParseSocialPlatform in
// addition to the platform values themselves.
var platformAliases = map[string]SocialPlatform{
	"fb": SocialPlatformFacebook,
	"x":  SocialPlatformTwitter,
}

// String returns the platform key, or "unknown".
func (p SocialPlatform) String() string {
	if p == SocialPlatformUnknown {
		return "unknown"
	}
	return string(p)
}

// IsValid reports whether p is a supported platform.
func (p SocialPlatform) IsValid() bool {
	_, ok := profileBaseURLs[p]
	return ok
}

// ProfileBaseURL returns the canonical profile URL prefix of p. Unknown
// platforms return "".
func (p SocialPlatform) ProfileBaseURL() string {
	return profileBaseURLs[p]
}

// ParseSocialPlatform returns the platform named s, or
// SocialPlatformUnknown.
func ParseSocialPlatform(s string) SocialPlatform {
	if p, ok := platformAliases[s]; ok {
		return p
	}
	if p := SocialPlatform(s); p.IsValid() {
		return p
	}
	return SocialPlatformUnknown
}
