package extract

import (
	"regexp"
	"strings"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// MinUsernameLength is the shortest accepted social username.
const MinUsernameLength = 2

// linkedInCompanyBase is the profile base of LinkedIn company pages.
const linkedInCompanyBase = "https://linkedin.com/company/"

// Host boundary and terminator shared by the social patterns. The
// boundary keeps "dropbox.com/team" and "foo.x.com/bob" from matching as
// x.com; only the www., m. and mobile. prefixes may precede a host.
const (
	hostBoundary = `(?:^|[^a-z0-9.-])`
	pathEnd      = `(?:[/?#"'\s<>)\\&]|$)`
)

// reservedUsernames are navigation and system paths on every platform.
var reservedUsernames = map[string]bool{
	"share": true, "sharer": true, "intent": true, "dialog": true,
	"login": true, "signup": true, "register": true, "home": true,
	"about": true, "contact": true, "help": true, "support": true,
	"terms": true, "privacy": true, "settings": true, "notifications": true,
	"messages": true, "search": true, "explore": true, "trending": true,
	"hashtag": true, "i": true, "js": true, "css": true, "images": true,
	"static": true, "assets": true, "api": true, "fonts": true, "status": true,
}

// platformReserved extends reservedUsernames per platform.
var platformReserved = map[model.SocialPlatform][]string{
	model.SocialPlatformFacebook:  {"plugins", "tr", "pages", "groups", "events", "watch", "people", "photo", "photos", "story", "hashtag", "marketplace", "gaming"},
	model.SocialPlatformTwitter:   {"home", "share", "intent", "search", "hashtag", "explore", "settings", "tos"},
	model.SocialPlatformInstagram: {"p", "explore", "accounts", "reel", "reels", "stories", "tv", "direct"},
	model.SocialPlatformYouTube:   {"watch", "results", "embed", "playlist", "feed"},
	model.SocialPlatformPinterest: {"pin", "ideas", "today", "business", "search"},
	model.SocialPlatformGitHub: {
		"features", "pricing", "enterprise", "join", "orgs", "topics", "marketplace",
		"sponsors", "apps", "site", "security", "collections", "readme", "solutions",
		"team", "customer-stories", "new", "organizations", "sessions",
	},
	model.SocialPlatformTelegram: {"share", "joinchat", "s", "addstickers", "proxy", "socks", "iv"},
}

// socialRule is a pattern table entry before it is turned into a Rule.
type socialRule struct {
	name    string
	pattern string
	base    string
}

// socialTables lists the profile URL shapes of each platform in
// evaluation order. Each pattern captures the username in group 1.
var socialTables = map[model.SocialPlatform][]socialRule{
	model.SocialPlatformFacebook: {
		{name: "facebook", pattern: `(?:facebook|fb)\.com/([a-z0-9._-]{2,50})`},
		{name: "fb.me", pattern: `fb\.me/([a-z0-9._-]{2,50})`},
	},
	model.SocialPlatformTwitter: {
		{name: "twitter", pattern: `(?:twitter|x)\.com/([a-z0-9_]{1,15})`},
	},
	model.SocialPlatformLinkedIn: {
		{name: "profile", pattern: `linkedin\.com/in/([a-z0-9_-]{2,100})`},
		{name: "company", pattern: `linkedin\.com/company/([a-z0-9_-]{2,100})`, base: linkedInCompanyBase},
	},
	model.SocialPlatformInstagram: {
		{name: "instagram", pattern: `instagram\.com/([a-z0-9._]{2,30})`},
	},
	model.SocialPlatformYouTube: {
		{name: "youtube", pattern: `youtube\.com/(?:c/|channel/|user/|@)([a-z0-9_.-]{2,50})`},
	},
	model.SocialPlatformTikTok: {
		{name: "tiktok", pattern: `tiktok\.com/@([a-z0-9._]{2,24})`},
	},
	model.SocialPlatformPinterest: {
		{name: "pinterest", pattern: `pinterest\.com/([a-z0-9_]{2,30})`},
	},
	model.SocialPlatformGitHub: {
		{name: "github", pattern: `github\.com/([a-z0-9_-]{1,39})`},
	},
	model.SocialPlatformTelegram: {
		{name: "t.me", pattern: `t\.me/([a-z0-9_]{5,32})`},
		{name: "telegram.me", pattern: `telegram\.me/([a-z0-9_]{5,32})`},
	},
}

// socialRejects drop script endpoints such as facebook.com/sharer.php.
var socialRejects = []*regexp.Regexp{
	regexp.MustCompile(`\.(?:php|html?|aspx?|jsp)$`),
}

// SocialRules are the recognizers for platform in evaluation order.
func SocialRules(platform model.SocialPlatform) []Rule {
	reserved := make(map[string]bool, len(reservedUsernames))
	for name := range reservedUsernames {
		reserved[name] = true
	}
	for _, name := range platformReserved[platform] {
		reserved[name] = true
	}
	validate := func(username string) bool {
		return ValidUsername(username, reserved)
	}

	table := socialTables[platform]
	rules := make([]Rule, 0, len(table))
	for _, r := range table {
		base := r.base
		if base == "" {
			base = platform.ProfileBaseURL()
		}
		rules = append(rules, Rule{
			Name:      r.name,
			Source:    SourceAll,
			Pattern:   regexp.MustCompile(`(?i)` + hostBoundary + `(?:www\.|m\.|mobile\.)?` + r.pattern + pathEnd),
			Reject:    socialRejects,
			Normalize: normalizeUsername,
			Validate:  validate,
			Tag:       base,
		})
	}
	return rules
}

func normalizeUsername(s string) string {
	return strings.TrimRight(strings.ToLower(s), "/.")
}

// ValidUsername reports whether username is at least MinUsernameLength
// characters, not purely numeric and not in reserved.
func ValidUsername(username string, reserved map[string]bool) bool {
	if len(username) < MinUsernameLength || reserved[username] {
		return false
	}
	return strings.Trim(username, "0123456789") != ""
}

func newSocialCategory(platform model.SocialPlatform, limit int) *Category[model.SocialProfile] {
	return &Category[model.SocialProfile]{
		Name:  string(platform),
		Rules: SocialRules(platform),
		Limit: limit,
		Build: func(m Match) (model.SocialProfile, string, bool) {
			profile := model.SocialProfile{
				Username: m.Value,
				URL:      m.Rule.Tag + m.Value,
				Platform: platform,
			}
			return profile, profile.URL, true
		},
	}
}
