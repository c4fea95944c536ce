package log

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces secrets in log output.
const MaskValue = "***REDACTED***"

// secretKeywords mark attribute keys whose values are never logged. A key
// is secret when its lowercase form contains one of them, so site_cookie,
// redis_password and proxy-authorization are all caught. The bare word
// "key" is not listed because it matches names like "primary_key".
var secretKeywords = []string{
	"cookie",
	"auth",
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"private",
	"session",
	"api_key",
	"apikey",
	"api-key",
}

// secretValues match values that are secrets whatever their key: tokens
// pasted into headers, cloud keys and proxy URLs carrying a password.
var secretValues = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
	regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://[^/\s:@]+:[^/\s@]+@`),
}

// emailPattern finds email addresses inside logged strings.
var emailPattern = regexp.MustCompile(`([A-Za-z0-9._%+-])[A-Za-z0-9._%+-]*@([A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

// phoneKeywords mark attribute keys whose values are phone numbers.
var phoneKeywords = []string{"phone", "whatsapp", "mobile", "tel"}

// SecureHandler is an slog.Handler that scrubs records before passing them
// on. Secrets (cookies, credentials, tokens) are replaced by MaskValue.
// Harvested contact data is personal data, so unless PII masking is turned
// off email local parts and all but the last four digits of phone numbers
// are masked as well, in the message and in every attribute.
type SecureHandler struct {
	next    slog.Handler
	maskPII bool
}

// HandlerOption configures a SecureHandler.
type HandlerOption func(*SecureHandler)

// WithPIIMasking enables or disables masking of contact data. It is
// enabled by default.
func WithPIIMasking(enabled bool) HandlerOption {
	return func(h *SecureHandler) {
		h.maskPII = enabled
	}
}

// NewSecureHandler returns a SecureHandler in front of next, or in front
// of the default handler when next is nil.
func NewSecureHandler(next slog.Handler, opts ...HandlerOption) *SecureHandler {
	if next == nil {
		next = slog.Default().Handler()
	}
	h := &SecureHandler{next: next, maskPII: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled implements slog.Handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	msg := r.Message
	if h.maskPII {
		msg = MaskEmails(msg)
	}

	clean := slog.NewRecord(r.Time, r.Level, msg, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.scrub(a))
		return true
	})
	return h.next.Handle(ctx, clean)
}

// WithAttrs implements slog.Handler. The attributes are scrubbed once,
// here, rather than on every record.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.next.WithAttrs(h.scrubAll(attrs)))
}

// WithGroup implements slog.Handler.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return h.wrap(h.next.WithGroup(name))
}

func (h *SecureHandler) wrap(next slog.Handler) *SecureHandler {
	return &SecureHandler{next: next, maskPII: h.maskPII}
}

func (h *SecureHandler) scrubAll(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.scrub(a)
	}
	return out
}

// scrub returns a with secrets redacted and, when enabled, contact data
// masked. Groups are scrubbed recursively.
func (h *SecureHandler) scrub(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	key := strings.ToLower(a.Key)

	if a.Value.Kind() == slog.KindGroup {
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(h.scrubAll(a.Value.Group())...)}
	}
	if containsSensitiveKeyword(key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if isSensitiveValue(s) {
			return slog.String(a.Key, MaskValue)
		}
		if h.maskPII {
			return slog.String(a.Key, maskContact(key, s))
		}
	case slog.KindAny:
		if !h.maskPII {
			return a
		}
		switch v := a.Value.Any().(type) {
		case []string:
			masked := make([]string, len(v))
			for i, s := range v {
				masked[i] = maskContact(key, s)
			}
			return slog.Any(a.Key, masked)
		case error:
			if msg := v.Error(); MaskEmails(msg) != msg {
				return slog.String(a.Key, MaskEmails(msg))
			}
		}
	}

	return a
}

// maskContact masks a phone number when key names one, and every email
// address inside value otherwise.
func maskContact(key, value string) string {
	if isPhoneKey(key) {
		return MaskPhone(value)
	}
	return MaskEmails(value)
}

// MaskEmails replaces the local part of every email address in s with its
// first character followed by "***".
func MaskEmails(s string) string {
	return emailPattern.ReplaceAllString(s, "${1}***@${2}")
}

// MaskPhone keeps only the last four digits of a phone number.
func MaskPhone(s string) string {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return "***"
	}
	return "***" + string(digits[len(digits)-4:])
}

func isPhoneKey(key string) bool {
	return containsAny(key, phoneKeywords)
}

// containsSensitiveKeyword reports whether the lowercase key names a
// secret.
func containsSensitiveKeyword(key string) bool {
	return containsAny(key, secretKeywords)
}

// isSensitiveValue reports whether value looks like a secret.
func isSensitiveValue(value string) bool {
	for _, re := range secretValues {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
