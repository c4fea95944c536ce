// Package log provides secure logging built on log/slog.
//
// SecureHandler wraps any slog.Handler and sanitizes attributes before they
// reach it:
//   - secrets (Authorization, Cookie, proxy credentials, tokens, keys) are
//     replaced by MaskValue, matched by key name or by value pattern;
//   - contact data is partially masked: "jane@acme.com" becomes
//     "j***@acme.com" and values under phone-like keys keep their last
//     four digits.
//
// WithPIIMasking(false) turns the contact masking off for local debugging.
// Secrets are always masked.
//
// # Usage
//
//	logger, err := log.New(os.Stderr, "pretty", verbose)
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	logger.Warn("fetch refused",
//	    "cookie", "session=abc123", // ***REDACTED***
//	    "email", "jane@acme.com",   // j***@acme.com
//	)
package log
