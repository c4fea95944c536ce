package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// ErrUnknownFormat is returned by New for an unsupported log format.
var ErrUnknownFormat = errors.New("unknown log format")

// Log output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// level returns Debug in verbose mode and Warn otherwise.
func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// New returns a secure logger writing format ("text", "json" or
// "pretty") to w.
func New(w io.Writer, format string, verbose bool, opts ...HandlerOption) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewSecureLogger(w, verbose, opts...), nil
	case FormatJSON:
		return NewSecureJSONLogger(w, verbose, opts...), nil
	case FormatPretty:
		return NewSecurePrettyLogger(w, verbose, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// NewSecureLogger creates a slog.Logger writing text records through a
// SecureHandler. verbose selects the Debug level; otherwise Warn.
func NewSecureLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewSecureHandler(textHandler, opts...))
}

// NewSecureJSONLogger creates a slog.Logger writing JSON records through
// a SecureHandler. The server uses it for log aggregation.
func NewSecureJSONLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewSecureHandler(jsonHandler, opts...))
}

// NewSecurePrettyLogger creates a slog.Logger with colored, human-friendly
// output from charmbracelet/log, behind a SecureHandler.
func NewSecurePrettyLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	charmLevel := charmlog.WarnLevel
	if verbose {
		charmLevel = charmlog.DebugLevel
	}

	pretty := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmLevel,
		ReportTimestamp: true,
		Prefix:          "contact-extractor",
	})

	return slog.New(NewSecureHandler(pretty, opts...))
}
