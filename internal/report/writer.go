package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs one result. It returns the number of bytes written.
	Write(result *model.AggregatedResult) (int, error)

	// WriteBatch outputs the results of a batch.
	WriteBatch(batch *model.BatchResult) (int, error)
}

// Format names an output format.
type Format string

// Output formats.
const (
	FormatSimple   Format = "simple"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ParseFormat returns the format named by s. "text" and "md" are accepted
// as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple", "text":
		return FormatSimple, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// NewWriter returns the writer for format. JSON output is indented.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatSimple:
		return NewSimpleWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatCSV:
		return NewCSVWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// platformName returns the display name of a social platform.
func platformName(platform string) string {
	switch model.ParseSocialPlatform(platform) {
	case model.SocialPlatformLinkedIn:
		return "LinkedIn"
	case model.SocialPlatformYouTube:
		return "YouTube"
	case model.SocialPlatformTikTok:
		return "TikTok"
	case model.SocialPlatformGitHub:
		return "GitHub"
	default:
		return cases.Title(language.English).String(platform)
	}
}

// statusText describes how a crawl ended.
func statusText(r *model.AggregatedResult) string {
	if !r.Success {
		return "Failed - " + r.Error
	}
	switch r.StopReason {
	case model.StopReasonBudget:
		return "Time budget reached (partial results)"
	case model.StopReasonCancelled:
		return "Cancelled (partial results)"
	case model.StopReasonPageCap:
		return "Page limit reached"
	default:
		return "Complete"
	}
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
