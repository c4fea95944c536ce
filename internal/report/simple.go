package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether categories with no records are shown.
	showEmpty bool

	// verbose adds the original phone text and profile URLs.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty categories.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *model.AggregatedResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	if result.Success {
		w.writeContacts(&sb, result)
	}
	w.writeFooter(&sb, result)

	return io.WriteString(w.output, sb.String())
}

// WriteBatch outputs an overview line per URL followed by every
// successful result.
func (w *SimpleWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     CONTACT EXTRACTION BATCH\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "URLs:       %d\n", batch.Total)
	fmt.Fprintf(&sb, "Successful: %d\n\n", batch.Successful)

	for _, item := range batch.Results {
		if item.Success {
			fmt.Fprintf(&sb, "  [OK]     %s (%d items)\n", item.URL, item.Data.TotalItems())
		} else {
			fmt.Fprintf(&sb, "  [FAILED] %s: %s\n", item.URL, item.Error)
		}
	}

	n, err := io.WriteString(w.output, sb.String())
	if err != nil {
		return n, err
	}

	for _, item := range batch.Results {
		if item.Data == nil {
			continue
		}
		m, err := w.Write(item.Data)
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}

// writeHeader writes the report header with crawl information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, r *model.AggregatedResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                    CONTACT EXTRACTION REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Source URL:    %s\n", r.SourceURL)
	fmt.Fprintf(sb, "Extracted At:  %s\n", r.ExtractedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Pages Scraped: %d\n", r.PagesScraped)
	if r.FailedPages > 0 {
		fmt.Fprintf(sb, "Failed Pages:  %d\n", r.FailedPages)
	}
	fmt.Fprintf(sb, "Time Taken:    %.2fs\n", r.TimeTaken)
	fmt.Fprintf(sb, "Status:        %s\n", statusText(r))
	sb.WriteString("\n")
}

// writeContacts writes one section per category.
func (w *SimpleWriter) writeContacts(sb *strings.Builder, r *model.AggregatedResult) {
	w.writeSection(sb, "EMAILS", r.Emails)

	phones := make([]string, len(r.Phones))
	for i, p := range r.Phones {
		phones[i] = p.Formatted
		if w.verbose && p.Original != p.Formatted {
			phones[i] += fmt.Sprintf("  (%s)", p.Original)
		}
	}
	w.writeSection(sb, "PHONES", phones)

	whatsapp := make([]string, len(r.WhatsApp))
	for i, wa := range r.WhatsApp {
		whatsapp[i] = wa.Number + "  " + wa.Link
	}
	w.writeSection(sb, "WHATSAPP", whatsapp)

	var socials []string
	for _, platform := range r.Platforms() {
		for _, p := range r.SocialLinks[platform] {
			line := fmt.Sprintf("%-10s @%s", platformName(platform), p.Username)
			if w.verbose {
				line += "  " + p.URL
			}
			socials = append(socials, line)
		}
	}
	w.writeSection(sb, "SOCIAL PROFILES", socials)

	w.writeSection(sb, "NAMES", r.Names)
	w.writeSection(sb, "ADDRESSES", r.Addresses)
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string, lines []string) {
	if len(lines) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "%s (%d)\n", title, len(lines))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	if len(lines) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, line := range lines {
		fmt.Fprintf(sb, "  %s\n", line)
	}
	sb.WriteString("\n")
}

// writeFooter writes the total count.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, r *model.AggregatedResult) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if r.Success && r.TotalItems() == 0 {
		sb.WriteString("No contact information found.\n")
	} else {
		fmt.Fprintf(sb, "Total: %d contact records\n", r.TotalItems())
	}
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
