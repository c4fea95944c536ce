package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result as a Markdown document.
func (w *MarkdownWriter) Write(result *model.AggregatedResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Contact Extraction Report")
	md.PlainText("")
	w.writeResult(md, result, md.H2)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs an overview table followed by one section per
// successful result.
func (w *MarkdownWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Contact Extraction Batch Report")
	md.PlainText("")

	rows := make([][]string, len(batch.Results))
	for i, item := range batch.Results {
		if item.Success {
			rows[i] = []string{item.URL, "✅", strconv.Itoa(item.Data.PagesScraped), strconv.Itoa(item.Data.TotalItems())}
		} else {
			rows[i] = []string{item.URL, "❌ " + truncateString(item.Error, 60), "-", "-"}
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Pages", "Contacts"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("%d of %d URLs succeeded.", batch.Successful, batch.Total)
	md.PlainText("")

	for _, item := range batch.Results {
		if item.Data == nil {
			continue
		}
		md.H2(item.Data.SourceURL)
		md.PlainText("")
		w.writeResult(md, item.Data, md.H3)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeResult writes the metadata table, the summary and every category.
// heading renders the section titles at the caller's level.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, r *model.AggregatedResult, heading func(string) *markdown.Markdown) {
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source URL", "`" + r.SourceURL + "`"},
			{"Extracted At", r.ExtractedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages Scraped", strconv.Itoa(r.PagesScraped)},
			{"Failed Pages", strconv.Itoa(r.FailedPages)},
			{"Time Taken", strconv.FormatFloat(r.TimeTaken, 'f', 2, 64) + "s"},
			{"Status", statusText(r)},
		},
	})
	md.PlainText("")

	if !r.Success {
		md.Cautionf("Extraction could not start: %s", r.Error)
		md.PlainText("")
		return
	}

	w.writeSummary(md, r, heading)
	w.writeCategories(md, r, heading)
}

// writeSummary writes the per-category counts, a pie chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, r *model.AggregatedResult, heading func(string) *markdown.Markdown) {
	heading("Summary")
	md.PlainText("")

	counts := categoryCounts(r)
	rows := make([][]string, 0, len(counts)+1)
	for _, c := range counts {
		rows = append(rows, []string{c.label, strconv.Itoa(c.count)})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(r.TotalItems()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if r.TotalItems() > 0 {
		w.writePieChart(md, counts)
	}

	switch {
	case r.StopReason == model.StopReasonBudget || r.StopReason == model.StopReasonCancelled:
		md.Warningf("The crawl stopped early (%s). Results are partial.", r.StopReason)
	case r.TotalItems() == 0:
		md.Note("No contact information found.")
	case r.FailedPages > 0:
		md.Importantf("%d page(s) could not be fetched.", r.FailedPages)
	default:
		md.Tip("All visited pages were fetched.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the category distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts []categoryCount) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Contacts by Category"),
		piechart.WithShowData(true),
	)

	for _, c := range counts {
		if c.count > 0 {
			chart.LabelAndIntValue(c.label, uint64(c.count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeCategories writes one section per non-empty category.
func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, r *model.AggregatedResult, heading func(string) *markdown.Markdown) {
	if len(r.Emails) > 0 {
		heading("Emails")
		md.PlainText("")
		md.BulletList(r.Emails...)
		md.PlainText("")
	}

	if len(r.Phones) > 0 {
		heading("Phones")
		md.PlainText("")
		rows := make([][]string, len(r.Phones))
		for i, p := range r.Phones {
			rows[i] = []string{p.E164, p.Formatted, escapeCell(p.Original)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"E.164 / Digits", "Formatted", "Original"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(r.WhatsApp) > 0 {
		heading("WhatsApp")
		md.PlainText("")
		rows := make([][]string, len(r.WhatsApp))
		for i, wa := range r.WhatsApp {
			rows[i] = []string{wa.Number, wa.Link}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Number", "Link"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if r.SocialCount() > 0 {
		heading("Social Profiles")
		md.PlainText("")
		rows := make([][]string, 0, r.SocialCount())
		for _, platform := range r.Platforms() {
			for _, p := range r.SocialLinks[platform] {
				rows = append(rows, []string{platformName(platform), "@" + p.Username, p.URL})
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Platform", "Username", "URL"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(r.Names) > 0 {
		heading("Names")
		md.PlainText("")
		md.BulletList(r.Names...)
		md.PlainText("")
	}

	if len(r.Addresses) > 0 {
		heading("Addresses")
		md.PlainText("")
		md.BulletList(r.Addresses...)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by contact-extractor*")
}

type categoryCount struct {
	label string
	count int
}

func categoryCounts(r *model.AggregatedResult) []categoryCount {
	return []categoryCount{
		{"Emails", len(r.Emails)},
		{"Phones", len(r.Phones)},
		{"WhatsApp", len(r.WhatsApp)},
		{"Social Profiles", r.SocialCount()},
		{"Names", len(r.Names)},
		{"Addresses", len(r.Addresses)},
	}
}

// escapeCell keeps pipes in page text from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
