package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Source selects the page content a Rule runs over.
type Source int

const (
	// SourceText is the visible text of the page.
	SourceText Source = 1 << iota
	// SourceHTML is the raw HTML of the page.
	SourceHTML
	// SourceDocument is the parsed DOM, used by rules with a Select func.
	SourceDocument

	// SourceAll runs a pattern over the HTML first and then the text.
	SourceAll = SourceHTML | SourceText
)

// Rule is one entry of a category table: a recognizer, the shapes it must
// not produce, and how a candidate is canonicalized.
//
// A candidate is taken from the match in this order: Template expanded
// against the submatches, capture group 1 when the pattern has one, or the
// whole match. It is then normalized, checked against Reject and finally
// validated.
type Rule struct {
	// Name identifies the rule in tests.
	Name string

	// Source is the content Pattern runs over.
	Source Source

	// Pattern recognizes candidates.
	Pattern *regexp.Regexp

	// Template, when set, builds the candidate from submatches
	// (see regexp.Regexp.Expand).
	Template string

	// Select replaces Pattern for SourceDocument rules.
	Select func(doc *goquery.Document) []string

	// Reject holds false-positive shapes. A candidate is dropped when any
	// of them matches the raw match or the normalized candidate.
	Reject []*regexp.Regexp

	// Normalize canonicalizes a candidate. nil leaves it unchanged.
	Normalize func(string) string

	// Validate accepts a normalized candidate. nil accepts everything.
	Validate func(string) bool

	// Tag is rule-specific data for the category builder, such as the
	// profile base URL of a social rule.
	Tag string
}

// Match is a candidate accepted by a Rule.
type Match struct {
	// Rule is the rule that produced the match.
	Rule *Rule

	// Raw is the text the pattern matched.
	Raw string

	// Value is the normalized candidate.
	Value string

	// Source is the content the match was found in.
	Source Source

	// Start and End delimit the candidate in that content. Both are -1
	// for document matches.
	Start, End int
}

// overlaps reports whether m shares any bytes with a span in spans.
func (m Match) overlaps(spans [][2]int) bool {
	for _, sp := range spans {
		if m.Start < sp[1] && sp[0] < m.End {
			return true
		}
	}
	return false
}

// each calls yield for every accepted candidate in document order until
// yield returns false. It reports whether iteration ran to completion.
func (r *Rule) each(c *Content, yield func(Match) bool) bool {
	if r.Source&SourceDocument != 0 {
		if r.Select == nil {
			return true
		}
		doc := c.Document()
		if doc == nil {
			return true
		}
		for _, raw := range r.Select(doc) {
			m, ok := r.accept(raw, raw)
			if !ok {
				continue
			}
			m.Source, m.Start, m.End = SourceDocument, -1, -1
			if !yield(m) {
				return false
			}
		}
		return true
	}

	if r.Source&SourceHTML != 0 && !r.scan(SourceHTML, c.HTML, yield) {
		return false
	}
	if r.Source&SourceText != 0 && !r.scan(SourceText, c.Text, yield) {
		return false
	}
	return true
}

func (r *Rule) scan(src Source, s string, yield func(Match) bool) bool {
	if s == "" || r.Pattern == nil {
		return true
	}
	for _, loc := range r.Pattern.FindAllStringSubmatchIndex(s, -1) {
		raw := s[loc[0]:loc[1]]
		start, end := loc[0], loc[1]
		var candidate string
		switch {
		case r.Template != "":
			candidate = string(r.Pattern.ExpandString(nil, r.Template, s, loc))
		case len(loc) >= 4 && loc[2] >= 0:
			start, end = loc[2], loc[3]
			candidate = s[start:end]
		default:
			candidate = raw
		}
		m, ok := r.accept(raw, candidate)
		if !ok {
			continue
		}
		m.Source, m.Start, m.End = src, start, end
		if !yield(m) {
			return false
		}
	}
	return true
}

func (r *Rule) accept(raw, candidate string) (Match, bool) {
	value := candidate
	if r.Normalize != nil {
		value = r.Normalize(value)
	}
	if value == "" {
		return Match{}, false
	}
	for _, reject := range r.Reject {
		if reject.MatchString(raw) || reject.MatchString(value) {
			return Match{}, false
		}
	}
	if r.Validate != nil && !r.Validate(value) {
		return Match{}, false
	}
	return Match{Rule: r, Raw: raw, Value: value}, true
}

// Category is an ordered rule table for one kind of record.
type Category[T any] struct {
	// Name is the category name, e.g. "email".
	Name string

	// Rules run in declared order.
	Rules []Rule

	// Limit caps the records returned per page. Zero means unbounded.
	Limit int

	// Build turns a match into a record and its dedup key. Returning
	// false drops the match.
	Build func(m Match) (record T, key string, ok bool)

	// Exclusive drops matches that overlap text already claimed by an
	// earlier match in the same content.
	Exclusive bool
}

// Extract runs every rule in order over c. Records whose key was already
// produced are skipped, and matching stops once Limit records are held.
func (cat *Category[T]) Extract(c *Content) []T {
	records := make([]T, 0)
	seen := make(map[string]struct{})
	claimed := make(map[Source][][2]int)

	for i := range cat.Rules {
		done := !cat.Rules[i].each(c, func(m Match) bool {
			spanned := cat.Exclusive && m.Start >= 0
			if spanned && m.overlaps(claimed[m.Source]) {
				return true
			}
			record, key, ok := cat.Build(m)
			if !ok {
				return true
			}
			if spanned {
				claimed[m.Source] = append(claimed[m.Source], [2]int{m.Start, m.End})
			}
			if _, dup := seen[key]; dup {
				return true
			}
			seen[key] = struct{}{}
			records = append(records, record)
			return cat.Limit <= 0 || len(records) < cat.Limit
		})
		if done {
			break
		}
	}

	return records
}

// Content is one page as seen by the rules. The DOM is parsed on first
// use and shared by every SourceDocument rule.
type Content struct {
	Text string
	HTML string

	doc    *goquery.Document
	parsed bool
}

// NewContent returns the content of a page.
func NewContent(text, html string) *Content {
	return &Content{Text: text, HTML: html}
}

// Document returns the parsed HTML, or nil when there is none.
func (c *Content) Document() *goquery.Document {
	if c.parsed {
		return c.doc
	}
	c.parsed = true
	if strings.TrimSpace(c.HTML) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.HTML))
	if err != nil {
		return nil
	}
	c.doc = doc
	return doc
}

// collapseSpace replaces every whitespace run with a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// digitsOnly returns the digits of s.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
