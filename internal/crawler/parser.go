package crawler

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Parser limits.
const (
	// MaxLinks is the number of distinct links kept per page.
	MaxLinks = 50

	// maxAnchors is the number of <a href> elements inspected per page.
	maxAnchors = 100

	// maxHrefLength is the number of bytes of an href considered.
	maxHrefLength = 500

	// MaxTextLength is the size cap of the visible text rendering.
	MaxTextLength = 100_000

	// maxTitleLength is the size cap of the page title.
	maxTitleLength = 200
)

// skippedElements hold no visible text and no followable links.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"template": true,
	"object":   true,
	"embed":    true,
}

// skippedHrefPrefixes are href forms that never lead to a crawlable page.
var skippedHrefPrefixes = []string{"#", "javascript:", "mailto:", "tel:", "data:"}

// Parser extracts links and visible text from HTML.
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving relative URLs.
	baseURL *url.URL
}

// ParseResult contains what the crawler needs from one page.
type ParseResult struct {
	// Title is the page title from <title> tag.
	Title string

	// Links are absolute http(s) URLs without fragments, in document
	// order, deduplicated and capped at MaxLinks.
	Links []string

	// Text is the visible text, whitespace-collapsed and capped at
	// MaxTextLength bytes.
	Text string
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base URL: %v", ErrParseFailure, err)
	}
	return &Parser{baseURL: u}, nil
}

// Parse walks the document and collects links and text. The HTML tokenizer
// recovers from malformed markup, so an error is only returned when content
// cannot be read; the partial result is still valid in that case.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	result := &ParseResult{Links: make([]string, 0)}

	doc, err := html.Parse(content)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	w := &walker{
		parser: p,
		result: result,
		seen:   make(map[string]bool),
	}
	w.walk(doc)

	result.Text = w.text.String()
	return result, nil
}

// walker holds the state of a single document walk.
type walker struct {
	parser  *Parser
	result  *ParseResult
	seen    map[string]bool
	anchors int
	text    textBuilder
}

func (w *walker) walk(n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
		w.element(n)
	case html.TextNode:
		w.text.add(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// element handles HTML element nodes.
func (w *walker) element(n *html.Node) {
	switch n.Data {
	case "title":
		if w.result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			title := strings.Join(strings.Fields(n.FirstChild.Data), " ")
			if len(title) > maxTitleLength {
				title = title[:maxTitleLength]
			}
			w.result.Title = title
		}

	case "a":
		href, ok := getAttr(n, "href")
		if !ok {
			return
		}
		w.anchors++
		if w.anchors > maxAnchors || len(w.result.Links) >= MaxLinks {
			return
		}
		if link := w.parser.resolveURL(href); link != "" && !w.seen[link] {
			w.seen[link] = true
			w.result.Links = append(w.result.Links, link)
		}
	}
}

// resolveURL resolves href against the base URL. It returns "" for
// non-navigational references and for schemes other than http(s).
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if len(href) > maxHrefLength {
		href = href[:maxHrefLength]
	}
	if href == "" {
		return ""
	}

	lower := strings.ToLower(href)
	for _, prefix := range skippedHrefPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := p.baseURL.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	resolved.RawFragment = ""

	return resolved.String()
}

// getAttr returns the value of the named attribute.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// textBuilder accumulates whitespace-collapsed text up to MaxTextLength.
type textBuilder struct {
	b    strings.Builder
	full bool
}

func (t *textBuilder) add(s string) {
	if t.full {
		return
	}
	for _, word := range strings.Fields(s) {
		need := len(word)
		if t.b.Len() > 0 {
			need++
		}
		if t.b.Len()+need > MaxTextLength {
			t.full = true
			return
		}
		if t.b.Len() > 0 {
			t.b.WriteByte(' ')
		}
		t.b.WriteString(word)
	}
}

func (t *textBuilder) String() string {
	return t.b.String()
}
