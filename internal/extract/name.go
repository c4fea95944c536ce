package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name bounds.
const (
	minNameLength = 3
	maxNameLength = 50
	maxNameWords  = 4
)

var (
	// "Founder: Jane Doe", "Contact Jane Doe", "by Jane Doe"
	rolePrefixedName = regexp.MustCompile(`\b(?i:contact|manager|owner|founder|ceo|director|author|by)[\s:]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2})\b`)

	// "Jane Doe, CEO"
	roleSuffixedName = regexp.MustCompile(`\b([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2})[\s,]+(?i:ceo|founder|owner|manager|director|president)\b`)
)

// excludedNameWords are words that show up capitalized in navigation and
// boilerplate but never in a person's name.
var excludedNameWords = map[string]bool{
	"contact": true, "about": true, "home": true, "page": true, "site": true,
	"website": true, "email": true, "phone": true, "address": true,
	"company": true, "business": true, "service": true, "services": true,
	"product": true, "products": true, "privacy": true, "policy": true,
	"terms": true, "conditions": true, "copyright": true, "rights": true,
	"reserved": true, "loading": true, "please": true, "wait": true,
	"click": true, "here": true, "read": true, "more": true, "learn": true,
	"view": true, "all": true, "see": true, "get": true, "started": true,
	"subscribe": true, "newsletter": true, "follow": true, "share": true,
	"social": true, "media": true, "our": true, "the": true, "team": true,
	"us": true,
}

// NameRules are the name recognizers in evaluation order.
func NameRules() []Rule {
	return []Rule{
		{
			Name:      "role-prefixed",
			Source:    SourceText,
			Pattern:   rolePrefixedName,
			Normalize: collapseSpace,
			Validate:  ValidName,
		},
		{
			Name:      "role-suffixed",
			Source:    SourceText,
			Pattern:   roleSuffixedName,
			Normalize: collapseSpace,
			Validate:  ValidName,
		},
		{
			Name:      "meta-author",
			Source:    SourceDocument,
			Select:    selectMetaAuthors,
			Normalize: normalizeMarkupName,
			Validate:  ValidName,
		},
		{
			Name:      "author-class",
			Source:    SourceDocument,
			Select:    selectAuthorElements,
			Normalize: normalizeMarkupName,
			Validate:  ValidName,
		},
	}
}

func selectMetaAuthors(doc *goquery.Document) []string {
	var names []string
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		if !strings.EqualFold(s.AttrOr("name", ""), "author") {
			return
		}
		if content, ok := s.Attr("content"); ok {
			names = append(names, content)
		}
	})
	return names
}

func selectAuthorElements(doc *goquery.Document) []string {
	var names []string
	doc.Find(`[class*="author"], [class*="contact-name"]`).Each(func(_ int, s *goquery.Selection) {
		if s.Is("meta, script, style, link") {
			return
		}
		names = append(names, s.Text())
	})
	return names
}

// normalizeMarkupName collapses whitespace and title-cases names that
// markup wrote in a single case, such as "JANE DOE" or "jane doe".
func normalizeMarkupName(s string) string {
	s = collapseSpace(s)
	if s == strings.ToUpper(s) || s == strings.ToLower(s) {
		s = cases.Title(language.English).String(s)
	}
	return s
}

// ValidName reports whether s looks like a person's name: 3 to 50
// characters, 1 to 4 alphabetic words, none of them boilerplate, and at
// least one capitalized.
func ValidName(s string) bool {
	if len(s) < minNameLength || len(s) > maxNameLength {
		return false
	}

	words := strings.Fields(s)
	if len(words) == 0 || len(words) > maxNameWords {
		return false
	}

	capitalized := false
	for _, word := range words {
		if excludedNameWords[strings.ToLower(word)] {
			return false
		}
		for _, r := range word {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		if unicode.IsUpper([]rune(word)[0]) {
			capitalized = true
		}
	}
	return capitalized
}

func newNameCategory(limit int) *Category[string] {
	return &Category[string]{
		Name:  "name",
		Rules: NameRules(),
		Limit: limit,
		Build: func(m Match) (string, string, bool) {
			return m.Value, cases.Fold().String(m.Value), true
		},
	}
}
