package extract

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func stringCategory(limit int, rules ...Rule) *Category[string] {
	return &Category[string]{
		Name:  "test",
		Rules: rules,
		Limit: limit,
		Build: func(m Match) (string, string, bool) {
			return m.Value, strings.ToLower(m.Value), true
		},
	}
}

func TestCategoryExtract(t *testing.T) {
	t.Parallel()

	word := regexp.MustCompile(`[A-Za-z]+`)

	t.Run("rules run in order over their sources", func(t *testing.T) {
		t.Parallel()

		cat := stringCategory(0,
			Rule{Name: "text", Source: SourceText, Pattern: word},
			Rule{Name: "html", Source: SourceHTML, Pattern: word},
		)
		got := cat.Extract(NewContent("alpha beta", "gamma"))
		expected := []string{"alpha", "beta", "gamma"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("all sources scan html first", func(t *testing.T) {
		t.Parallel()

		cat := stringCategory(0, Rule{Source: SourceAll, Pattern: word})
		got := cat.Extract(NewContent("text", "markup"))
		expected := []string{"markup", "text"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("dedup by key", func(t *testing.T) {
		t.Parallel()

		cat := stringCategory(0, Rule{Source: SourceText, Pattern: word})
		got := cat.Extract(NewContent("Acme acme ACME other", ""))
		expected := []string{"Acme", "other"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("limit stops later rules", func(t *testing.T) {
		t.Parallel()

		cat := stringCategory(2,
			Rule{Source: SourceText, Pattern: word},
			Rule{Source: SourceHTML, Pattern: word},
		)
		got := cat.Extract(NewContent("one two three", "four"))
		expected := []string{"one", "two"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("capture group, template, normalize, reject and validate", func(t *testing.T) {
		t.Parallel()

		cat := stringCategory(0,
			Rule{
				Source:  SourceText,
				Pattern: regexp.MustCompile(`id=(\w+)`),
				Reject:  []*regexp.Regexp{regexp.MustCompile(`^id=skip`)},
			},
			Rule{
				Source:    SourceText,
				Pattern:   regexp.MustCompile(`(\w+)/(\w+)`),
				Template:  "$2-$1",
				Normalize: strings.ToUpper,
				Validate:  func(s string) bool { return len(s) > 3 },
			},
		)
		got := cat.Extract(NewContent("id=keep id=skipme a/b left/right", ""))
		expected := []string{"keep", "RIGHT-LEFT"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("exclusive categories skip overlapping matches", func(t *testing.T) {
		t.Parallel()

		rules := []Rule{
			{Source: SourceText, Pattern: regexp.MustCompile(`\d+-\d+`)},
			{Source: SourceText, Pattern: regexp.MustCompile(`\d+`)},
		}
		cat := stringCategory(0, rules...)
		cat.Exclusive = true

		got := cat.Extract(NewContent("12-34 56", ""))
		expected := []string{"12-34", "56"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}

		cat.Exclusive = false
		got = cat.Extract(NewContent("12-34 56", ""))
		expected = []string{"12-34", "12", "34", "56"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("document rules", func(t *testing.T) {
		t.Parallel()

		rule := Rule{
			Source: SourceDocument,
			Select: func(doc *goquery.Document) []string {
				return doc.Find("h1").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
			},
		}
		cat := stringCategory(0, rule)

		got := cat.Extract(NewContent("", "<h1>Hello</h1><h1>World</h1>"))
		expected := []string{"Hello", "World"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}

		if got := cat.Extract(NewContent("ignored", "")); len(got) != 0 {
			t.Errorf("expected no records without html, got %v", got)
		}
	})
}

func TestDigitsOnly(t *testing.T) {
	t.Parallel()

	if got := digitsOnly("+1 (555) 123-4567"); got != "15551234567" {
		t.Errorf("expected 15551234567, got %q", got)
	}
}
