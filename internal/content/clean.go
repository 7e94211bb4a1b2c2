// Package content turns raw HTML into model-ready text for email generation.
package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxContentChars is the character budget for model input. Longer cleaned
// text is cut at this boundary and marked with an ellipsis.
const MaxContentChars = 10000

// Ellipsis marks truncated content.
const Ellipsis = "..."

// minBlockWords is the word count a text block must exceed to be kept.
const minBlockWords = 5

// removedElements are stripped from the document before text extraction.
const removedElements = "nav, footer, script, style, iframe, noscript"

// blockElements are walked in document order for significant text.
const blockElements = "article, main, section, div, p, h1, h2"

// ignoreFragments flag boilerplate containers by class or id substring.
var ignoreFragments = []string{
	"nav", "footer", "sidebar", "menu", "header", "banner",
	"cookie", "privacy", "terms", "social", "share", "copyright",
}

// PageContent is the cleaned, request-scoped view of a fetched page.
type PageContent struct {
	RawHTML         string
	Title           string
	MetaDescription string
	CleanedText     string
	Truncated       bool
}

// EmptyContentError reports a page that yielded no usable text.
type EmptyContentError struct {
	URL string
}

func (e *EmptyContentError) Error() string {
	if e.URL == "" {
		return "no usable content extracted from page"
	}
	return fmt.Sprintf("no usable content extracted from %s", e.URL)
}

// ParseError reports HTML that could not be parsed at all.
type ParseError struct {
	URL   string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse HTML for %s: %v", e.URL, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Clean parses rawHTML, strips boilerplate, and assembles the cleaned text.
// The returned document has noise elements already removed and is safe to
// reuse for name and email extraction.
func Clean(rawHTML, urlStr string) (*PageContent, *goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, nil, &ParseError{URL: urlStr, Cause: err}
	}

	doc.Find(removedElements).Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	metaDesc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))

	var blocks []string
	seen := make(map[string]bool)
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		if isIgnorable(s) {
			return
		}
		text := strings.TrimSpace(s.Text())
		if len(strings.Fields(text)) <= minBlockWords {
			return
		}
		if seen[text] {
			return
		}
		seen[text] = true
		blocks = append(blocks, text)
	})

	parts := make([]string, 0, len(blocks)+2)
	for _, p := range append([]string{title, metaDesc}, blocks...) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	combined := strings.Join(parts, "\n\n")

	if strings.TrimSpace(combined) == "" {
		return nil, nil, &EmptyContentError{URL: urlStr}
	}

	pc := &PageContent{
		RawHTML:         rawHTML,
		Title:           title,
		MetaDescription: metaDesc,
	}
	pc.CleanedText, pc.Truncated = Truncate(combined)

	return pc, doc, nil
}

// Truncate enforces the model-input character budget. Text at or under the
// budget passes through untouched.
func Truncate(text string) (string, bool) {
	runes := []rune(text)
	if len(runes) <= MaxContentChars {
		return text, false
	}
	return string(runes[:MaxContentChars]) + Ellipsis, true
}

// isIgnorable reports whether an element's class or id marks it as
// boilerplate (navigation, cookie notices, social widgets and the like).
func isIgnorable(s *goquery.Selection) bool {
	marker := strings.ToLower(s.AttrOr("class", "") + " " + s.AttrOr("id", ""))
	if strings.TrimSpace(marker) == "" {
		return false
	}
	for _, fragment := range ignoreFragments {
		if strings.Contains(marker, fragment) {
			return true
		}
	}
	return false
}
