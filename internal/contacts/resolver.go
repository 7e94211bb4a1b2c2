package contacts

import (
	"context"
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aditya/slidein/internal/llm"
	"github.com/aditya/slidein/internal/pagecontext"
	"github.com/aditya/slidein/internal/prompts"
)

// Source records which resolution layer produced a candidate.
type Source string

// Resolution layers, in the order they are attempted.
const (
	SourceSelector       Source = "selector"
	SourceMeta           Source = "meta"
	SourceTitle          Source = "title"
	SourceURL            Source = "url"
	SourceBody           Source = "body-regex"
	SourceContactSection Source = "contact-section"
	SourceLLM            Source = "llm"
	SourceFallback       Source = "fallback"
)

// Candidate is a single resolved recipient name and its provenance.
type Candidate struct {
	RawMatch string
	Name     string
	Source   Source
}

// nameSelectors are scanned in order for elements likely to hold a person's
// name. Each selector contributes at most maxMatchesPerSelector elements.
var nameSelectors = []string{
	"h1", "h2", "h3",
	".faculty-name", ".profile-name", ".staff-name", ".person-name",
	".author-name", ".team-member", ".name",
	`[itemprop="name"]`,
}

const maxMatchesPerSelector = 5

// metaSelectors are checked after DOM selectors, in order.
var metaSelectors = []string{
	`meta[property="og:title"]`,
	`meta[name="author"]`,
	`meta[name="twitter:title"]`,
	`meta[property="article:author"]`,
}

// genericPathSegments never yield a URL-derived name.
var genericPathSegments = map[string]bool{
	"about": true, "contact": true, "team": true, "people": true,
	"faculty": true, "staff": true, "profile": true, "index": true,
	"home": true, "pages": true, "en": true, "www": true, "jobs": true,
	"careers": true, "company": true,
}

// genericSubdomains never yield a surname.
var genericSubdomains = map[string]bool{
	"www": true, "mail": true, "blog": true, "shop": true, "docs": true,
	"app": true, "web": true, "info": true, "jobs": true, "careers": true,
}

// strictFullNameRE is the FirstName LastName shape required of URL-derived
// names.
var strictFullNameRE = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)

var alphaRE = regexp.MustCompile(`^[a-zA-Z]+$`)

// fallbackNames are the context-specific defaults when every layer fails.
var fallbackNames = map[pagecontext.Tag]string{
	pagecontext.Academic: "Professor",
	pagecontext.Job:      "Hiring Manager",
	pagecontext.Company:  "Team",
	pagecontext.Generic:  "Team",
}

// genericLLMAnswers are placeholder responses the LLM layer may return when
// it cannot find an individual.
var genericLLMAnswers = map[string]bool{
	"professor": true, "hiring manager": true, "team": true,
	"unknown": true, "none": true, "n/a": true,
}

// Resolver produces a best-guess recipient name from a parsed page. The LLM
// client is optional; without it the model fallback layer is skipped.
type Resolver struct {
	llm     llm.Client
	verbose bool
}

// NewResolver creates a Resolver. client may be nil.
func NewResolver(client llm.Client, verbose bool) *Resolver {
	return &Resolver{llm: client, verbose: verbose}
}

// Resolve walks the resolution layers in order and returns the first
// successful candidate's name, adapted to the page context. It never returns
// an empty string: when every layer fails the context-specific default is
// used. Name inference must never fail a generation request, so model errors
// degrade to the default rather than propagating.
func (r *Resolver) Resolve(ctx context.Context, doc *goquery.Document, cleanedText, urlStr string, tag pagecontext.Tag) string {
	if c, ok := r.resolveCandidate(ctx, doc, cleanedText, urlStr, tag); ok {
		if r.verbose {
			log.Printf("[contacts] resolved %q via %s", c.Name, c.Source)
		}
		return augmentTitle(c.Name, tag)
	}
	return fallbackNames[tag]
}

func (r *Resolver) resolveCandidate(ctx context.Context, doc *goquery.Document, cleanedText, urlStr string, tag pagecontext.Tag) (Candidate, bool) {
	layers := []func() (Candidate, bool){
		func() (Candidate, bool) { return fromSelectors(doc) },
		func() (Candidate, bool) { return fromMetaTags(doc) },
		func() (Candidate, bool) { return fromTitle(doc) },
		func() (Candidate, bool) { return fromURL(urlStr) },
		func() (Candidate, bool) { return fromBody(cleanedText) },
		func() (Candidate, bool) { return fromContactSection(doc) },
		func() (Candidate, bool) { return r.fromLLM(ctx, cleanedText, tag) },
	}
	for _, layer := range layers {
		if c, ok := layer(); ok {
			return c, true
		}
	}
	return Candidate{}, false
}

// fromSelectors scans DOM elements likely to hold a name. Headings carry
// too many non-name labels for the bare catch-alls, so only the selective
// patterns apply here.
func fromSelectors(doc *goquery.Document) (Candidate, bool) {
	if doc == nil {
		return Candidate{}, false
	}
	var found Candidate
	for _, selector := range nameSelectors {
		matched := false
		doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= maxMatchesPerSelector {
				return false
			}
			text := strings.TrimSpace(s.Text())
			if name, raw, _, ok := matchStrictName(text); ok {
				found = Candidate{RawMatch: raw, Name: name, Source: SourceSelector}
				matched = true
				return false
			}
			return true
		})
		if matched {
			return found, true
		}
	}
	return Candidate{}, false
}

// fromMetaTags tests page metadata against the selective patterns.
func fromMetaTags(doc *goquery.Document) (Candidate, bool) {
	if doc == nil {
		return Candidate{}, false
	}
	for _, selector := range metaSelectors {
		content := strings.TrimSpace(doc.Find(selector).AttrOr("content", ""))
		if name, raw, _, ok := matchStrictName(content); ok {
			return Candidate{RawMatch: raw, Name: name, Source: SourceMeta}, true
		}
	}
	return Candidate{}, false
}

// fromTitle tests the document title against the selective patterns.
func fromTitle(doc *goquery.Document) (Candidate, bool) {
	if doc == nil {
		return Candidate{}, false
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if name, raw, _, ok := matchStrictName(title); ok {
		return Candidate{RawMatch: raw, Name: name, Source: SourceTitle}, true
	}
	return Candidate{}, false
}

// fromURL derives a name from path segments ("/people/jane-smith") or, for
// personal subdomains, from the first host label capitalized as a surname.
func fromURL(urlStr string) (Candidate, bool) {
	if urlStr == "" {
		return Candidate{}, false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return Candidate{}, false
	}

	for _, segment := range strings.Split(parsed.Path, "/") {
		segment = strings.TrimSuffix(segment, ".html")
		if segment == "" || genericPathSegments[strings.ToLower(segment)] {
			continue
		}
		spaced := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
		candidate := capitalizeWords(spaced)
		if strictFullNameRE.MatchString(candidate) {
			return Candidate{RawMatch: segment, Name: candidate, Source: SourceURL}, true
		}
	}

	labels := strings.Split(parsed.Hostname(), ".")
	if len(labels) > 2 {
		first := strings.ToLower(labels[0])
		if len(first) > 3 && alphaRE.MatchString(first) && !genericSubdomains[first] {
			return Candidate{RawMatch: first, Name: capitalizeWords(first), Source: SourceURL}, true
		}
	}

	return Candidate{}, false
}

// fromBody runs the pattern chain over the full cleaned text.
func fromBody(cleanedText string) (Candidate, bool) {
	if name, raw, _, ok := matchName(cleanedText); ok {
		return Candidate{RawMatch: raw, Name: name, Source: SourceBody}, true
	}
	return Candidate{}, false
}

// fromContactSection finds an element whose text is exactly "Contact" or
// "Contact Us" and scans its next few siblings for a name.
func fromContactSection(doc *goquery.Document) (Candidate, bool) {
	if doc == nil {
		return Candidate{}, false
	}
	var found Candidate
	matched := false
	doc.Find("h1, h2, h3, h4, p, div, span, strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !strings.EqualFold(text, "Contact") && !strings.EqualFold(text, "Contact Us") {
			return true
		}
		s.NextAll().EachWithBreak(func(i int, sib *goquery.Selection) bool {
			if i >= 5 {
				return false
			}
			if name, raw, _, ok := matchName(strings.TrimSpace(sib.Text())); ok {
				found = Candidate{RawMatch: raw, Name: name, Source: SourceContactSection}
				matched = true
				return false
			}
			return true
		})
		return !matched
	})
	return found, matched
}

// fromLLM asks the model for the key person on the page. A model failure or a
// placeholder answer degrades to one last bare-name scan of the body text.
func (r *Resolver) fromLLM(ctx context.Context, cleanedText string, tag pagecontext.Tag) (Candidate, bool) {
	if r.llm == nil || strings.TrimSpace(cleanedText) == "" {
		return Candidate{}, false
	}

	template, err := prompts.Get("contacts.json", "extract-name-"+string(tag))
	if err != nil {
		template = prompts.MustGet("contacts.json", "extract-name-generic")
	}
	prompt := prompts.Format(template, map[string]string{"Content": cleanedText})

	answer, err := r.llm.GenerateText(ctx, prompt, llm.TierLite)
	if err != nil {
		if r.verbose {
			log.Printf("[contacts] LLM name extraction failed: %v", err)
		}
		return Candidate{}, false
	}

	answer = strings.TrimSpace(answer)
	if isUsableLLMName(answer) {
		return Candidate{RawMatch: answer, Name: answer, Source: SourceLLM}, true
	}

	if name, ok := scanBareName(cleanedText); ok {
		return Candidate{RawMatch: name, Name: name, Source: SourceLLM}, true
	}
	return Candidate{}, false
}

// isUsableLLMName filters out placeholder answers and rambling responses.
func isUsableLLMName(answer string) bool {
	if answer == "" || genericLLMAnswers[strings.ToLower(answer)] {
		return false
	}
	if len(answer) > 60 || len(strings.Fields(answer)) > 5 || strings.Contains(answer, "\n") {
		return false
	}
	return true
}

// augmentTitle prefixes bare names with "Professor " in academic contexts.
// Names that already carry an honorific are left alone.
func augmentTitle(name string, tag pagecontext.Tag) string {
	if tag == pagecontext.Academic && !hasHonorific(name) {
		return "Professor " + name
	}
	return name
}

// capitalizeWords uppercases the first letter of each space-separated word.
func capitalizeWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
