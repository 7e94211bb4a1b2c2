// Package contacts resolves a plausible recipient name and contact emails
// from a fetched page.
package contacts

import (
	"regexp"
	"strings"
)

// namePattern is one strategy in the ordered matching chain. Patterns are
// tried in slice order against each piece of text; the first submatch wins.
type namePattern struct {
	re *regexp.Regexp
	// titled marks patterns whose match already carries an honorific, so the
	// academic "Professor " prefix must not be added on top.
	titled bool
}

// word fragments shared by the patterns below.
const (
	capWord  = `[A-Z][a-z]+`
	initials = `(?:[A-Z]\.\s*)?`
)

// strictPatterns are the selective strategies: every match carries some
// signal beyond capitalization (a title, a credential, a role, or nearby
// context). Headings and metadata are matched against these only, so a
// navigation label like "Contact Us" can never become the recipient.
var strictPatterns = []namePattern{
	// Title-prefixed forms.
	{re: regexp.MustCompile(`\b(Dr\.\s*` + capWord + `(?:\s+` + initials + capWord + `)+)`), titled: true},
	{re: regexp.MustCompile(`\b(Professor\s+` + capWord + `(?:\s+` + initials + capWord + `)+)`), titled: true},
	{re: regexp.MustCompile(`\b(Prof\.\s*` + capWord + `(?:\s+` + initials + capWord + `)+)`), titled: true},
	{re: regexp.MustCompile(`\b(Dr\s+` + capWord + `(?:\s+` + capWord + `)+)\b`), titled: true},

	// Name followed by credentials.
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + initials + capWord + `)\s*,?\s+Ph\.?D\b`), titled: true},
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\s*,\s+M\.?D\b`), titled: true},

	// Possessive or descriptive lab/group/department forms: "Jane Smith's
	// Lab", "Smith Research Group", "The Chen Department".
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)['\x{2019}]s\s+(?:Lab|Group|Team)\b`)},
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\s+Lab(?:oratory)?\b`)},
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\s+(?:Research\s+)?Group\b`)},
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\s+Department\b`)},

	// Role-adjacent forms seen on team and about pages.
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\s*[,\x{2013}\x{2014}-]\s*(?:CEO|CTO|COO|Founder|Co-[Ff]ounder|Director|Manager|President)\b`)},
	{re: regexp.MustCompile(`\b(?:CEO|CTO|COO|Founder|Co-[Ff]ounder|Director|President)\s*[:,]\s*(` + capWord + `\s+` + capWord + `)\b`)},
	{re: regexp.MustCompile(`\b(?:[Cc]ontact|[Rr]each out to|[Ee]mail)\s+(` + capWord + `\s+` + capWord + `)\b`)},

	// Contextual fallbacks: "Jane Smith (Associate Professor)", "Jane Smith
	// at Stanford".
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + initials + capWord + `)\s*\(`)},
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\s+at\s+[A-Z]`)},
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\s*[\x{2013}\x{2014}|]`)},
}

// barePatterns match on capitalization alone. They are tried only in body
// text and contact sections, after every selective pattern, because in
// headings they would swallow navigation labels and section titles.
var barePatterns = []namePattern{
	// Three-word capitalized name.
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `\s+` + capWord + `)\b`)},
	// Bare two-word capitalized name. Last because it is the least selective.
	{re: regexp.MustCompile(`\b(` + capWord + `\s+` + capWord + `)\b`)},
}

// namePatterns is the full chain for free-text scanning.
var namePatterns = append(append([]namePattern{}, strictPatterns...), barePatterns...)

// nonNamePhrases are capitalized word pairs that appear on pages as
// navigation labels or section headings, never as a person. Any captured
// candidate equal to one of these is skipped and matching continues.
var nonNamePhrases = map[string]bool{
	"contact us": true, "about us": true, "our team": true,
	"our story": true, "our mission": true,
	"meet the team": true, "meet our team": true, "meet the": true, "meet our": true,
	"privacy policy": true, "terms of service": true, "terms of": true, "cookie policy": true,
	"read more": true, "learn more": true, "find out": true,
	"sign up": true, "sign in": true, "log in": true,
	"join us": true, "follow us": true, "get started": true,
	"all rights": true, "open positions": true, "job openings": true,
}

// bareNameRE is the final capitalized-two-word scan used after the LLM
// fallback returns a generic placeholder.
var bareNameRE = regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\b`)

// honorificPrefixes disqualify a name from further title augmentation.
var honorificPrefixes = []string{"Dr.", "Dr ", "Professor ", "Prof.", "Prof "}

// matchName runs the full pattern chain, bare catch-alls included, over free
// text and returns the first captured name, with the raw matched text and
// whether the pattern carries a title.
func matchName(text string) (name, raw string, titled, ok bool) {
	return firstMatch(text, namePatterns)
}

// matchStrictName runs only the selective patterns. Used for headings,
// titles, and metadata, where a bare capitalized pair is more likely a label
// than a person.
func matchStrictName(text string) (name, raw string, titled, ok bool) {
	return firstMatch(text, strictPatterns)
}

func firstMatch(text string, patterns []namePattern) (name, raw string, titled, ok bool) {
	if strings.TrimSpace(text) == "" {
		return "", "", false, false
	}
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(m[1])
			if nonNamePhrases[strings.ToLower(candidate)] {
				continue
			}
			return candidate, m[0], p.titled, true
		}
	}
	return "", "", false, false
}

// scanBareName is the post-LLM last resort: the first bare capitalized pair
// in text that is not a known boilerplate phrase.
func scanBareName(text string) (string, bool) {
	for _, m := range bareNameRE.FindAllStringSubmatch(text, -1) {
		if !nonNamePhrases[strings.ToLower(m[1])] {
			return m[1], true
		}
	}
	return "", false
}

// hasHonorific reports whether a name already carries a title or credential.
func hasHonorific(name string) bool {
	for _, prefix := range honorificPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return strings.Contains(name, "PhD") || strings.Contains(name, "Ph.D")
}
