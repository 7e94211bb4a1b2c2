package contacts

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// emailScanRE finds address-shaped substrings in free text.
var emailScanRE = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// emailStrictRE validates a full candidate as a single address token.
// Candidates that fail are dropped silently; a bad match is expected, not an
// error.
var emailStrictRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ExtractEmails collects contact addresses from mailto links and then from a
// regex scan of the cleaned text. The result preserves first-seen order and
// de-duplicates on exact string match. It is never nil.
func ExtractEmails(doc *goquery.Document, cleanedText string) []string {
	emails := make([]string, 0, 4)
	seen := make(map[string]bool)

	add := func(candidate string) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || seen[candidate] || !emailStrictRE.MatchString(candidate) {
			return
		}
		seen[candidate] = true
		emails = append(emails, candidate)
	}

	if doc != nil {
		doc.Find(`a[href^="mailto:"]`).Each(func(_ int, s *goquery.Selection) {
			href := s.AttrOr("href", "")
			addr := strings.TrimPrefix(href, "mailto:")
			if idx := strings.Index(addr, "?"); idx >= 0 {
				addr = addr[:idx]
			}
			add(addr)
		})
	}

	for _, match := range emailScanRE.FindAllString(cleanedText, -1) {
		add(match)
	}

	return emails
}
