// Package pagecontext infers what kind of page an outreach email is aimed at.
// The resulting tag drives recipient titles, fallback names, and prompt tone.
package pagecontext

import "strings"

// Tag classifies a source page.
type Tag string

const (
	// Academic marks faculty profiles, lab pages, and research groups.
	Academic Tag = "academic"
	// Job marks postings and career pages.
	Job Tag = "job"
	// Company marks about/team/leadership pages.
	Company Tag = "company"
	// Generic is the default when nothing else matches.
	Generic Tag = "generic"
)

// URL marker groups, checked in order. The first group with a hit wins.
var (
	academicURLMarkers = []string{
		".edu", "faculty", "professor", "academic", "research", "lab", "department",
	}
	jobURLMarkers = []string{
		"job", "career", "position", "apply", "employ", "hiring",
		"greenhouse.io", "lever.co", "myworkdayjobs.com", "linkedin.com/jobs", "indeed.com",
	}
	companyURLMarkers = []string{
		"about-us", "team", "leadership", "company", "contact-us",
	}
)

// Keyword lists for text scoring, matched case-insensitively.
var (
	academicKeywords = []string{
		"professor", "research", "university", "faculty", "phd",
		"publication", "laboratory", "academic", "dissertation", "department",
	}
	jobKeywords = []string{
		"job", "position", "hiring", "salary", "apply",
		"candidate", "recruiter", "responsibilities", "qualifications", "benefits",
	}
	companyKeywords = []string{
		"company", "team", "product", "customer", "service",
		"mission", "founded", "startup", "enterprise", "clients",
	}
)

// scoreThreshold is the minimum keyword-hit count a category must exceed for
// text scoring to override the generic default.
const scoreThreshold = 2

// Classify returns the context tag for a page. URL markers take priority over
// text scoring; both inputs may be empty. The function is pure and
// deterministic for a given input pair.
func Classify(urlStr, text string) Tag {
	if urlStr != "" {
		if tag, ok := classifyURL(urlStr); ok {
			return tag
		}
	}
	if text != "" {
		if tag, ok := classifyText(text); ok {
			return tag
		}
	}
	return Generic
}

func classifyURL(urlStr string) (Tag, bool) {
	lower := strings.ToLower(urlStr)
	if containsAny(lower, academicURLMarkers) {
		return Academic, true
	}
	if containsAny(lower, jobURLMarkers) {
		return Job, true
	}
	if containsAny(lower, companyURLMarkers) {
		return Company, true
	}
	return Generic, false
}

// classifyText counts keyword hits per category. A category wins only with a
// strictly highest score above the threshold; ties fall through to generic.
// The academic/job/company comparison order is load-bearing and must not be
// reordered.
func classifyText(text string) (Tag, bool) {
	lower := strings.ToLower(text)
	academic := countHits(lower, academicKeywords)
	job := countHits(lower, jobKeywords)
	company := countHits(lower, companyKeywords)

	switch {
	case academic > job && academic > company && academic > scoreThreshold:
		return Academic, true
	case job > academic && job > company && job > scoreThreshold:
		return Job, true
	case company > academic && company > job && company > scoreThreshold:
		return Company, true
	}
	return Generic, false
}

func countHits(lower string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(lower, kw)
	}
	return total
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
