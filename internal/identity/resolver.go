// Package identity derives a human-appropriate sender display name from
// account profile data supplied by the external identity provider.
package identity

import "strings"

// Profile is the read-only view of an account's name fields. Field values
// come from provider metadata and are not trusted to be meaningful.
type Profile struct {
	FullName      string
	DisplayName   string
	PreferredName string
	FirstName     string
	LastName      string
	Email         string
}

// DefaultName is the last-resort display name.
const DefaultName = "Me"

// genericNames are rejected at every stage of the fallback chain. "Me" the
// literal default is fine; "me" as provider data is not a real name.
var genericNames = map[string]bool{
	"user": true, "me": true, "admin": true,
	"customer": true, "guest": true, "person": true,
}

// ResolveDisplayName walks the precedence chain: explicit name fields, then
// first+last, then first alone, then a humanized email local-part, then the
// literal default. Generic values fall through to the next source. The
// result always starts with an uppercase letter.
func ResolveDisplayName(p Profile) string {
	candidates := []string{
		p.FullName,
		p.DisplayName,
		p.PreferredName,
		joinNames(p.FirstName, p.LastName),
		p.FirstName,
		humanizeLocalPart(p.Email),
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || genericNames[strings.ToLower(candidate)] {
			continue
		}
		return capitalizeFirst(candidate)
	}

	return DefaultName
}

func joinNames(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return ""
	}
	return first + " " + last
}

// humanizeLocalPart turns "jane.smith" or "jane_smith" into "Jane Smith".
func humanizeLocalPart(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	local := email[:at]
	spaced := strings.NewReplacer(".", " ", "_", " ", "-", " ", "+", " ").Replace(local)

	words := strings.Fields(spaced)
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
