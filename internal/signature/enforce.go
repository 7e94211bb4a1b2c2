// Package signature guarantees a generated email body ends with the sender's
// real name in a recognized sign-off. The rest of the system relies on this:
// nothing downstream second-guesses the sender attribution.
package signature

import (
	"regexp"
	"strings"
)

// salutations are tested in order. Longer variants come before their prefixes
// ("Best regards" before "Best") so the capture is exact.
var salutations = []string{
	"Sincerely",
	"Best regards",
	"Regards",
	"Yours truly",
	"Thanks",
	"Thank you",
	"Yours sincerely",
	"Best",
	"Cheers",
	"Warm regards",
	"Kind regards",
}

// signOffRegexps capture the name line that follows each salutation.
var signOffRegexps = buildSignOffRegexps()

func buildSignOffRegexps() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(salutations))
	for _, s := range salutations {
		res = append(res, regexp.MustCompile(`(?m)(`+regexp.QuoteMeta(s)+`,)[ \t]*\n[ \t]*([^\n]+)`))
	}
	return res
}

// placeholderTokenRE matches the literal User/user tokens the model sometimes
// leaves in place of the sender's name.
var placeholderTokenRE = regexp.MustCompile(`\b[Uu]ser\b`)

// genericSignatures are name lines that must always be replaced.
var genericSignatures = map[string]bool{
	"user": true, "me": true, "your name": true,
}

// DefaultSignOff is appended when no sign-off is found anywhere in the body.
const DefaultSignOff = "Best regards,"

// Enforce rewrites body so that senderName appears verbatim in a sign-off.
// Placeholder tokens are replaced first; then the first matching sign-off has
// its name line corrected; if no sign-off exists a new one is appended.
func Enforce(body, senderName string) string {
	if senderName == "" {
		return body
	}

	body = placeholderTokenRE.ReplaceAllString(body, senderName)

	for _, re := range signOffRegexps {
		loc := re.FindStringSubmatchIndex(body)
		if loc == nil {
			continue
		}
		// Group 2 is the captured name line.
		nameStart, nameEnd := loc[4], loc[5]
		current := strings.TrimSpace(body[nameStart:nameEnd])
		if !genericSignatures[strings.ToLower(current)] && strings.EqualFold(current, senderName) {
			return body
		}
		return body[:nameStart] + senderName + body[nameEnd:]
	}

	return strings.TrimRight(body, " \t\n") + "\n\n" + DefaultSignOff + "\n" + senderName
}
