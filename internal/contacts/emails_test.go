package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmails_MailtoLinks(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="mailto:jane@example.edu">Email Jane</a>
		<a href="mailto:admin@example.edu?subject=Hello&body=Hi">Admin</a>
	</body></html>`)

	emails := ExtractEmails(doc, "")
	assert.Equal(t, []string{"jane@example.edu", "admin@example.edu"}, emails)
}

func TestExtractEmails_TextScan(t *testing.T) {
	text := "Reach me at wei.chen+lab@cs.mit.edu or the group at lab-admin@mit.edu."
	emails := ExtractEmails(nil, text)
	assert.Equal(t, []string{"wei.chen+lab@cs.mit.edu", "lab-admin@mit.edu"}, emails)
}

func TestExtractEmails_MailtoBeforeText(t *testing.T) {
	doc := mustDoc(t, `<html><body><a href="mailto:first@example.com">x</a></body></html>`)
	emails := ExtractEmails(doc, "also second@example.com in the body")
	assert.Equal(t, []string{"first@example.com", "second@example.com"}, emails)
}

func TestExtractEmails_Deduplicates(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="mailto:jane@example.com">one</a>
		<a href="mailto:jane@example.com">two</a>
	</body></html>`)

	emails := ExtractEmails(doc, "write to jane@example.com today")
	assert.Equal(t, []string{"jane@example.com"}, emails)
}

func TestExtractEmails_DropsInvalidMailto(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="mailto:">empty</a>
		<a href="mailto:not-an-address">bad</a>
	</body></html>`)

	emails := ExtractEmails(doc, "")
	assert.Empty(t, emails)
	assert.NotNil(t, emails)
}

func TestExtractEmails_NeverNil(t *testing.T) {
	emails := ExtractEmails(nil, "no addresses in this text")
	assert.NotNil(t, emails)
	assert.Empty(t, emails)
}
