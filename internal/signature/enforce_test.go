package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforce_ReplacesPlaceholderToken(t *testing.T) {
	body := "Hi Jane,\n\nI enjoyed your paper.\n\nThanks,\nUser"
	got := Enforce(body, "Aditya")
	assert.Equal(t, "Hi Jane,\n\nI enjoyed your paper.\n\nThanks,\nAditya", got)
}

func TestEnforce_LowercasePlaceholder(t *testing.T) {
	body := "Best regards,\nuser"
	got := Enforce(body, "Aditya")
	assert.Equal(t, "Best regards,\nAditya", got)
}

func TestEnforce_PlaceholderMidSentenceAlsoReplaced(t *testing.T) {
	body := "As a user of your product I have feedback.\n\nCheers,\nAditya"
	got := Enforce(body, "Aditya")
	assert.Equal(t, "As a Aditya of your product I have feedback.\n\nCheers,\nAditya", got)
}

func TestEnforce_CorrectsWrongName(t *testing.T) {
	body := "Hello,\n\nShort note.\n\nSincerely,\nJohn Doe"
	got := Enforce(body, "Aditya Rao")
	assert.Equal(t, "Hello,\n\nShort note.\n\nSincerely,\nAditya Rao", got)
}

func TestEnforce_KeepsMatchingName(t *testing.T) {
	body := "Hello,\n\nShort note.\n\nBest regards,\nAditya Rao"
	got := Enforce(body, "Aditya Rao")
	assert.Equal(t, body, got)
}

func TestEnforce_KeepsMatchingNameCaseInsensitive(t *testing.T) {
	body := "Note.\n\nRegards,\naditya rao"
	got := Enforce(body, "Aditya Rao")
	assert.Equal(t, body, got)
}

func TestEnforce_ReplacesGenericSignature(t *testing.T) {
	body := "Note.\n\nKind regards,\nYour Name"
	got := Enforce(body, "Aditya")
	assert.Equal(t, "Note.\n\nKind regards,\nAditya", got)
}

func TestEnforce_AppendsWhenNoSignOff(t *testing.T) {
	body := "Hi Jane,\n\nJust a quick note about your latest paper."
	got := Enforce(body, "Aditya")
	assert.Equal(t, body+"\n\nBest regards,\nAditya", got)
}

func TestEnforce_AppendTrimsTrailingWhitespace(t *testing.T) {
	body := "A note without a closing.\n\n  \n"
	got := Enforce(body, "Aditya")
	assert.Equal(t, "A note without a closing.\n\nBest regards,\nAditya", got)
}

func TestEnforce_EmptySenderLeavesBodyAlone(t *testing.T) {
	body := "Thanks,\nUser"
	assert.Equal(t, body, Enforce(body, ""))
}

func TestEnforce_SalutationWithIndentedName(t *testing.T) {
	body := "Note.\n\nThank you,\n  John"
	got := Enforce(body, "Aditya")
	assert.Equal(t, "Note.\n\nThank you,\n  Aditya", got)
}

func TestEnforce_AlwaysEndsWithSender(t *testing.T) {
	bodies := []string{
		"no sign-off at all",
		"Thanks,\nUser",
		"Sincerely,\nWrong Person",
		"Best,\nme",
	}
	for _, body := range bodies {
		got := Enforce(body, "Aditya")
		assert.True(t, strings.HasSuffix(strings.TrimRight(got, " \t\n"), "Aditya"), got)
	}
}
