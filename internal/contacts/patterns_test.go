package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchName_TitledForms(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		titled bool
	}{
		{"dr dot", "Dr. Jane Smith runs the Smith Lab at MIT.", "Dr. Jane Smith", true},
		{"professor", "Professor Alan Turing teaches computability.", "Professor Alan Turing", true},
		{"prof dot", "Prof. Grace Hopper invented the compiler.", "Prof. Grace Hopper", true},
		{"dr no dot", "Dr Maria Garcia studies robotics.", "Dr Maria Garcia", true},
		{"middle initial", "Dr. Jane Q. Smith publishes widely.", "Dr. Jane Q. Smith", true},
		{"phd suffix", "Welcome to the page of Jane Smith, PhD and her group.", "Jane Smith", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, titled, ok := matchName(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.titled, titled)
		})
	}
}

func TestMatchName_LabAndGroupForms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"possessive lab", "Visit Jane Smith's Lab for openings.", "Jane Smith"},
		{"lab suffix", "The Wei Chen Laboratory studies proteins.", "Wei Chen"},
		{"research group", "The Maria Garcia Research Group meets weekly.", "Maria Garcia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, titled, ok := matchName(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.False(t, titled)
		})
	}
}

func TestMatchName_RoleForms(t *testing.T) {
	got, _, _, ok := matchName("Sarah Connor, CEO of Cyberdyne, will speak.")
	require.True(t, ok)
	assert.Equal(t, "Sarah Connor", got)

	got, _, _, ok = matchName("Founder: John Doe leads the team.")
	require.True(t, ok)
	assert.Equal(t, "John Doe", got)

	got, _, _, ok = matchName("Please contact Amy Wong with questions.")
	require.True(t, ok)
	assert.Equal(t, "Amy Wong", got)
}

func TestMatchName_ContextualAndBareForms(t *testing.T) {
	got, _, titled, ok := matchName("Jane Smith (Associate Professor) office hours Tuesday.")
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", got)
	assert.False(t, titled)

	got, _, _, ok = matchName("lowercase words then Ada Lovelace appears here")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", got)
}

func TestMatchName_TitledBeatsBare(t *testing.T) {
	// The bare two-word pattern would match "Jane Smith" first in text order,
	// but the chain tries titled forms before it.
	got, raw, titled, ok := matchName("Jane Smith met Dr. Wei Chen yesterday.")
	require.True(t, ok)
	assert.Equal(t, "Dr. Wei Chen", got)
	assert.Contains(t, raw, "Dr.")
	assert.True(t, titled)
}

func TestMatchName_NoMatch(t *testing.T) {
	_, _, _, ok := matchName("all lowercase text with no names anywhere")
	assert.False(t, ok)

	_, _, _, ok = matchName("")
	assert.False(t, ok)

	_, _, _, ok = matchName("   ")
	assert.False(t, ok)
}

func TestMatchStrictName_RejectsBareNames(t *testing.T) {
	for _, text := range []string{
		"Contact Us",
		"Our Team",
		"Privacy Policy",
		"Meet The Team",
		"Ada Lovelace", // a real name, but bare capitalization is not enough here
	} {
		_, _, _, ok := matchStrictName(text)
		assert.False(t, ok, text)
	}
}

func TestMatchStrictName_AcceptsSelectiveForms(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Dr. Jane Smith", "Dr. Jane Smith"},
		{"Jane Smith, PhD", "Jane Smith"},
		{"Maria Garcia | Robotics", "Maria Garcia"},
		{"Sarah Connor, CEO", "Sarah Connor"},
	}
	for _, tt := range tests {
		got, _, _, ok := matchStrictName(tt.text)
		require.True(t, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestMatchName_SkipsBoilerplatePhrases(t *testing.T) {
	got, _, _, ok := matchName("Contact Us and ask for Ada Lovelace")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", got)

	_, _, _, ok = matchName("Contact Us or Read More below")
	assert.False(t, ok)
}

func TestScanBareName_SkipsBoilerplatePhrases(t *testing.T) {
	name, ok := scanBareName("About Us then Grace Hopper spoke")
	require.True(t, ok)
	assert.Equal(t, "Grace Hopper", name)

	_, ok = scanBareName("Privacy Policy and Sign Up")
	assert.False(t, ok)
}

func TestHasHonorific(t *testing.T) {
	assert.True(t, hasHonorific("Dr. Jane Smith"))
	assert.True(t, hasHonorific("Professor Alan Turing"))
	assert.True(t, hasHonorific("Prof. Grace Hopper"))
	assert.True(t, hasHonorific("Jane Smith, PhD"))
	assert.False(t, hasHonorific("Jane Smith"))
	assert.False(t, hasHonorific("Hiring Manager"))
}
