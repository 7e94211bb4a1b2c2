package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya/slidein/internal/fetch"
	"github.com/aditya/slidein/internal/llm"
	"github.com/aditya/slidein/internal/pagecontext"
)

// scriptedLLM answers name-extraction prompts with name and everything else
// with draft.
type scriptedLLM struct {
	name    string
	draft   string
	err     error
	prompts []string
}

func (s *scriptedLLM) GenerateText(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if strings.Contains(prompt, "Extract the name") {
		return s.name, nil
	}
	return s.draft, nil
}

func (s *scriptedLLM) Close() error { return nil }

const facultyHTML = `<html>
<head><title>Dr. Jane Smith - Faculty Profile</title></head>
<body>
	<h1>Dr. Jane Smith</h1>
	<main>
		<p>Dr. Jane Smith is a professor of computer science researching distributed systems.</p>
		<p>Contact the lab at <a href="mailto:jsmith@university.edu">jsmith@university.edu</a> for openings.</p>
	</main>
</body>
</html>`

func pageServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAnalyzeURL(t *testing.T) {
	server := pageServer(t, facultyHTML)
	g := NewGenerator(&scriptedLLM{}, Options{})

	page, err := g.AnalyzeURL(context.Background(), server.URL+"/faculty/jane-smith")
	require.NoError(t, err)

	assert.Equal(t, pagecontext.Academic, page.Context)
	assert.Equal(t, "Dr. Jane Smith", page.RecipientName)
	assert.Contains(t, page.Emails, "jsmith@university.edu")
	assert.Contains(t, page.Content.CleanedText, "distributed systems")
}

func TestGenerate_WithoutURL(t *testing.T) {
	client := &scriptedLLM{draft: `{"subject": "Hello", "body": "Short note.\n\nBest regards,\nAditya"}`}
	g := NewGenerator(client, Options{})

	result, err := g.Generate(context.Background(), GenerateRequest{
		URLContent: "Our company team ships product for enterprise customers and clients.",
		Goal:       "introduce myself",
		Tone:       "casual",
		SenderName: "Aditya",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello", result.Subject)
	assert.True(t, strings.HasSuffix(result.Body, "Best regards,\nAditya"))
	assert.Equal(t, pagecontext.Company, result.Context)
	assert.NotNil(t, result.ExtractedEmails)
	assert.Empty(t, result.ExtractedEmails)
}

func TestGenerate_URLOverwritesContent(t *testing.T) {
	server := pageServer(t, facultyHTML)
	client := &scriptedLLM{draft: `{"subject": "Re: your research", "body": "Note.\n\nThanks,\nAditya"}`}
	g := NewGenerator(client, Options{})

	result, err := g.Generate(context.Background(), GenerateRequest{
		URLContent: "stale caller-provided text that must not reach the prompt",
		Goal:       "ask about openings",
		Tone:       "formal",
		SenderName: "Aditya",
		URL:        server.URL + "/faculty/jane-smith",
	})
	require.NoError(t, err)

	// The drafting prompt is the last model call.
	draftPrompt := client.prompts[len(client.prompts)-1]
	assert.NotContains(t, draftPrompt, "stale caller-provided")
	assert.Contains(t, draftPrompt, "distributed systems")
	assert.Equal(t, pagecontext.Academic, result.Context)
}

func TestGenerate_AutofillsRecipient(t *testing.T) {
	server := pageServer(t, facultyHTML)
	client := &scriptedLLM{draft: `{"subject": "S", "body": "B.\n\nThanks,\nAditya"}`}
	g := NewGenerator(client, Options{})

	result, err := g.Generate(context.Background(), GenerateRequest{
		Goal:       "ask about openings",
		Tone:       "formal",
		SenderName: "Aditya",
		URL:        server.URL + "/faculty/jane-smith",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dr. Jane Smith", result.RecipientName)
	assert.Equal(t, "jsmith@university.edu", result.RecipientEmail)
}

func TestGenerate_CallerRecipientWins(t *testing.T) {
	server := pageServer(t, facultyHTML)
	client := &scriptedLLM{draft: `{"subject": "S", "body": "B.\n\nThanks,\nAditya"}`}
	g := NewGenerator(client, Options{})

	result, err := g.Generate(context.Background(), GenerateRequest{
		Goal:           "ask about openings",
		Tone:           "formal",
		SenderName:     "Aditya",
		RecipientName:  "Dean Jones",
		RecipientEmail: "dean@university.edu",
		URL:            server.URL + "/faculty/jane-smith",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dean Jones", result.RecipientName)
	assert.Equal(t, "dean@university.edu", result.RecipientEmail)
}

func TestGenerate_FetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := &scriptedLLM{draft: `{"subject": "S", "body": "B"}`}
	g := NewGenerator(client, Options{
		FetchOptions: &fetch.Options{Timeout: 50 * time.Millisecond, UserAgent: fetch.DefaultUserAgent},
	})

	_, err := g.Generate(context.Background(), GenerateRequest{
		Goal: "g", Tone: "t", SenderName: "A", URL: server.URL,
	})
	require.Error(t, err)

	var timeoutErr *fetch.TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
}

func TestGenerate_SignatureEnforced(t *testing.T) {
	client := &scriptedLLM{draft: `{"subject": "S", "body": "A note with no closing at all."}`}
	g := NewGenerator(client, Options{})

	result, err := g.Generate(context.Background(), GenerateRequest{
		URLContent: "some page content for the prompt body",
		Goal:       "g", Tone: "t", SenderName: "Aditya",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Body, "Best regards,\nAditya"))
}

func TestSummarize(t *testing.T) {
	server := pageServer(t, facultyHTML)
	client := &scriptedLLM{name: "Jane Smith", draft: "A faculty page about distributed systems research."}
	g := NewGenerator(client, Options{})

	result, err := g.Summarize(context.Background(), server.URL+"/faculty/jane-smith")
	require.NoError(t, err)

	assert.Equal(t, "A faculty page about distributed systems research.", result.Summary)
	assert.Equal(t, pagecontext.Academic, result.Context)
	assert.Contains(t, result.ExtractedEmails, "jsmith@university.edu")
}
