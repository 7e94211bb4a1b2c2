// Package compose builds the drafting prompt, invokes the generative model,
// and parses its loosely structured output into a DraftEmail.
package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/aditya/slidein/internal/llm"
	"github.com/aditya/slidein/internal/pagecontext"
	"github.com/aditya/slidein/internal/prompts"
)

// Draft is the subject/body pair produced by the model. The body is later
// rewritten in place by the signature enforcer before being returned.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Request carries everything the prompt needs.
type Request struct {
	Content        string
	Goal           string
	Tone           string
	SenderName     string
	RecipientName  string
	RecipientEmail string
	URL            string
	Context        pagecontext.Tag
}

// GenerationError reports a model call that failed or returned nothing.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Composer drafts emails through an injected model client.
type Composer struct {
	llm llm.Client
}

// NewComposer creates a Composer.
func NewComposer(client llm.Client) *Composer {
	return &Composer{llm: client}
}

// Compose makes a single model call and parses the result. No retries: a
// failure surfaces immediately and the caller can re-issue the request.
func (c *Composer) Compose(ctx context.Context, req Request) (*Draft, error) {
	prompt := BuildPrompt(req)

	text, err := c.llm.GenerateText(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Message: "model call failed", Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &GenerationError{Message: "model returned empty text"}
	}

	return ParseDraft(text)
}

// BuildPrompt renders the drafting prompt for a request.
func BuildPrompt(req Request) string {
	hintKey := "context-hint-" + string(req.Context)
	hint, err := prompts.Get("generate.json", hintKey)
	if err != nil {
		hint = prompts.MustGet("generate.json", "context-hint-generic")
	}

	recipient := req.RecipientName
	if recipient == "" {
		recipient = "the page's contact person"
	}
	if req.RecipientEmail != "" {
		recipient += " <" + req.RecipientEmail + ">"
	}

	content := req.Content
	if req.URL != "" {
		content = "Source URL: " + req.URL + "\n\n" + content
	}

	template := prompts.MustGet("generate.json", "draft")
	return prompts.Format(template, map[string]string{
		"SenderName":  req.SenderName,
		"Goal":        req.Goal,
		"Tone":        req.Tone,
		"ContextHint": hint,
		"Recipient":   recipient,
		"Content":     content,
	})
}

// Summarize asks the model for a short summary of cleaned page content.
func (c *Composer) Summarize(ctx context.Context, content string) (string, error) {
	template := prompts.MustGet("generate.json", "summarize")
	prompt := prompts.Format(template, map[string]string{"Content": content})

	text, err := c.llm.GenerateText(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &GenerationError{Message: "summary call failed", Cause: err}
	}
	summary := strings.TrimSpace(text)
	if summary == "" {
		return "", &GenerationError{Message: "model returned empty summary"}
	}
	return summary, nil
}
