// Package pipeline orchestrates the fetch, clean, classify, resolve, compose,
// and sign-off steps behind the generate-email endpoint. All state is
// request-scoped; nothing outlives a single invocation.
package pipeline

import (
	"context"
	"log"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/aditya/slidein/internal/compose"
	"github.com/aditya/slidein/internal/contacts"
	"github.com/aditya/slidein/internal/content"
	"github.com/aditya/slidein/internal/fetch"
	"github.com/aditya/slidein/internal/llm"
	"github.com/aditya/slidein/internal/pagecontext"
	"github.com/aditya/slidein/internal/signature"
)

// Generator wires the pipeline's collaborators. The model client is injected
// so the whole flow can run against a stub in tests.
type Generator struct {
	llm        llm.Client
	composer   *compose.Composer
	resolver   *contacts.Resolver
	fetchOpts  *fetch.Options
	useBrowser bool
	verbose    bool
}

// Options configures a Generator.
type Options struct {
	FetchOptions *fetch.Options
	UseBrowser   bool
	Verbose      bool
}

// NewGenerator creates a Generator around a model client.
func NewGenerator(client llm.Client, opts Options) *Generator {
	return &Generator{
		llm:        client,
		composer:   compose.NewComposer(client),
		resolver:   contacts.NewResolver(client, opts.Verbose),
		fetchOpts:  opts.FetchOptions,
		useBrowser: opts.UseBrowser,
		verbose:    opts.Verbose,
	}
}

// PageResult is what URL analysis yields: cleaned content plus the inferred
// context, recipient, and contact addresses.
type PageResult struct {
	Content       *content.PageContent
	Context       pagecontext.Tag
	RecipientName string
	Emails        []string
}

// GenerateRequest carries the caller's inputs for one draft.
type GenerateRequest struct {
	URLContent     string
	Goal           string
	Tone           string
	SenderName     string
	RecipientName  string
	RecipientEmail string
	URL            string
}

// GenerateResult is the finished draft plus everything resolved along the way.
type GenerateResult struct {
	Subject         string
	Body            string
	RecipientName   string
	RecipientEmail  string
	ExtractedEmails []string
	Context         pagecontext.Tag
}

// AnalyzeURL fetches and cleans a page, classifies its context, and resolves
// the recipient name and contact emails. Name resolution and email
// extraction only read the parsed document, so they run concurrently.
func (g *Generator) AnalyzeURL(ctx context.Context, urlStr string) (*PageResult, error) {
	result, err := fetch.URL(ctx, urlStr, g.fetchOpts)
	if err != nil {
		return nil, err
	}

	pc, doc, err := content.Clean(result.HTML, urlStr)
	if err != nil {
		return nil, err
	}

	if g.useBrowser && fetch.ShouldUseBrowser(pc.CleanedText) {
		pc, doc = g.retryWithBrowser(ctx, urlStr, pc, doc)
	}

	tag := pagecontext.Classify(urlStr, pc.CleanedText)

	var (
		recipient string
		emails    []string
	)
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		recipient = g.resolver.Resolve(grpCtx, doc, pc.CleanedText, urlStr, tag)
		return nil
	})
	grp.Go(func() error {
		emails = contacts.ExtractEmails(doc, pc.CleanedText)
		return nil
	})
	_ = grp.Wait()

	if g.verbose {
		log.Printf("[pipeline] analyzed %s: context=%s recipient=%q emails=%d chars=%d",
			urlStr, tag, recipient, len(emails), len(pc.CleanedText))
	}

	return &PageResult{
		Content:       pc,
		Context:       tag,
		RecipientName: recipient,
		Emails:        emails,
	}, nil
}

// retryWithBrowser re-renders a suspiciously thin page in headless Chrome.
// Any failure keeps the HTTP-fetched content.
func (g *Generator) retryWithBrowser(ctx context.Context, urlStr string, pc *content.PageContent, doc *goquery.Document) (*content.PageContent, *goquery.Document) {
	html, err := fetch.BrowserSimple(ctx, urlStr, g.verbose)
	if err != nil {
		if g.verbose {
			log.Printf("[pipeline] browser fallback failed for %s: %v", urlStr, err)
		}
		return pc, doc
	}
	rendered, renderedDoc, err := content.Clean(html, urlStr)
	if err != nil {
		return pc, doc
	}
	return rendered, renderedDoc
}

// Generate runs the full flow. When a URL is supplied the fetched page text
// overwrites the caller's urlContent, and recipient fields are auto-filled
// only if the caller left them empty.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	urlContent := req.URLContent
	recipientName := req.RecipientName
	recipientEmail := req.RecipientEmail
	var emails []string

	tag := pagecontext.Classify(req.URL, urlContent)

	if req.URL != "" {
		page, err := g.AnalyzeURL(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		urlContent = page.Content.CleanedText
		tag = page.Context
		emails = page.Emails
		if recipientName == "" {
			recipientName = page.RecipientName
		}
		if recipientEmail == "" && len(page.Emails) > 0 {
			recipientEmail = page.Emails[0]
		}
	}

	draft, err := g.composer.Compose(ctx, compose.Request{
		Content:        urlContent,
		Goal:           req.Goal,
		Tone:           req.Tone,
		SenderName:     req.SenderName,
		RecipientName:  recipientName,
		RecipientEmail: recipientEmail,
		URL:            req.URL,
		Context:        tag,
	})
	if err != nil {
		return nil, err
	}

	draft.Body = signature.Enforce(draft.Body, req.SenderName)

	if emails == nil {
		emails = []string{}
	}
	return &GenerateResult{
		Subject:         draft.Subject,
		Body:            draft.Body,
		RecipientName:   recipientName,
		RecipientEmail:  recipientEmail,
		ExtractedEmails: emails,
		Context:         tag,
	}, nil
}

// SummarizeResult is the outcome of the summarize endpoint's pipeline run.
type SummarizeResult struct {
	Summary         string
	Context         pagecontext.Tag
	RecipientName   string
	ExtractedEmails []string
}

// Summarize analyzes a URL and asks the model for a short description of the
// page, for previewing a target before drafting.
func (g *Generator) Summarize(ctx context.Context, urlStr string) (*SummarizeResult, error) {
	page, err := g.AnalyzeURL(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	summary, err := g.composer.Summarize(ctx, page.Content.CleanedText)
	if err != nil {
		return nil, err
	}

	return &SummarizeResult{
		Summary:         summary,
		Context:         page.Context,
		RecipientName:   page.RecipientName,
		ExtractedEmails: page.Emails,
	}, nil
}
