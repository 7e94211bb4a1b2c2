package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/aditya/slidein/internal/db"
	"github.com/aditya/slidein/internal/identity"
	"github.com/aditya/slidein/internal/pipeline"
	"github.com/aditya/slidein/internal/server/middleware"
)

// emailGenerator is the slice of the pipeline the handlers need. Tests
// substitute a stub.
type emailGenerator interface {
	Generate(ctx context.Context, req pipeline.GenerateRequest) (*pipeline.GenerateResult, error)
	Summarize(ctx context.Context, urlStr string) (*pipeline.SummarizeResult, error)
}

// DraftStore persists generated drafts. A nil store disables history.
type DraftStore interface {
	SaveDraft(ctx context.Context, d *db.Draft) (uuid.UUID, error)
	ListDraftsByUser(ctx context.Context, userID string, limit int) ([]db.Draft, error)
}

// handleGenerateEmail runs the full generation pipeline for one request.
func (s *Server) handleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	var req GenerateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	senderName := s.resolveSenderName(r, req.UserName)

	result, err := s.generator.Generate(r.Context(), pipeline.GenerateRequest{
		URLContent:     req.URLContent,
		Goal:           req.Goal,
		Tone:           req.Tone,
		SenderName:     senderName,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		URL:            req.URL,
	})
	if err != nil {
		log.Printf("[generate] request failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.saveDraft(r, req.URL, result)

	s.jsonResponse(w, http.StatusOK, GenerateEmailResponse{
		Subject:         result.Subject,
		Body:            result.Body,
		RecipientName:   result.RecipientName,
		RecipientEmail:  result.RecipientEmail,
		ExtractedEmails: result.ExtractedEmails,
		UserName:        senderName,
	})
}

// handleSummarize analyzes a URL and returns a short model-written summary.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.generator.Summarize(r.Context(), req.URL)
	if err != nil {
		log.Printf("[summarize] request failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SummarizeResponse{
		Summary:         result.Summary,
		Context:         string(result.Context),
		RecipientName:   result.RecipientName,
		ExtractedEmails: result.ExtractedEmails,
	})
}

// handleListEmails returns the caller's saved draft history.
func (s *Server) handleListEmails(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Draft history is not configured")
		return
	}

	drafts, err := s.store.ListDraftsByUser(r.Context(), principal.UserID, 50)
	if err != nil {
		log.Printf("[emails] list failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load drafts")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"emails": drafts})
}

// resolveSenderName prefers the caller-supplied name, then the identity
// profile from the bearer token, then the resolver's defaults.
func (s *Server) resolveSenderName(r *http.Request, requested string) string {
	if requested != "" {
		return requested
	}
	if principal, ok := middleware.PrincipalFrom(r); ok {
		return identity.ResolveDisplayName(principal.Profile)
	}
	return identity.ResolveDisplayName(identity.Profile{})
}

// saveDraft records a generated draft for authenticated callers. History is
// best effort and never fails the request.
func (s *Server) saveDraft(r *http.Request, urlStr string, result *pipeline.GenerateResult) {
	if s.store == nil {
		return
	}
	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		return
	}

	_, err := s.store.SaveDraft(r.Context(), &db.Draft{
		UserID:         principal.UserID,
		URL:            urlStr,
		Subject:        result.Subject,
		Body:           result.Body,
		RecipientName:  result.RecipientName,
		RecipientEmail: result.RecipientEmail,
		PageContext:    string(result.Context),
	})
	if err != nil {
		log.Printf("[generate] failed to save draft: %v", err)
	}
}
