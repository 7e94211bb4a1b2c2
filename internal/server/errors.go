// Package server provides the HTTP API for the cold-email assistant.
package server

import (
	"errors"
	"net/http"

	"github.com/aditya/slidein/internal/compose"
	"github.com/aditya/slidein/internal/content"
	"github.com/aditya/slidein/internal/fetch"
)

// ErrValidation indicates a missing or empty required request field.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// HTTPStatus maps pipeline and validation errors to response codes. Page
// fetch timeouts get their own status so the UI can suggest retrying with a
// different URL.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		timeoutErr    *fetch.TimeoutError
		emptyErr      *content.EmptyContentError
		fetchErr      *fetch.Error
		genErr        *compose.GenerationError
		parseErr      *compose.ParseError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &timeoutErr):
		return http.StatusRequestTimeout
	case errors.As(err, &emptyErr):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusInternalServerError
	case errors.As(err, &genErr), errors.As(err, &parseErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
