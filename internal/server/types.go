package server

import (
	"github.com/go-playground/validator/v10"
)

// fieldLabels name request fields the way the UI shows them in error
// messages.
var fieldLabels = map[string]string{
	"URLContent": "URL content",
	"Goal":       "Goal",
	"Tone":       "Tone",
	"URL":        "URL",
}

var validate = validator.New()

// GenerateEmailRequest is the body of POST /api/generate-email.
type GenerateEmailRequest struct {
	URLContent     string `json:"urlContent" validate:"required"`
	Goal           string `json:"goal" validate:"required"`
	Tone           string `json:"tone" validate:"required"`
	UserName       string `json:"userName,omitempty"`
	RecipientName  string `json:"recipientName,omitempty"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
	URL            string `json:"url,omitempty"`
}

// Validate checks required fields, reporting the first missing one with its
// UI-facing label.
func (r *GenerateEmailRequest) Validate() error {
	return validateStruct(r)
}

// GenerateEmailResponse is the success body of POST /api/generate-email.
type GenerateEmailResponse struct {
	Subject         string   `json:"subject"`
	Body            string   `json:"body"`
	RecipientName   string   `json:"recipientName"`
	RecipientEmail  string   `json:"recipientEmail"`
	ExtractedEmails []string `json:"extractedEmails"`
	UserName        string   `json:"userName"`
}

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	URL string `json:"url" validate:"required"`
}

// Validate checks required fields.
func (r *SummarizeRequest) Validate() error {
	return validateStruct(r)
}

// SummarizeResponse is the success body of POST /api/summarize.
type SummarizeResponse struct {
	Summary         string   `json:"summary"`
	Context         string   `json:"context"`
	RecipientName   string   `json:"recipientName"`
	ExtractedEmails []string `json:"extractedEmails"`
}

// validateStruct converts the first validator failure into an ErrValidation
// with a "<Field> is required" message.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		field := errs[0].StructField()
		label, ok := fieldLabels[field]
		if !ok {
			label = field
		}
		return &ErrValidation{Field: field, Message: label + " is required"}
	}
	return &ErrValidation{Message: "invalid request"}
}
