// Package domain defines the DTOs and ports for the translate endpoint
package domain

import "context"

// TranslateRequest is the endpoint input
type TranslateRequest struct {
	Source string `json:"source" validate:"required,langcode"`
	Target string `json:"target" validate:"required,langcode"`
	Text   string `json:"text"   validate:"required,max=4096"`
}

// TranslateResponse is the endpoint output
type TranslateResponse struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Model       string `json:"model"`
	Translation string `json:"translation"`
}

// TranslatorPort executes direct translations for the admin surface
type TranslatorPort interface {
	Translate(ctx context.Context, req TranslateRequest) (TranslateResponse, error)
}
