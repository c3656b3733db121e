package domain

import (
	"errors"
)

var (
	MessageSuccessGenerateStory    = "story generated successfully"
	MessageSuccessGenerateColoring = "coloring page generated successfully"

	MessageFailedGenerateStory    = "failed to generate story"
	MessageFailedGenerateColoring = "failed to generate coloring page"

	ErrGeminiAPIFailed = errors.New("generation service returned no result")
)

type (
	GenerateStoryRequest struct {
		Hero     string `json:"hero" validate:"required,min=2,max=64"`
		Theme    string `json:"theme" validate:"required,min=2,max=128"`
		AgeRange string `json:"age_range" validate:"required,oneof=3-5 6-8 9-12"`
	}

	GenerateStoryResponse struct {
		ContentID string `json:"content_id"`
		Title     string `json:"title"`
		Story     string `json:"story"`
		Balance   int    `json:"balance"`
	}

	GenerateColoringRequest struct {
		Subject string `json:"subject" validate:"required,min=2,max=128"`
		Style   string `json:"style" validate:"omitempty,oneof=Simple Detailed"`
	}

	GenerateColoringResponse struct {
		ContentID string `json:"content_id"`
		Image     string `json:"image"` // data URI
		Balance   int    `json:"balance"`
	}
)
