package entities

import (
	"github.com/google/uuid"
)

type ContentItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Type       string    `json:"type"` // Story, Coloring, Image
	Title      string    `json:"title"`
	Payload    string    `json:"payload"` // data URI for images, structured text for stories
	IsFavorite bool      `json:"is_favorite"`
	ExportURL  string    `json:"export_url,omitempty"`

	Timestamp
}
