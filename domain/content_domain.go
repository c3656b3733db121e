package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetContent      = "content retrieved successfully"
	MessageSuccessDeleteContent   = "content deleted successfully"
	MessageSuccessFavoriteContent = "content favorite updated successfully"
	MessageSuccessExportContent   = "content exported successfully"

	MessageFailedGetContent      = "failed to retrieve content"
	MessageFailedDeleteContent   = "failed to delete content"
	MessageFailedFavoriteContent = "failed to update content favorite"
	MessageFailedExportContent   = "failed to export content"

	ErrContentNotFound           = errors.New("content not found")
	ErrUnauthorizedContentAccess = errors.New("unauthorized access to content")
	ErrContentNotExportable      = errors.New("content payload is not exportable")
)

const (
	ContentTypeStory    = "Story"
	ContentTypeColoring = "Coloring"
	ContentTypeImage    = "Image"
)

type (
	ContentItem struct {
		ID         string    `json:"id"`
		Type       string    `json:"type"`
		Title      string    `json:"title"`
		Payload    string    `json:"payload"`
		IsFavorite bool      `json:"is_favorite"`
		ExportURL  string    `json:"export_url,omitempty"`
		CreatedAt  time.Time `json:"created_at"`
	}

	ExportContentResponse struct {
		ContentID string `json:"content_id"`
		ExportURL string `json:"export_url"`
	}
)
