package entities

import (
	"time"

	"github.com/google/uuid"
)

type EmailLog struct {
	ID      uuid.UUID `json:"id"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Kind    string    `json:"kind"` // Welcome, Receipt
	Status  string    `json:"status"` // Sent, Failed
	Error   string    `json:"error,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}
