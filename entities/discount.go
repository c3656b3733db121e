package entities

import (
	"time"

	"github.com/google/uuid"
)

type DiscountCode struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"` // stored uppercase, unique
	Kind       string    `json:"kind"` // Percentage, Fixed
	Value      float64   `json:"value"`
	UsageCount int       `json:"usage_count"`
	MaxUses    int       `json:"max_uses"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsActive   bool      `json:"is_active"`

	Timestamp
}
