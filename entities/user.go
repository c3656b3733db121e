package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"` // stored lowercase, match key across stores
	Name             string     `json:"name"`
	PasswordHash     string     `json:"password_hash"`
	Credits          int        `json:"credits"`
	Status           string     `json:"status"` // Active, Suspended
	SubscriptionTier string     `json:"subscription_tier"`
	TotalSpent       float64    `json:"total_spent"`
	Version          int        `json:"version"` // bumped on every mutation
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Timestamp
}
