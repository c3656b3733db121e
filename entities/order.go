package entities

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID           string     `json:"id"` // prefixed token, ORD-<uuid>
	UserID       uuid.UUID  `json:"user_id"`
	PackageID    string     `json:"package_id"`
	Credits      int        `json:"credits"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	DiscountCode string     `json:"discount_code,omitempty"`
	Status       string     `json:"status"` // Pending, Paid, Failed
	PaymentRef   string     `json:"payment_ref,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`

	Timestamp
}
