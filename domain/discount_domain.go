package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessValidateDiscount = "discount code validated successfully"
	MessageFailedValidateDiscount  = "failed to validate discount code"

	ErrDiscountNotFound  = errors.New("discount code not found")
	ErrDiscountInactive  = errors.New("discount code is inactive")
	ErrDiscountExpired   = errors.New("discount code has expired")
	ErrDiscountExhausted = errors.New("discount code usage limit reached")
)

const (
	DiscountKindPercentage = "Percentage"
	DiscountKindFixed      = "Fixed"
)

type (
	ValidateDiscountRequest struct {
		Code      string `json:"code" validate:"required,min=3,max=32"`
		PackageID string `json:"package_id" validate:"required"`
	}

	DiscountQuote struct {
		Code            string    `json:"code"`
		Kind            string    `json:"kind"`
		Value           float64   `json:"value"`
		OriginalAmount  float64   `json:"original_amount"`
		DiscountedTotal float64   `json:"discounted_total"`
		ExpiresAt       time.Time `json:"expires_at"`
	}
)
