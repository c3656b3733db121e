package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetMe      = "user profile retrieved successfully"
	MessageSuccessUpdateUser = "user updated successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetMe      = "failed to retrieve user profile"
	MessageFailedUpdateUser = "failed to update user"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserSuspended      = errors.New("user account is suspended")
)

const (
	// Credits granted on signup
	REGISTRATION_BONUS_CREDITS = 10

	TierFree    = "Free"
	TierPremium = "Premium"
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required,min=2,max=64"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  *UserProfile `json:"user"`
	}

	UpdateUserRequest struct {
		Name     string `json:"name" validate:"omitempty,min=2,max=64"`
		Password string `json:"password" validate:"omitempty,min=8"`
	}

	UserProfile struct {
		ID               string     `json:"id"`
		Email            string     `json:"email"`
		Name             string     `json:"name"`
		Credits          int        `json:"credits"`
		Status           string     `json:"status"`
		SubscriptionTier string     `json:"subscription_tier"`
		TotalSpent       float64    `json:"total_spent"`
		CreatedAt        time.Time  `json:"created_at"`
		LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	}
)
