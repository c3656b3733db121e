package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetAdminUsers = "users retrieved successfully"
	MessageSuccessExportUsers   = "users exported successfully"
	MessageSuccessSyncStores    = "stores synchronized successfully"
	MessageSuccessDeleteUser    = "user deleted successfully"

	MessageFailedGetAdminUsers = "failed to retrieve users"
	MessageFailedExportUsers   = "failed to export users"
	MessageFailedSyncStores    = "failed to synchronize stores"
	MessageFailedDeleteUser    = "failed to delete user"

	ErrAdminTokenInvalid = errors.New("invalid admin token")
)

type (
	// AdminUser is the merged view of a user across both stores,
	// deduplicated by lowercase email. Display/export only.
	AdminUser struct {
		Email            string     `json:"email"`
		Name             string     `json:"name"`
		Credits          int        `json:"credits"`
		Status           string     `json:"status"`
		SubscriptionTier string     `json:"subscription_tier"`
		TotalSpent       float64    `json:"total_spent"`
		Source           string     `json:"source"` // local, remote, both
		CreatedAt        *time.Time `json:"created_at,omitempty"`
	}

	SyncReport struct {
		Checked        int       `json:"checked"`
		CreatedRemote  int       `json:"created_remote"`
		AdjustedRemote int       `json:"adjusted_remote"`
		Failed         int       `json:"failed"`
		RanAt          time.Time `json:"ran_at"`
	}
)
