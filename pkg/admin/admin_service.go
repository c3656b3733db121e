package admin

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/pkg/sheets"
	"Storybrush-Backend/pkg/syncer"
	"Storybrush-Backend/pkg/user"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

type (
	AdminService interface {
		// GetUsers merges both stores into one list deduplicated by
		// lowercase email, remote entries winning on conflict. Read-only:
		// the merged view is never written back to either store.
		GetUsers(ctx context.Context) ([]*domain.AdminUser, error)
		ExportUsersCSV(ctx context.Context) ([]byte, error)
		SyncStores(ctx context.Context) (*domain.SyncReport, error)
		DeleteUser(ctx context.Context, userID string) error
	}

	adminService struct {
		userRepository user.UserRepository
		sheetsClient   sheets.SheetsClient
		syncer         syncer.Syncer
	}
)

func NewAdminService(userRepository user.UserRepository, sheetsClient sheets.SheetsClient, sync syncer.Syncer) AdminService {
	return &adminService{
		userRepository: userRepository,
		sheetsClient:   sheetsClient,
		syncer:         sync,
	}
}

func (s *adminService) GetUsers(ctx context.Context) ([]*domain.AdminUser, error) {
	localUsers, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*domain.AdminUser, len(localUsers))
	for _, lu := range localUsers {
		email := strings.ToLower(lu.Email)
		createdAt := lu.CreatedAt
		merged[email] = &domain.AdminUser{
			Email:            email,
			Name:             lu.Name,
			Credits:          lu.Credits,
			Status:           lu.Status,
			SubscriptionTier: lu.SubscriptionTier,
			TotalSpent:       lu.TotalSpent,
			Source:           "local",
			CreatedAt:        &createdAt,
		}
	}

	// The remote store may be down; the admin list then degrades to the
	// local view instead of failing outright.
	remoteUsers, err := s.sheetsClient.GetUsers(ctx)
	if err != nil {
		log.Errorf("admin users: remote fetch failed, serving local only: %v", err)
		return sorted(merged), nil
	}

	for _, ru := range remoteUsers {
		email := strings.ToLower(ru.Email)
		if existing, ok := merged[email]; ok {
			// Remote precedence on conflict
			existing.Name = ru.Name
			existing.Credits = ru.Credits
			existing.Status = ru.Status
			existing.SubscriptionTier = ru.SubscriptionTier
			existing.Source = "both"
			continue
		}
		merged[email] = &domain.AdminUser{
			Email:            email,
			Name:             ru.Name,
			Credits:          ru.Credits,
			Status:           ru.Status,
			SubscriptionTier: ru.SubscriptionTier,
			Source:           "remote",
		}
	}

	return sorted(merged), nil
}

func (s *adminService) ExportUsersCSV(ctx context.Context) ([]byte, error) {
	users, err := s.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"email", "name", "credits", "status", "tier", "total_spent", "source"}); err != nil {
		return nil, err
	}
	for _, u := range users {
		record := []string{
			u.Email,
			u.Name,
			fmt.Sprintf("%d", u.Credits),
			u.Status,
			u.SubscriptionTier,
			fmt.Sprintf("%.2f", u.TotalSpent),
			u.Source,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *adminService) SyncStores(ctx context.Context) (*domain.SyncReport, error) {
	return s.syncer.Reconcile(ctx)
}

func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if err := s.sheetsClient.DeleteUser(ctx, u.Email); err != nil {
		log.Errorf("admin delete: remote delete failed for %s: %v", u.Email, err)
	}
	return nil
}

func sorted(merged map[string]*domain.AdminUser) []*domain.AdminUser {
	users := make([]*domain.AdminUser, 0, len(merged))
	for _, u := range merged {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users
}
