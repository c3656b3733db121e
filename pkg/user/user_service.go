package user

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/internal/utils/mailing"
	"Storybrush-Backend/pkg/jwt"
	"Storybrush-Backend/pkg/sheets"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserProfile, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.UserProfile, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		sheetsClient   sheets.SheetsClient
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, sheetsClient sheets.SheetsClient) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		sheetsClient:   sheetsClient,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &entities.User{
		ID:               uuid.New(),
		Email:            strings.ToLower(req.Email),
		Name:             req.Name,
		PasswordHash:     string(hash),
		Credits:          domain.REGISTRATION_BONUS_CREDITS,
		Status:           domain.UserStatusActive,
		SubscriptionTier: domain.TierFree,
		Version:          1,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepository.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	// Mirror the new user to the remote store. A failure here only logs;
	// the reconciler creates the missing remote row later.
	if err := s.sheetsClient.CreateUser(ctx, &sheets.RemoteUser{
		Email:            u.Email,
		Name:             u.Name,
		Credits:          u.Credits,
		Status:           u.Status,
		SubscriptionTier: u.SubscriptionTier,
	}); err != nil {
		log.Errorf("user register: remote create failed for %s: %v", u.Email, err)
	}

	s.sendWelcomeEmail(ctx, u)

	return toProfile(u), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	u, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if u.Status == domain.UserStatusSuspended {
		return nil, domain.ErrUserSuspended
	}

	now := time.Now()
	u.LastLoginAt = &now
	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	token := s.jwtService.GenerateTokenUser(u.ID.String(), domain.RoleUser)

	return &domain.LoginResponse{
		Token: token,
		User:  toProfile(u),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserProfile, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(u), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.UserProfile, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return toProfile(u), nil
}

func (s *userService) sendWelcomeEmail(ctx context.Context, u *entities.User) {
	subject := "Welcome to Storybrush!"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account is ready and %d free credits are waiting for you. "+
			"Generate your first coloring page or story today!</p>",
		u.Name, domain.REGISTRATION_BONUS_CREDITS,
	)

	entry := &entities.EmailLog{
		ID:      uuid.New(),
		To:      u.Email,
		Subject: subject,
		Kind:    "Welcome",
		Status:  "Sent",
		SentAt:  time.Now(),
	}
	if err := mailing.SendMail(u.Email, subject, body); err != nil {
		log.Errorf("user register: welcome email failed for %s: %v", u.Email, err)
		entry.Status = "Failed"
		entry.Error = err.Error()
	}
	if err := s.userRepository.AppendEmailLog(ctx, entry); err != nil {
		log.Errorf("user register: email log append failed for %s: %v", u.Email, err)
	}
}

func toProfile(u *entities.User) *domain.UserProfile {
	return &domain.UserProfile{
		ID:               u.ID.String(),
		Email:            u.Email,
		Name:             u.Name,
		Credits:          u.Credits,
		Status:           u.Status,
		SubscriptionTier: u.SubscriptionTier,
		TotalSpent:       u.TotalSpent,
		CreatedAt:        u.CreatedAt,
		LastLoginAt:      u.LastLoginAt,
	}
}
