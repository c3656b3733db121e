package credit

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/pkg/sheets"
	"Storybrush-Backend/pkg/user"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

type (
	// CreditService is the credit ledger. The local store is the source of
	// truth; every mutation is mirrored to the remote store best-effort.
	// A remote failure is logged and left for the reconciler, never rolled
	// back into the user-facing result.
	//
	// A local miss is terminal: user ids exist only in the local store and
	// remote rows are keyed by email alone, so an id the local store does
	// not know cannot match any remote row.
	CreditService interface {
		GetCreditPackages(ctx context.Context) []*domain.CreditPackage
		GetUserCredits(ctx context.Context, userID string) (*domain.UserCredits, error)
		Deduct(ctx context.Context, userID string, amount int, reason string) (int, error)
		Add(ctx context.Context, userID string, amount int, reason string) (int, error)
	}

	creditService struct {
		userRepository user.UserRepository
		sheetsClient   sheets.SheetsClient
	}
)

func NewCreditService(userRepository user.UserRepository, sheetsClient sheets.SheetsClient) CreditService {
	return &creditService{
		userRepository: userRepository,
		sheetsClient:   sheetsClient,
	}
}

func (s *creditService) GetCreditPackages(ctx context.Context) []*domain.CreditPackage {
	return domain.CreditPackages
}

func (s *creditService) GetUserCredits(ctx context.Context, userID string) (*domain.UserCredits, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &domain.UserCredits{Balance: u.Credits}

	// The remote balance is informational only; an unreachable remote
	// store must not break the balance read.
	remoteUsers, err := s.sheetsClient.GetUsers(ctx)
	if err != nil {
		log.Errorf("credit ledger: remote balance read failed for user=%s: %v", userID, err)
		return result, nil
	}
	for _, ru := range remoteUsers {
		// Local emails are stored lowercase; sheet rows may not be
		if strings.ToLower(ru.Email) == u.Email {
			result.RemoteBalance = ru.Credits
			result.RemoteSynced = ru.Credits == u.Credits
			break
		}
	}

	return result, nil
}

func (s *creditService) Deduct(ctx context.Context, userID string, amount int, reason string) (int, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	// Check and debit happen atomically inside the store lock; a failed
	// check mutates nothing in either store.
	balance, err := s.userRepository.DebitCredits(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientCredits) {
			log.Infof("credit ledger: debit refused user=%s amount=%d reason=%s: insufficient credits", userID, amount, reason)
		}
		return 0, err
	}
	log.Infof("credit ledger: local debit ok user=%s amount=%d balance=%d reason=%s", userID, amount, balance, reason)

	remoteBalance, err := s.sheetsClient.DeductCredits(ctx, u.Email, amount)
	if err != nil {
		log.Errorf("credit ledger: remote debit failed user=%s amount=%d: %v", userID, amount, err)
		return balance, nil
	}
	log.Infof("credit ledger: remote debit ok user=%s amount=%d balance=%d", userID, amount, remoteBalance)

	return remoteBalance, nil
}

func (s *creditService) Add(ctx context.Context, userID string, amount int, reason string) (int, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	balance, err := s.userRepository.AddCredits(ctx, userID, amount)
	if err != nil {
		return 0, err
	}
	log.Infof("credit ledger: local credit ok user=%s amount=%d balance=%d reason=%s", userID, amount, balance, reason)

	remoteBalance, err := s.sheetsClient.AddCredits(ctx, u.Email, amount)
	if err != nil {
		log.Errorf("credit ledger: remote credit failed user=%s amount=%d: %v", userID, amount, err)
		return balance, nil
	}
	log.Infof("credit ledger: remote credit ok user=%s amount=%d balance=%d", userID, amount, remoteBalance)

	return remoteBalance, nil
}
