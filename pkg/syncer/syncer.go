package syncer

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/pkg/sheets"
	"Storybrush-Backend/pkg/user"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type (
	// Syncer is the explicit reconciliation job between the two stores.
	// The local store is the source of truth: reconciliation pushes local
	// balances to the remote store and creates missing remote rows. It
	// never writes back to the local store.
	Syncer interface {
		Start(ctx context.Context)
		Reconcile(ctx context.Context) (*domain.SyncReport, error)
	}

	syncer struct {
		userRepository user.UserRepository
		sheetsClient   sheets.SheetsClient
		interval       time.Duration
	}
)

func NewSyncer(userRepository user.UserRepository, sheetsClient sheets.SheetsClient, interval time.Duration) Syncer {
	return &syncer{
		userRepository: userRepository,
		sheetsClient:   sheetsClient,
		interval:       interval,
	}
}

func (s *syncer) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if report, err := s.Reconcile(ctx); err != nil {
					log.Errorf("store sync: reconcile failed: %v", err)
				} else if report.CreatedRemote > 0 || report.AdjustedRemote > 0 || report.Failed > 0 {
					log.Infof("store sync: checked=%d created=%d adjusted=%d failed=%d",
						report.Checked, report.CreatedRemote, report.AdjustedRemote, report.Failed)
				}
			}
		}
	}()
}

func (s *syncer) Reconcile(ctx context.Context) (*domain.SyncReport, error) {
	remoteUsers, err := s.sheetsClient.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteStoreUnavailable, err)
	}

	localUsers, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	remoteByEmail := make(map[string]*sheets.RemoteUser, len(remoteUsers))
	for _, ru := range remoteUsers {
		remoteByEmail[strings.ToLower(ru.Email)] = ru
	}

	report := &domain.SyncReport{RanAt: time.Now()}
	for _, lu := range localUsers {
		report.Checked++
		email := strings.ToLower(lu.Email)

		ru, ok := remoteByEmail[email]
		if !ok {
			if err := s.sheetsClient.CreateUser(ctx, &sheets.RemoteUser{
				Email:            email,
				Name:             lu.Name,
				Credits:          lu.Credits,
				Status:           lu.Status,
				SubscriptionTier: lu.SubscriptionTier,
			}); err != nil {
				log.Errorf("store sync: remote create failed for %s: %v", email, err)
				report.Failed++
				continue
			}
			report.CreatedRemote++
			continue
		}

		if ru.Credits == lu.Credits {
			continue
		}

		// Local wins: push the delta so the remote balance converges.
		delta := lu.Credits - ru.Credits
		if delta > 0 {
			_, err = s.sheetsClient.AddCredits(ctx, email, delta)
		} else {
			_, err = s.sheetsClient.DeductCredits(ctx, email, -delta)
		}
		if err != nil {
			log.Errorf("store sync: remote adjust failed for %s: %v", email, err)
			report.Failed++
			continue
		}
		report.AdjustedRemote++
	}

	return report, nil
}
