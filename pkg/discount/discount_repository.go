package discount

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/pkg/filedb"
	"context"
	"strings"
	"time"
)

type (
	DiscountRepository interface {
		CreateDiscountCode(ctx context.Context, code *entities.DiscountCode) error
		GetDiscountCode(ctx context.Context, code string) (*entities.DiscountCode, error)
		// RedeemDiscountCode validates and increments the usage counter as
		// one step under the store lock, so a maxUses=1 code can never be
		// applied twice.
		RedeemDiscountCode(ctx context.Context, code string) (*entities.DiscountCode, error)
	}

	discountRepository struct {
		store *filedb.Store
	}
)

func NewDiscountRepository(store *filedb.Store) DiscountRepository {
	return &discountRepository{
		store: store,
	}
}

func (r *discountRepository) CreateDiscountCode(ctx context.Context, code *entities.DiscountCode) error {
	return r.store.Update(func(d *filedb.Data) error {
		code.Code = strings.ToUpper(code.Code)
		d.DiscountCodes = append(d.DiscountCodes, code)
		return nil
	})
}

func (r *discountRepository) GetDiscountCode(ctx context.Context, code string) (*entities.DiscountCode, error) {
	var found *entities.DiscountCode
	err := r.store.View(func(d *filedb.Data) error {
		code = strings.ToUpper(code)
		for _, dc := range d.DiscountCodes {
			if dc.Code == code {
				clone := *dc
				found = &clone
				return nil
			}
		}
		return domain.ErrDiscountNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *discountRepository) RedeemDiscountCode(ctx context.Context, code string) (*entities.DiscountCode, error) {
	var redeemed *entities.DiscountCode
	err := r.store.Update(func(d *filedb.Data) error {
		code = strings.ToUpper(code)
		for _, dc := range d.DiscountCodes {
			if dc.Code != code {
				continue
			}
			if err := validate(dc); err != nil {
				return err
			}
			dc.UsageCount++
			dc.UpdatedAt = time.Now()
			clone := *dc
			redeemed = &clone
			return nil
		}
		return domain.ErrDiscountNotFound
	})
	if err != nil {
		return nil, err
	}
	return redeemed, nil
}

func validate(dc *entities.DiscountCode) error {
	if !dc.IsActive {
		return domain.ErrDiscountInactive
	}
	if time.Now().After(dc.ExpiresAt) {
		return domain.ErrDiscountExpired
	}
	if dc.MaxUses > 0 && dc.UsageCount >= dc.MaxUses {
		return domain.ErrDiscountExhausted
	}
	return nil
}
