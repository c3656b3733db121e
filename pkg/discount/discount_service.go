package discount

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"context"
)

type (
	DiscountService interface {
		Quote(ctx context.Context, code string, amount float64) (*domain.DiscountQuote, error)
		// Apply redeems the code and returns the discounted amount.
		Apply(ctx context.Context, code string, amount float64) (float64, error)
	}

	discountService struct {
		discountRepository DiscountRepository
	}
)

func NewDiscountService(discountRepository DiscountRepository) DiscountService {
	return &discountService{
		discountRepository: discountRepository,
	}
}

func (s *discountService) Quote(ctx context.Context, code string, amount float64) (*domain.DiscountQuote, error) {
	dc, err := s.discountRepository.GetDiscountCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := validate(dc); err != nil {
		return nil, err
	}

	return &domain.DiscountQuote{
		Code:            dc.Code,
		Kind:            dc.Kind,
		Value:           dc.Value,
		OriginalAmount:  amount,
		DiscountedTotal: discountedTotal(dc, amount),
		ExpiresAt:       dc.ExpiresAt,
	}, nil
}

func (s *discountService) Apply(ctx context.Context, code string, amount float64) (float64, error) {
	dc, err := s.discountRepository.RedeemDiscountCode(ctx, code)
	if err != nil {
		return 0, err
	}
	return discountedTotal(dc, amount), nil
}

func discountedTotal(dc *entities.DiscountCode, amount float64) float64 {
	var total float64
	switch dc.Kind {
	case domain.DiscountKindPercentage:
		total = amount - amount*dc.Value/100
	case domain.DiscountKindFixed:
		total = amount - dc.Value
	default:
		total = amount
	}
	if total < 0 {
		total = 0
	}
	return total
}
