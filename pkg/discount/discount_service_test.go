package discount

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/pkg/filedb"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiscountService(t *testing.T) (DiscountService, DiscountRepository) {
	t.Helper()
	store, err := filedb.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	repo := NewDiscountRepository(store)
	return NewDiscountService(repo), repo
}

func seedCode(t *testing.T, repo DiscountRepository, dc *entities.DiscountCode) {
	t.Helper()
	if dc.ID == uuid.Nil {
		dc.ID = uuid.New()
	}
	now := time.Now()
	dc.CreatedAt = now
	dc.UpdatedAt = now
	require.NoError(t, repo.CreateDiscountCode(context.Background(), dc))
}

func TestQuoteMath(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		value  float64
		amount float64
		want   float64
	}{
		{name: "percentage", kind: domain.DiscountKindPercentage, value: 20, amount: 50000, want: 40000},
		{name: "fixed", kind: domain.DiscountKindFixed, value: 10000, amount: 25000, want: 15000},
		{name: "fixed larger than amount floors at zero", kind: domain.DiscountKindFixed, value: 30000, amount: 25000, want: 0},
		{name: "full percentage", kind: domain.DiscountKindPercentage, value: 100, amount: 25000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestDiscountService(t)
			seedCode(t, repo, &entities.DiscountCode{
				Code:      "LAUNCH",
				Kind:      tt.kind,
				Value:     tt.value,
				IsActive:  true,
				ExpiresAt: time.Now().Add(24 * time.Hour),
			})

			quote, err := svc.Quote(context.Background(), "launch", tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, quote.DiscountedTotal)
			assert.Equal(t, tt.amount, quote.OriginalAmount)
		})
	}
}

func TestQuoteDoesNotConsumeUsage(t *testing.T) {
	svc, repo := newTestDiscountService(t)
	seedCode(t, repo, &entities.DiscountCode{
		Code:      "ONCE",
		Kind:      domain.DiscountKindPercentage,
		Value:     10,
		MaxUses:   1,
		IsActive:  true,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	for i := 0; i < 3; i++ {
		_, err := svc.Quote(context.Background(), "ONCE", 10000)
		require.NoError(t, err)
	}

	dc, err := repo.GetDiscountCode(context.Background(), "ONCE")
	require.NoError(t, err)
	assert.Equal(t, 0, dc.UsageCount)
}

// A single-use code applied twice must fail the second time.
func TestApplyRespectsMaxUses(t *testing.T) {
	svc, repo := newTestDiscountService(t)
	seedCode(t, repo, &entities.DiscountCode{
		Code:      "ONCE",
		Kind:      domain.DiscountKindFixed,
		Value:     5000,
		MaxUses:   1,
		IsActive:  true,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	total, err := svc.Apply(context.Background(), "ONCE", 25000)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, total)

	_, err = svc.Apply(context.Background(), "ONCE", 25000)
	require.ErrorIs(t, err, domain.ErrDiscountExhausted)
}

func TestApplyRejections(t *testing.T) {
	tests := []struct {
		name    string
		code    *entities.DiscountCode
		lookup  string
		wantErr error
	}{
		{
			name: "expired",
			code: &entities.DiscountCode{
				Code:      "OLD",
				Kind:      domain.DiscountKindPercentage,
				Value:     10,
				IsActive:  true,
				ExpiresAt: time.Now().Add(-time.Hour),
			},
			lookup:  "OLD",
			wantErr: domain.ErrDiscountExpired,
		},
		{
			name: "inactive",
			code: &entities.DiscountCode{
				Code:      "PAUSED",
				Kind:      domain.DiscountKindPercentage,
				Value:     10,
				IsActive:  false,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			lookup:  "PAUSED",
			wantErr: domain.ErrDiscountInactive,
		},
		{
			name: "unknown code",
			code: &entities.DiscountCode{
				Code:      "REAL",
				Kind:      domain.DiscountKindPercentage,
				Value:     10,
				IsActive:  true,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			lookup:  "NOPE",
			wantErr: domain.ErrDiscountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestDiscountService(t)
			seedCode(t, repo, tt.code)

			_, err := svc.Apply(context.Background(), tt.lookup, 25000)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCodesAreCaseInsensitiveOnLookup(t *testing.T) {
	svc, repo := newTestDiscountService(t)
	seedCode(t, repo, &entities.DiscountCode{
		Code:      "summer20",
		Kind:      domain.DiscountKindPercentage,
		Value:     20,
		IsActive:  true,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	quote, err := svc.Quote(context.Background(), "Summer20", 10000)
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", quote.Code)
}
