package promos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byCode     map[string]*PromoCode
	increments map[uuid.UUID]int
}

func newFakeRepo(codes ...*PromoCode) *fakeRepo {
	r := &fakeRepo{
		byCode:     make(map[string]*PromoCode),
		increments: make(map[uuid.UUID]int),
	}
	for _, c := range codes {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.byCode[c.Code] = c
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, promo *PromoCode) error {
	promo.ID = uuid.New()
	r.byCode[promo.Code] = promo
	return nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*PromoCode, error) {
	promo, ok := r.byCode[code]
	if !ok {
		return nil, ErrPromoNotFound
	}
	copied := *promo
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context) ([]PromoCode, error) {
	var list []PromoCode
	for _, p := range r.byCode {
		list = append(list, *p)
	}
	return list, nil
}

func (r *fakeRepo) IncrementUsage(_ context.Context, promoID uuid.UUID) error {
	r.increments[promoID]++
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestResolve_PercentageCappedByMaxDiscount(t *testing.T) {
	promo := &PromoCode{
		Code:              "SAVE10",
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     10,
		MaxDiscountAmount: int64Ptr(500),
	}
	svc := NewService(newFakeRepo(promo))

	result, err := svc.Resolve(context.Background(), "SAVE10", 10000)

	require.NoError(t, err)
	// 10% of 10000 is 1000, capped at 500
	assert.Equal(t, int64(500), result.DiscountAmount)
}

func TestResolve_PercentageUncapped(t *testing.T) {
	promo := &PromoCode{
		Code:          "SAVE25",
		DiscountType:  DiscountTypePercentage,
		DiscountValue: 25,
	}
	svc := NewService(newFakeRepo(promo))

	result, err := svc.Resolve(context.Background(), "SAVE25", 10000)

	require.NoError(t, err)
	assert.Equal(t, int64(2500), result.DiscountAmount)
}

func TestResolve_FixedClampedToGross(t *testing.T) {
	promo := &PromoCode{
		Code:          "FLAT2000",
		DiscountType:  DiscountTypeFixed,
		DiscountValue: 2000,
	}
	svc := NewService(newFakeRepo(promo))

	result, err := svc.Resolve(context.Background(), "FLAT2000", 1500)

	require.NoError(t, err)
	assert.Equal(t, int64(1500), result.DiscountAmount)
}

func TestResolve_CodeIsCaseInsensitive(t *testing.T) {
	promo := &PromoCode{
		Code:          "WELCOME",
		DiscountType:  DiscountTypeFixed,
		DiscountValue: 100,
	}
	svc := NewService(newFakeRepo(promo))

	result, err := svc.Resolve(context.Background(), "  welcome ", 1000)

	require.NoError(t, err)
	assert.Equal(t, "WELCOME", result.Code)
	assert.Equal(t, int64(100), result.DiscountAmount)
}

func TestResolve_UnknownCode(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Resolve(context.Background(), "NOPE", 1000)

	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestResolve_RecordsUsage(t *testing.T) {
	promo := &PromoCode{
		ID:            uuid.New(),
		Code:          "TRACKME",
		DiscountType:  DiscountTypeFixed,
		DiscountValue: 50,
	}
	repo := newFakeRepo(promo)
	svc := NewService(repo)

	_, err := svc.Resolve(context.Background(), "TRACKME", 1000)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), "trackme", 1000)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.increments[promo.ID])
}

func TestCreatePromo_RejectsDuplicate(t *testing.T) {
	promo := &PromoCode{
		Code:          "EXISTS",
		DiscountType:  DiscountTypeFixed,
		DiscountValue: 100,
	}
	svc := NewService(newFakeRepo(promo))

	_, err := svc.CreatePromo(context.Background(), CreatePromoRequest{
		Code:          "exists",
		DiscountType:  "fixed",
		DiscountValue: 200,
	})

	assert.ErrorIs(t, err, ErrDuplicateCode)
}
