package promos

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateCode = errors.New("promo code already exists")

// Service interface defines the contract for promo code business logic
type Service interface {
	// Resolve looks up a code, computes the discount against the gross
	// amount and records the redemption. ErrPromoNotFound is returned for
	// unknown codes; callers decide whether that is fatal.
	Resolve(ctx context.Context, code string, grossAmount int64) (*DiscountResult, error)

	CreatePromo(ctx context.Context, req CreatePromoRequest) (*PromoCode, error)
	ListPromos(ctx context.Context) ([]PromoCode, error)
}

type service struct {
	repo Repository
}

// NewService creates a new promo service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Resolve(ctx context.Context, code string, grossAmount int64) (*DiscountResult, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrPromoNotFound
	}

	promo, err := s.repo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	discount := computeDiscount(promo, grossAmount)

	// The counter update must not be a read-modify-write; the repository
	// issues a single atomic UPDATE. Whether it lands together with the
	// booking write is not guaranteed and does not need to be.
	if err := s.repo.IncrementUsage(ctx, promo.ID); err != nil {
		return nil, fmt.Errorf("failed to record promo usage: %w", err)
	}

	return &DiscountResult{
		PromoID:        promo.ID,
		Code:           promo.Code,
		DiscountAmount: discount,
	}, nil
}

func (s *service) CreatePromo(ctx context.Context, req CreatePromoRequest) (*PromoCode, error) {
	normalized := NormalizeCode(req.Code)

	if _, err := s.repo.GetByCode(ctx, normalized); err == nil {
		return nil, ErrDuplicateCode
	} else if !errors.Is(err, ErrPromoNotFound) {
		return nil, err
	}

	promo := &PromoCode{
		Code:              normalized,
		DiscountType:      DiscountType(req.DiscountType),
		DiscountValue:     req.DiscountValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	return promo, nil
}

func (s *service) ListPromos(ctx context.Context) ([]PromoCode, error) {
	return s.repo.List(ctx)
}

// NormalizeCode upper-cases and trims a promo code for case-insensitive matching
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// computeDiscount applies the promo against the gross amount. Percentage
// discounts clamp to the optional cap; every discount clamps to the gross
// amount so the payable total never goes negative.
func computeDiscount(promo *PromoCode, grossAmount int64) int64 {
	var discount int64

	switch promo.DiscountType {
	case DiscountTypePercentage:
		discount = grossAmount * promo.DiscountValue / 100
		if promo.MaxDiscountAmount != nil && discount > *promo.MaxDiscountAmount {
			discount = *promo.MaxDiscountAmount
		}
	case DiscountTypeFixed:
		discount = promo.DiscountValue
	}

	if discount > grossAmount {
		discount = grossAmount
	}
	if discount < 0 {
		discount = 0
	}

	return discount
}
