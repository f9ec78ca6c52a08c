package promos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPromoNotFound = errors.New("promo code not found")

type Repository interface {
	Create(ctx context.Context, promo *PromoCode) error
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	List(ctx context.Context) ([]PromoCode, error)

	// IncrementUsage bumps the redemption counter in a single UPDATE so
	// concurrent redemptions of the same code cannot lose updates.
	IncrementUsage(ctx context.Context, promoID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, promo *PromoCode) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *repository) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	var promo PromoCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return &promo, nil
}

func (r *repository) List(ctx context.Context) ([]PromoCode, error) {
	var list []PromoCode
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) IncrementUsage(ctx context.Context, promoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&PromoCode{}).
		Where("id = ?", promoID).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": time.Now(),
		}).Error
}
