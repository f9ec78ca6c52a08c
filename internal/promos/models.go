package promos

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is valid
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// PromoCode is a redeemable discount code. Codes are stored upper-cased and
// matched case-insensitively. DiscountValue is a whole percentage for
// percentage codes and a minor-unit amount for fixed codes. UsedCount is
// informational: nothing enforces a redemption ceiling.
type PromoCode struct {
	ID                uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code              string       `json:"code" gorm:"uniqueIndex;not null;size:64"`
	DiscountType      DiscountType `json:"discount_type" gorm:"type:varchar(20);not null"`
	DiscountValue     int64        `json:"discount_value" gorm:"not null;check:discount_value >= 0"`
	MaxDiscountAmount *int64       `json:"max_discount_amount,omitempty"`
	UsedCount         int64        `json:"used_count" gorm:"not null;default:0"`
	CreatedAt         time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for PromoCode
func (PromoCode) TableName() string {
	return "promo_codes"
}

// DiscountResult is the outcome of resolving a promo code against a gross amount
type DiscountResult struct {
	PromoID        uuid.UUID `json:"promo_id"`
	Code           string    `json:"code"`
	DiscountAmount int64     `json:"discount_amount"`
}

// CreatePromoRequest represents the admin request to create a promo code
type CreatePromoRequest struct {
	Code              string `json:"code" binding:"required,min=2,max=64"`
	DiscountType      string `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue     int64  `json:"discount_value" binding:"required,min=1"`
	MaxDiscountAmount *int64 `json:"max_discount_amount" binding:"omitempty,min=1"`
}
