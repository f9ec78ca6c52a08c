package bookings

import (
	"time"

	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/users"
)

// Booking is the admission record. Email is denormalized from the user
// so that duplicate detection still works for legacy rows whose user
// account was removed.
type Booking struct {
	ID            uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID       uuid.UUID    `json:"event_id" gorm:"type:uuid;not null;index:idx_bookings_event"`
	UserID        uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index:idx_bookings_user"`
	Email         string       `json:"email" gorm:"not null;size:255;index:idx_bookings_email"`
	PaymentState  PaymentState `json:"payment_state" gorm:"type:varchar(30);not null"`
	PaymentMethod string       `json:"payment_method,omitempty" gorm:"size:50"`
	ReceiptURL    string       `json:"receipt_url,omitempty" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	User  *users.User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Event *events.Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// Transaction is the financial breakdown for a paid booking. All
// amounts are integer minor currency units. Invariants: Amount =
// GrossAmount - DiscountAmount and PlatformFee + OrganizerRevenue =
// Amount.
type Transaction struct {
	ID                uuid.UUID         `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID         uuid.UUID         `json:"booking_id" gorm:"type:uuid;not null;index"`
	EventID           uuid.UUID         `json:"event_id" gorm:"type:uuid;not null;index"`
	UserID            uuid.UUID         `json:"user_id" gorm:"type:uuid;not null"`
	GrossAmount       int64             `json:"gross_amount" gorm:"not null;check:gross_amount >= 0"`
	DiscountAmount    int64             `json:"discount_amount" gorm:"not null;default:0"`
	Amount            int64             `json:"amount" gorm:"not null"`
	PlatformFee       int64             `json:"platform_fee" gorm:"not null"`
	OrganizerRevenue  int64             `json:"organizer_revenue" gorm:"not null"`
	Currency          string            `json:"currency" gorm:"type:varchar(3);not null"`
	Status            TransactionStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaymentMethod     string            `json:"payment_method,omitempty" gorm:"size:50"`
	ExternalPaymentID *string           `json:"external_payment_id,omitempty" gorm:"size:255"`
	PromoID           *uuid.UUID        `json:"promo_id,omitempty" gorm:"type:uuid"`
	CreatedAt         time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// Payment records the money movement for a booking. Created best-effort
// after the booking is durable.
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;index"`
	EventID       uuid.UUID     `json:"event_id" gorm:"type:uuid;not null"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null"`
	Amount        int64         `json:"amount" gorm:"not null;check:amount >= 0"`
	Currency      string        `json:"currency" gorm:"type:varchar(3);not null"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaymentMethod string        `json:"payment_method,omitempty" gorm:"size:50"`
	ReceiptURL    string        `json:"receipt_url,omitempty" gorm:"type:text"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
