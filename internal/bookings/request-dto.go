package bookings

import "github.com/google/uuid"

// AdmitBookingRequest is the request body for booking an event. All
// fields are optional: a free event needs none of them, a paid event
// needs either a verified payment intent or a payment method plus
// receipt.
type AdmitBookingRequest struct {
	PaymentIntentID string `json:"payment_intent_id,omitempty" binding:"omitempty,max=255"`
	PromoCode       string `json:"promo_code,omitempty" binding:"omitempty,max=64"`
	PaymentMethod   string `json:"payment_method,omitempty" binding:"omitempty,max=50"`
	ReceiptURL      string `json:"receipt_url,omitempty" binding:"omitempty,url,max=2048"`
}

// BookingListQuery holds pagination and filter parameters for booking
// list endpoints.
type BookingListQuery struct {
	Page         int        `form:"page" binding:"omitempty,min=1"`
	Limit        int        `form:"limit" binding:"omitempty,min=1,max=100"`
	EventID      *uuid.UUID `form:"event_id" binding:"omitempty"`
	PaymentState string     `form:"payment_state" binding:"omitempty,oneof=UNPAID PENDING_VERIFICATION CONFIRMED"`
}
