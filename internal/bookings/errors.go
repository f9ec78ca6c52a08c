package bookings

import (
	"errors"
	"net/http"
)

// Admission errors surfaced to the caller. Everything downstream of a
// durable booking write is advisory and never produces one of these.
var (
	ErrEventNotFound           = errors.New("event not found")
	ErrEventNotBookable        = errors.New("event is not open for booking")
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRequired           = errors.New("user email is required for booking")
	ErrDuplicateBooking        = errors.New("a booking already exists for this event")
	ErrSoldOut                 = errors.New("event is sold out")
	ErrPaymentEvidenceRequired = errors.New("payment reference or payment method with receipt is required")
	ErrPaymentNotCompleted     = errors.New("external payment is not settled")
	ErrPersistenceFailure      = errors.New("failed to persist booking")
)

// HTTPStatus maps an admission error to its response status class.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateBooking):
		return http.StatusConflict
	case errors.Is(err, ErrSoldOut):
		return http.StatusConflict
	case errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrEventNotBookable),
		errors.Is(err, ErrPaymentEvidenceRequired),
		errors.Is(err, ErrPaymentNotCompleted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
