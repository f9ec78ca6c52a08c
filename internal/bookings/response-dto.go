package bookings

import (
	"time"

	"github.com/google/uuid"

	"ticketly/internal/tickets"
)

type TicketResponse struct {
	TicketNumber string    `json:"ticket_number"`
	QRPayload    string    `json:"qr_payload"`
	Status       string    `json:"status"`
	IssuedAt     time.Time `json:"issued_at"`
}

type AdmissionResponse struct {
	Outcome          string          `json:"outcome"`
	BookingID        *uuid.UUID      `json:"booking_id,omitempty"`
	PaymentState     string          `json:"payment_state,omitempty"`
	Ticket           *TicketResponse `json:"ticket,omitempty"`
	WaitlistPosition int             `json:"waitlist_position,omitempty"`
	Message          string          `json:"message"`
}

func (r *AdmissionResult) ToResponse() AdmissionResponse {
	response := AdmissionResponse{
		Outcome:          string(r.Outcome),
		PaymentState:     r.PaymentState.String(),
		WaitlistPosition: r.WaitlistPosition,
		Message:          r.Message,
	}
	if r.Booking != nil {
		response.BookingID = &r.Booking.ID
	}
	if r.Ticket != nil {
		response.Ticket = ticketToResponse(r.Ticket)
	}
	return response
}

func ticketToResponse(ticket *tickets.Ticket) *TicketResponse {
	return &TicketResponse{
		TicketNumber: ticket.TicketNumber,
		QRPayload:    ticket.QRPayload,
		Status:       ticket.Status.String(),
		IssuedAt:     ticket.IssuedAt,
	}
}

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	EventID       uuid.UUID `json:"event_id"`
	EventName     string    `json:"event_name,omitempty"`
	EventSlug     string    `json:"event_slug,omitempty"`
	PaymentState  string    `json:"payment_state"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() BookingResponse {
	response := BookingResponse{
		ID:            b.ID,
		EventID:       b.EventID,
		PaymentState:  b.PaymentState.String(),
		PaymentMethod: b.PaymentMethod,
		ReceiptURL:    b.ReceiptURL,
		CreatedAt:     b.CreatedAt,
	}
	if b.Event != nil {
		response.EventName = b.Event.Name
		response.EventSlug = b.Event.Slug
	}
	return response
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
