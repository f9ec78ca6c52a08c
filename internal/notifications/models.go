package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindBookingConfirmed         Kind = "BOOKING_CONFIRMED"
	KindBookingPending           Kind = "BOOKING_PENDING"
	KindBookingWaitlisted        Kind = "BOOKING_WAITLISTED"
	KindOrganizerBookingReceived Kind = "ORGANIZER_BOOKING_RECEIVED"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "PENDING"
	DeliveryStatusSent    DeliveryStatus = "SENT"
	DeliveryStatusFailed  DeliveryStatus = "FAILED"
)

// Notification is the message published to the notification topic. The
// email worker consumes it and renders the user-facing message.
type Notification struct {
	ID       uuid.UUID `json:"id"`
	Kind     Kind      `json:"kind"`
	Priority Priority  `json:"priority"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Link     string                 `json:"link,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	EventID   *uuid.UUID `json:"event_id,omitempty"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`

	Status     DeliveryStatus `json:"status"`
	RetryCount int            `json:"retry_count"`
	MaxRetries int            `json:"max_retries"`
	LastError  *string        `json:"last_error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	SentAt     *time.Time     `json:"sent_at,omitempty"`
}

type Builder struct {
	notification *Notification
}

func NewBuilder() *Builder {
	return &Builder{
		notification: &Notification{
			ID:         uuid.New(),
			Status:     DeliveryStatusPending,
			CreatedAt:  time.Now(),
			MaxRetries: 3,
			Metadata:   make(map[string]interface{}),
		},
	}
}

func (b *Builder) WithKind(kind Kind) *Builder {
	b.notification.Kind = kind
	b.notification.Priority = defaultPriority(kind)
	return b
}

func (b *Builder) WithRecipient(userID uuid.UUID, email, name string) *Builder {
	b.notification.RecipientID = userID
	b.notification.RecipientEmail = email
	b.notification.RecipientName = name
	return b
}

func (b *Builder) WithContent(title, message string) *Builder {
	b.notification.Title = title
	b.notification.Message = message
	return b
}

func (b *Builder) WithLink(link string) *Builder {
	b.notification.Link = link
	return b
}

func (b *Builder) WithMetadata(metadata map[string]interface{}) *Builder {
	b.notification.Metadata = metadata
	return b
}

func (b *Builder) WithEventContext(eventID uuid.UUID) *Builder {
	b.notification.EventID = &eventID
	return b
}

func (b *Builder) WithBookingContext(bookingID uuid.UUID) *Builder {
	b.notification.BookingID = &bookingID
	return b
}

func (b *Builder) Build() *Notification {
	return b.notification
}

func defaultPriority(kind Kind) Priority {
	switch kind {
	case KindBookingConfirmed, KindBookingPending:
		return PriorityHigh
	case KindBookingWaitlisted:
		return PriorityMedium
	case KindOrganizerBookingReceived:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// GetPartitionKey routes all of a recipient's notifications to one
// partition so they are delivered in order.
func (n *Notification) GetPartitionKey() string {
	return n.RecipientID.String()
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) ShouldRetry() bool {
	return n.RetryCount < n.MaxRetries && n.Status == DeliveryStatusFailed
}

func (n *Notification) MarkSent() {
	now := time.Now()
	n.Status = DeliveryStatusSent
	n.SentAt = &now
}

func (n *Notification) MarkFailed(err error) {
	n.Status = DeliveryStatusFailed
	errorStr := err.Error()
	n.LastError = &errorStr
}
