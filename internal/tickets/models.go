package tickets

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusTransferred Status = "transferred"
	StatusCancelled   Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusTransferred, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Ticket is the admission artifact for a booking. The unique index on
// BookingID guarantees at most one ticket per booking.
type Ticket struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID    uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex"`
	TicketNumber string    `json:"ticket_number" gorm:"not null;size:32;uniqueIndex"`
	QRPayload    string    `json:"qr_payload" gorm:"not null;type:text"`
	Status       Status    `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	IssuedAt     time.Time `json:"issued_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}
