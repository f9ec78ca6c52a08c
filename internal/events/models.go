package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a bookable event. Capacity is optional: a nil Capacity means
// unlimited admission and AvailableTickets is nil alongside it. Price is in
// integer minor currency units and is meaningful only when IsFree is false.
type Event struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name             string    `json:"name" gorm:"not null;size:255"`
	Slug             string    `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Description      string    `json:"description" gorm:"type:text"`
	Venue            string    `json:"venue" gorm:"size:255"`
	DateTime         time.Time `json:"date_time" gorm:"not null"`
	Capacity         *int      `json:"capacity,omitempty"`
	AvailableTickets *int      `json:"available_tickets,omitempty"`
	IsFree           bool      `json:"is_free" gorm:"not null;default:false"`
	Price            int64     `json:"price" gorm:"not null;default:0;check:price >= 0"`
	Currency         string    `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	WaitlistEnabled  bool      `json:"waitlist_enabled" gorm:"not null;default:false"`
	Status           Status    `json:"status" gorm:"type:varchar(20);default:'draft'"`

	OrganizerID uuid.UUID `json:"organizer_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// HasCapacity reports whether the event has a finite capacity configured
func (e *Event) HasCapacity() bool {
	return e.Capacity != nil
}

// IsBookable reports whether admissions may be attempted against the event
func (e *Event) IsBookable() bool {
	return e.Status == StatusPublished
}

// ToResponse converts an Event to its public representation
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:               e.ID.String(),
		Name:             e.Name,
		Slug:             e.Slug,
		Description:      e.Description,
		Venue:            e.Venue,
		DateTime:         e.DateTime,
		Capacity:         e.Capacity,
		AvailableTickets: e.AvailableTickets,
		IsFree:           e.IsFree,
		Price:            e.Price,
		Currency:         e.Currency,
		WaitlistEnabled:  e.WaitlistEnabled,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
