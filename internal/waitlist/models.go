package waitlist

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistEntry is a queue position for an event that sold out. Positions
// are 1-based, assigned in insertion order per event, and never reused.
type WaitlistEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_waitlist_event_email"`
	Email     string    `json:"email" gorm:"not null;size:255;uniqueIndex:idx_waitlist_event_email"`
	Position  int       `json:"position" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for WaitlistEntry
func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
