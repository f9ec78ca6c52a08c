package events

import "time"

type EventResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	Venue            string    `json:"venue"`
	DateTime         time.Time `json:"date_time"`
	Capacity         *int      `json:"capacity,omitempty"`
	AvailableTickets *int      `json:"available_tickets,omitempty"`
	IsFree           bool      `json:"is_free"`
	Price            int64     `json:"price"`
	Currency         string    `json:"currency"`
	WaitlistEnabled  bool      `json:"waitlist_enabled"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
