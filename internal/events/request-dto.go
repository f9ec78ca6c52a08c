package events

import "time"

type CreateEventRequest struct {
	Name            string    `json:"name" binding:"required,min=3,max=255"`
	Slug            string    `json:"slug" binding:"required,min=3,max=255"`
	Description     string    `json:"description" binding:"max=2000"`
	Venue           string    `json:"venue" binding:"max=255"`
	DateTime        time.Time `json:"date_time" binding:"required"`
	Capacity        *int      `json:"capacity" binding:"omitempty,min=1,max=100000"`
	IsFree          bool      `json:"is_free"`
	Price           int64     `json:"price" binding:"min=0"`
	Currency        string    `json:"currency" binding:"omitempty,len=3"`
	WaitlistEnabled bool      `json:"waitlist_enabled"`
}

type EventListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Venue    string `form:"venue"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published cancelled completed"`
}
