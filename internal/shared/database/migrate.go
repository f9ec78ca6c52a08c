package database

import (
	"ticketly/internal/bookings"
	"ticketly/internal/events"
	"ticketly/internal/promos"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
	"ticketly/internal/waitlist"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&promos.PromoCode{},
		&bookings.Booking{},
		&bookings.Transaction{},
		&bookings.Payment{},
		&tickets.Ticket{},
		&waitlist.WaitlistEntry{},
	)
}
