package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"ticketly/internal/events"
	"ticketly/internal/promos"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/users"
)

type Seeder struct {
	db *database.DB

	organizerID uuid.UUID
}

func main() {
	fmt.Println("Starting Ticketly database seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.GetPostgreSQL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"payments",
		"transactions",
		"bookings",
		"waitlist_entries",
		"promo_codes",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return err
	}

	for _, table := range tables {
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seedEvents(); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	if err := s.seedPromoCodes(); err != nil {
		return fmt.Errorf("failed to seed promo codes: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []users.User{
		{FirstName: "Ada", LastName: "Admin", Email: "admin@ticketly.io", Password: string(hash), Role: users.RoleAdmin},
		{FirstName: "Olive", LastName: "Organizer", Email: "organizer@ticketly.io", Password: string(hash), Role: users.RoleOrganizer},
		{FirstName: "Uma", LastName: "User", Email: "user@ticketly.io", Password: string(hash), Role: users.RoleUser},
		{FirstName: "Umar", LastName: "User", Email: "user2@ticketly.io", Password: string(hash), Role: users.RoleUser},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return err
		}
		if seedUsers[i].Role == users.RoleOrganizer {
			s.organizerID = seedUsers[i].ID
		}
	}
	fmt.Printf("  seeded %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) seedEvents() error {
	smallCapacity := 50
	tinyCapacity := 1

	seedEvents := []events.Event{
		{
			Name:             "Ticketly Launch Conference",
			Slug:             "launch-conference",
			Description:      "Full-day conference with keynotes and workshops.",
			Venue:            "Harbor Convention Center",
			DateTime:         time.Now().AddDate(0, 1, 0),
			Capacity:         &smallCapacity,
			AvailableTickets: &smallCapacity,
			IsFree:           false,
			Price:            10000,
			Currency:         "USD",
			WaitlistEnabled:  true,
			Status:           events.StatusPublished,
			OrganizerID:      s.organizerID,
		},
		{
			Name:            "Community Meetup",
			Slug:            "community-meetup",
			Description:     "Free monthly meetup, open to everyone.",
			Venue:           "Downtown Hub",
			DateTime:        time.Now().AddDate(0, 0, 14),
			IsFree:          true,
			Currency:        "USD",
			WaitlistEnabled: false,
			Status:          events.StatusPublished,
			OrganizerID:     s.organizerID,
		},
		{
			Name:             "Exclusive Dinner",
			Slug:             "exclusive-dinner",
			Description:      "One seat only. First come, first served.",
			Venue:            "Rooftop Restaurant",
			DateTime:         time.Now().AddDate(0, 0, 30),
			Capacity:         &tinyCapacity,
			AvailableTickets: &tinyCapacity,
			IsFree:           false,
			Price:            25000,
			Currency:         "USD",
			WaitlistEnabled:  true,
			Status:           events.StatusPublished,
			OrganizerID:      s.organizerID,
		},
	}

	for i := range seedEvents {
		if err := s.db.PostgreSQL.Create(&seedEvents[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  seeded %d events\n", len(seedEvents))
	return nil
}

func (s *Seeder) seedPromoCodes() error {
	maxDiscount := int64(500)

	seedPromos := []promos.PromoCode{
		{Code: "SAVE10", DiscountType: promos.DiscountTypePercentage, DiscountValue: 10, MaxDiscountAmount: &maxDiscount},
		{Code: "WELCOME", DiscountType: promos.DiscountTypeFixed, DiscountValue: 1000},
		{Code: "HALFOFF", DiscountType: promos.DiscountTypePercentage, DiscountValue: 50},
	}

	for i := range seedPromos {
		if err := s.db.PostgreSQL.Create(&seedPromos[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  seeded %d promo codes\n", len(seedPromos))
	return nil
}
