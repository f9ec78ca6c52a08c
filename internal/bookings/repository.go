package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ticketly/internal/events"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	// Admission writes
	CreateBooking(ctx context.Context, booking *Booking) error
	CreateAdmitted(ctx context.Context, booking *Booking) error
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	CreatePayment(ctx context.Context, payment *Payment) error

	// Admission reads
	CountCapacityHolding(ctx context.Context, eventID uuid.UUID) (int64, error)
	FindExistingForUserOrEmail(ctx context.Context, eventID, userID uuid.UUID, email string) (*Booking, error)

	// Lookups
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	GetTransactionByBookingID(ctx context.Context, bookingID uuid.UUID) (*Transaction, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// CreateAdmitted inserts a capacity-holding booking for a finite-capacity
// event. The event row is locked for the duration of the transaction so
// the recount, the insert and the available_tickets decrement are atomic
// with respect to concurrent admissions. Returns ErrSoldOut when the
// event filled up between the caller's capacity check and the lock.
func (r *repository) CreateAdmitted(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event admissionEvent
		err := lockEvent(tx, booking.EventID, &event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to lock event: %w", err)
		}

		if event.Status != events.StatusPublished.String() {
			return ErrEventNotBookable
		}

		if event.Capacity != nil {
			var held int64
			err = tx.Model(&Booking{}).
				Where("event_id = ? AND payment_state IN ?", booking.EventID, CapacityHoldingStates).
				Count(&held).Error
			if err != nil {
				return fmt.Errorf("failed to count bookings: %w", err)
			}
			if held >= int64(*event.Capacity) {
				return ErrSoldOut
			}
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return tx.Table("events").
			Where("id = ? AND available_tickets IS NOT NULL AND available_tickets > 0", booking.EventID).
			Update("available_tickets", gorm.Expr("available_tickets - 1")).Error
	})
}

// admissionEvent is the minimal event projection read under lock.
type admissionEvent struct {
	ID       uuid.UUID `gorm:"column:id"`
	Capacity *int      `gorm:"column:capacity"`
	Status   string    `gorm:"column:status"`
}

// lockEvent issues the FOR UPDATE select that serializes concurrent
// admissions on the event row.
func lockEvent(tx *gorm.DB, eventID uuid.UUID, dest *admissionEvent) *gorm.DB {
	return tx.Table("events").
		Select("id, capacity, status").
		Where("id = ?", eventID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(dest)
}

func (r *repository) CreateTransaction(ctx context.Context, transaction *Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *repository) CreatePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) CountCapacityHolding(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("event_id = ? AND payment_state IN ?", eventID, CapacityHoldingStates).
		Count(&count).Error
	return count, err
}

// FindExistingForUserOrEmail matches on user id or on the denormalized
// email, to catch legacy bookings whose user account no longer exists.
func (r *repository) FindExistingForUserOrEmail(ctx context.Context, eventID, userID uuid.UUID, email string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND (user_id = ? OR email = ?)", eventID, userID, email).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)
	baseQuery = applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Event").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	baseQuery = applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("User").
		Preload("Event").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) GetTransactionByBookingID(ctx context.Context, bookingID uuid.UUID) (*Transaction, error) {
	var transaction Transaction
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func applyFilters(query *gorm.DB, listQuery BookingListQuery) *gorm.DB {
	if listQuery.EventID != nil {
		query = query.Where("event_id = ?", *listQuery.EventID)
	}
	if listQuery.PaymentState != "" {
		query = query.Where("payment_state = ?", listQuery.PaymentState)
	}
	return query
}
