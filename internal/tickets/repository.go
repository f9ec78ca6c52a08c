package tickets

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrAlreadyIssued  = errors.New("ticket already issued for booking")
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error)
	GetByNumber(ctx context.Context, ticketNumber string) (*Ticket, error)
	UpdateStatus(ctx context.Context, ticketID uuid.UUID, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	err := r.db.WithContext(ctx).Create(ticket).Error
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAlreadyIssued
		}
		return err
	}
	return nil
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByNumber(ctx context.Context, ticketNumber string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("ticket_number = ?", ticketNumber).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) UpdateStatus(ctx context.Context, ticketID uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", ticketID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key")
}
