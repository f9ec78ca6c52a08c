package waitlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEntryNotFound = errors.New("waitlist entry not found")

type Repository interface {
	Append(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error)
	GetByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]WaitlistEntry, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Append assigns the next position for the event and inserts the entry in a
// single transaction. The existing tail entry is locked so concurrent joins
// for the same event serialize and cannot claim the same position.
func (r *repository) Append(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error) {
	var entry *WaitlistEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tail WaitlistEntry
		nextPosition := 1

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", eventID).
			Order("position DESC").
			First(&tail).Error
		if err == nil {
			nextPosition = tail.Position + 1
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry = &WaitlistEntry{
			EventID:  eventID,
			Email:    email,
			Position: nextPosition,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) GetByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]WaitlistEntry, error) {
	var entries []WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WaitlistEntry{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
