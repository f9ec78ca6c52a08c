package waitlist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmailRequired = errors.New("email is required to join the waitlist")

type Service interface {
	Join(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error)
	GetPosition(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error)
	ListEntries(ctx context.Context, eventID uuid.UUID) ([]WaitlistEntry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Join places an email on the event's waitlist. Joining twice is idempotent:
// the existing entry keeps its original position.
func (s *service) Join(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.repo.GetByEventAndEmail(ctx, eventID, normalized)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrEntryNotFound) {
		return nil, err
	}

	return s.repo.Append(ctx, eventID, normalized)
}

func (s *service) GetPosition(ctx context.Context, eventID uuid.UUID, email string) (*WaitlistEntry, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, ErrEmailRequired
	}
	return s.repo.GetByEventAndEmail(ctx, eventID, normalized)
}

func (s *service) ListEntries(ctx context.Context, eventID uuid.UUID) ([]WaitlistEntry, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
