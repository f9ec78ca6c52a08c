package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ticketly/internal/shared/config"
	"ticketly/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrPriceRequired = errors.New("price is required for paid events")
	ErrInvalidSlug   = errors.New("slug must be URL-safe")
)

// Service interface defines the contract for event business logic
type Service interface {
	CreateEvent(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)

	// InvalidateCache drops the cached copy of an event after a mutation
	InvalidateCache(ctx context.Context, slug string)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService creates a new event service instance
func NewService(repo Repository, cacheService cache.Service, cfg *config.Config) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cfg.Redis.EventCacheTTL,
	}
}

func (s *service) CreateEvent(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !isURLSafe(slug) {
		return nil, ErrInvalidSlug
	}

	if !req.IsFree && req.Price <= 0 {
		return nil, ErrPriceRequired
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	event := &Event{
		Name:            req.Name,
		Slug:            slug,
		Description:     req.Description,
		Venue:           req.Venue,
		DateTime:        req.DateTime,
		Capacity:        req.Capacity,
		IsFree:          req.IsFree,
		Price:           req.Price,
		Currency:        currency,
		WaitlistEnabled: req.WaitlistEnabled,
		Status:          StatusPublished,
		OrganizerID:     organizerID,
	}

	if req.IsFree {
		event.Price = 0
	}

	// The remaining-ticket counter starts at full capacity
	if req.Capacity != nil {
		available := *req.Capacity
		event.AvailableTickets = &available
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventBySlug(ctx context.Context, slug string) (*Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	if s.cache == nil {
		return s.repo.GetBySlug(ctx, slug)
	}

	var event Event
	err := s.cache.GetOrSet(ctx, eventCacheKey(slug), s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetBySlug(ctx, slug)
	}, &event)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (s *service) ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	list, totalCount, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]EventResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) InvalidateCache(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, eventCacheKey(slug))
}

func eventCacheKey(slug string) string {
	return "ticketly:event:slug:" + slug
}

func isURLSafe(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
