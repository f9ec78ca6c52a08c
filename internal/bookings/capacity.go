package bookings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/waitlist"
)

type GateOutcome string

const (
	OutcomeAdmitted   GateOutcome = "admitted"
	OutcomeWaitlisted GateOutcome = "waitlisted"
	OutcomeRejected   GateOutcome = "rejected"
)

// GateResult is the capacity decision for one admission attempt.
// WaitlistPosition is set only for OutcomeWaitlisted.
type GateResult struct {
	Outcome          GateOutcome
	WaitlistPosition int
}

// CapacityCounter is the booking-count query the gate depends on.
type CapacityCounter interface {
	CountCapacityHolding(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// CapacityGate decides admit / waitlist / reject for an event. The
// decision here is optimistic: the authoritative recount happens inside
// the locked booking insert, which can still report sold-out and send
// the attempt back through the waitlist branch.
type CapacityGate struct {
	counter  CapacityCounter
	waitlist waitlist.Service
}

func NewCapacityGate(counter CapacityCounter, waitlistService waitlist.Service) *CapacityGate {
	return &CapacityGate{counter: counter, waitlist: waitlistService}
}

func (g *CapacityGate) Decide(ctx context.Context, event *events.Event, email string) (*GateResult, error) {
	if event.Capacity == nil {
		return &GateResult{Outcome: OutcomeAdmitted}, nil
	}

	held, err := g.counter.CountCapacityHolding(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings for event %s: %w", event.ID, err)
	}

	if held < int64(*event.Capacity) {
		return &GateResult{Outcome: OutcomeAdmitted}, nil
	}

	return g.Overflow(ctx, event, email)
}

// Overflow runs the sold-out branch: waitlist when enabled, otherwise
// rejection. Also used when a locked insert loses the last seat.
func (g *CapacityGate) Overflow(ctx context.Context, event *events.Event, email string) (*GateResult, error) {
	if !event.WaitlistEnabled {
		return &GateResult{Outcome: OutcomeRejected}, nil
	}

	entry, err := g.waitlist.Join(ctx, event.ID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to join waitlist for event %s: %w", event.ID, err)
	}
	return &GateResult{Outcome: OutcomeWaitlisted, WaitlistPosition: entry.Position}, nil
}
