package bookings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly/internal/events"
	"ticketly/internal/waitlist"
)

type fixedCounter struct {
	count int64
}

func (f fixedCounter) CountCapacityHolding(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.count, nil
}

type fakeWaitlistService struct {
	positions map[uuid.UUID]map[string]int
}

func newFakeWaitlistService() *fakeWaitlistService {
	return &fakeWaitlistService{positions: make(map[uuid.UUID]map[string]int)}
}

func (f *fakeWaitlistService) Join(_ context.Context, eventID uuid.UUID, email string) (*waitlist.WaitlistEntry, error) {
	email = waitlist.NormalizeEmail(email)
	if f.positions[eventID] == nil {
		f.positions[eventID] = make(map[string]int)
	}
	if pos, ok := f.positions[eventID][email]; ok {
		return &waitlist.WaitlistEntry{EventID: eventID, Email: email, Position: pos}, nil
	}
	pos := len(f.positions[eventID]) + 1
	f.positions[eventID][email] = pos
	return &waitlist.WaitlistEntry{EventID: eventID, Email: email, Position: pos}, nil
}

func (f *fakeWaitlistService) GetPosition(_ context.Context, eventID uuid.UUID, email string) (*waitlist.WaitlistEntry, error) {
	if pos, ok := f.positions[eventID][waitlist.NormalizeEmail(email)]; ok {
		return &waitlist.WaitlistEntry{EventID: eventID, Email: email, Position: pos}, nil
	}
	return nil, waitlist.ErrEntryNotFound
}

func (f *fakeWaitlistService) ListEntries(_ context.Context, eventID uuid.UUID) ([]waitlist.WaitlistEntry, error) {
	entries := make([]waitlist.WaitlistEntry, 0, len(f.positions[eventID]))
	for email, pos := range f.positions[eventID] {
		entries = append(entries, waitlist.WaitlistEntry{EventID: eventID, Email: email, Position: pos})
	}
	return entries, nil
}

func intPtr(v int) *int {
	return &v
}

func TestGateAdmitsUnlimitedCapacity(t *testing.T) {
	gate := NewCapacityGate(fixedCounter{count: 100000}, newFakeWaitlistService())
	event := &events.Event{ID: uuid.New(), Capacity: nil}

	result, err := gate.Decide(context.Background(), event, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdmitted, result.Outcome)
}

func TestGateAdmitsUnderCapacity(t *testing.T) {
	gate := NewCapacityGate(fixedCounter{count: 4}, newFakeWaitlistService())
	event := &events.Event{ID: uuid.New(), Capacity: intPtr(5)}

	result, err := gate.Decide(context.Background(), event, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdmitted, result.Outcome)
}

func TestGateWaitlistsWhenFull(t *testing.T) {
	gate := NewCapacityGate(fixedCounter{count: 5}, newFakeWaitlistService())
	event := &events.Event{ID: uuid.New(), Capacity: intPtr(5), WaitlistEnabled: true}

	result, err := gate.Decide(context.Background(), event, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWaitlisted, result.Outcome)
	assert.Equal(t, 1, result.WaitlistPosition)

	result, err = gate.Decide(context.Background(), event, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWaitlisted, result.Outcome)
	assert.Equal(t, 2, result.WaitlistPosition)
}

func TestGateRejectsWhenFullWithoutWaitlist(t *testing.T) {
	gate := NewCapacityGate(fixedCounter{count: 5}, newFakeWaitlistService())
	event := &events.Event{ID: uuid.New(), Capacity: intPtr(5), WaitlistEnabled: false}

	result, err := gate.Decide(context.Background(), event, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, result.Outcome)
}

func TestGateWaitlistJoinIsIdempotent(t *testing.T) {
	gate := NewCapacityGate(fixedCounter{count: 1}, newFakeWaitlistService())
	event := &events.Event{ID: uuid.New(), Capacity: intPtr(1), WaitlistEnabled: true}

	first, err := gate.Decide(context.Background(), event, "same@example.com")
	require.NoError(t, err)
	again, err := gate.Decide(context.Background(), event, "same@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.WaitlistPosition, again.WaitlistPosition)
}
