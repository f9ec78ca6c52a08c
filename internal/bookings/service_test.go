package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly/internal/events"
	"ticketly/internal/notifications"
	"ticketly/internal/payments"
	"ticketly/internal/pricing"
	"ticketly/internal/promos"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
)

type fakeBookingRepo struct {
	bookings     []*Booking
	transactions []*Transaction
	payments     []*Payment
	capacities   map[uuid.UUID]*int
	statuses     map[uuid.UUID]string

	failBookingWrite  bool
	failTransaction   bool
	failPayment       bool
	forceSoldOutRaces int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		capacities: make(map[uuid.UUID]*int),
		statuses:   make(map[uuid.UUID]string),
	}
}

func (f *fakeBookingRepo) registerEvent(event *events.Event) {
	f.capacities[event.ID] = event.Capacity
	f.statuses[event.ID] = string(event.Status)
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, booking *Booking) error {
	if f.failBookingWrite {
		return errors.New("write failed")
	}
	booking.ID = uuid.New()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) CreateAdmitted(_ context.Context, booking *Booking) error {
	if f.failBookingWrite {
		return errors.New("write failed")
	}
	if f.forceSoldOutRaces > 0 {
		f.forceSoldOutRaces--
		return ErrSoldOut
	}
	if status, ok := f.statuses[booking.EventID]; ok && status != string(events.StatusPublished) {
		return ErrEventNotBookable
	}
	if capacity := f.capacities[booking.EventID]; capacity != nil {
		held := f.countHolding(booking.EventID)
		if held >= int64(*capacity) {
			return ErrSoldOut
		}
	}
	booking.ID = uuid.New()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) CreateTransaction(_ context.Context, transaction *Transaction) error {
	if f.failTransaction {
		return errors.New("transaction write failed")
	}
	transaction.ID = uuid.New()
	f.transactions = append(f.transactions, transaction)
	return nil
}

func (f *fakeBookingRepo) CreatePayment(_ context.Context, payment *Payment) error {
	if f.failPayment {
		return errors.New("payment write failed")
	}
	payment.ID = uuid.New()
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeBookingRepo) countHolding(eventID uuid.UUID) int64 {
	var count int64
	for _, b := range f.bookings {
		if b.EventID == eventID && b.PaymentState.HoldsCapacity() {
			count++
		}
	}
	return count
}

func (f *fakeBookingRepo) CountCapacityHolding(_ context.Context, eventID uuid.UUID) (int64, error) {
	return f.countHolding(eventID), nil
}

func (f *fakeBookingRepo) FindExistingForUserOrEmail(_ context.Context, eventID, userID uuid.UUID, email string) (*Booking, error) {
	for _, b := range f.bookings {
		if b.EventID == eventID && (b.UserID == userID || b.Email == email) {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeBookingRepo) GetBookingByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeBookingRepo) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return f.GetBookingByID(ctx, id)
}

func (f *fakeBookingRepo) GetUserBookings(_ context.Context, userID uuid.UUID, _ BookingListQuery) ([]Booking, int64, error) {
	var result []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeBookingRepo) GetAllBookings(_ context.Context, _ BookingListQuery) ([]Booking, int64, error) {
	result := make([]Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		result = append(result, *b)
	}
	return result, int64(len(result)), nil
}

func (f *fakeBookingRepo) GetTransactionByBookingID(_ context.Context, bookingID uuid.UUID) (*Transaction, error) {
	for _, tx := range f.transactions {
		if tx.BookingID == bookingID {
			return tx, nil
		}
	}
	return nil, ErrBookingNotFound
}

type fakeEventsRepo struct {
	bySlug map[string]*events.Event
}

func (f *fakeEventsRepo) Create(_ context.Context, _ *events.Event) error { return nil }
func (f *fakeEventsRepo) GetByID(_ context.Context, _ uuid.UUID) (*events.Event, error) {
	return nil, events.ErrEventNotFound
}
func (f *fakeEventsRepo) GetBySlug(_ context.Context, slug string) (*events.Event, error) {
	if event, ok := f.bySlug[slug]; ok {
		return event, nil
	}
	return nil, events.ErrEventNotFound
}
func (f *fakeEventsRepo) List(_ context.Context, _ events.EventListQuery) ([]events.Event, int64, error) {
	return nil, 0, nil
}
func (f *fakeEventsRepo) Update(_ context.Context, _ *events.Event) error { return nil }

type fakeUsersRepo struct {
	byID map[uuid.UUID]*users.User
}

func (f *fakeUsersRepo) Create(_ context.Context, _ *users.User) error { return nil }
func (f *fakeUsersRepo) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, users.ErrUserNotFound
}
func (f *fakeUsersRepo) GetByEmail(_ context.Context, _ string) (*users.User, error) {
	return nil, users.ErrUserNotFound
}

type fakePromosService struct {
	byCode map[string]*promos.DiscountResult
}

func (f *fakePromosService) Resolve(_ context.Context, code string, _ int64) (*promos.DiscountResult, error) {
	if result, ok := f.byCode[promos.NormalizeCode(code)]; ok {
		return result, nil
	}
	return nil, promos.ErrPromoNotFound
}
func (f *fakePromosService) CreatePromo(_ context.Context, _ promos.CreatePromoRequest) (*promos.PromoCode, error) {
	return nil, nil
}
func (f *fakePromosService) ListPromos(_ context.Context) ([]promos.PromoCode, error) {
	return nil, nil
}

type fakeVerifier struct {
	results map[string]*payments.VerificationResult
}

func (f *fakeVerifier) Verify(_ context.Context, intentID string) (*payments.VerificationResult, error) {
	if result, ok := f.results[intentID]; ok {
		return result, nil
	}
	return nil, payments.ErrIntentNotFound
}

type fakeIssuer struct {
	issued   map[uuid.UUID]*tickets.Ticket
	failNext bool
}

func newFakeIssuer() *fakeIssuer {
	return &fakeIssuer{issued: make(map[uuid.UUID]*tickets.Ticket)}
}

func (f *fakeIssuer) Issue(_ context.Context, bookingID uuid.UUID) (*tickets.Ticket, error) {
	if f.failNext {
		f.failNext = false
		return nil, errors.New("issuance failed")
	}
	if _, exists := f.issued[bookingID]; exists {
		return nil, tickets.ErrAlreadyIssued
	}
	ticket := &tickets.Ticket{
		ID:           uuid.New(),
		BookingID:    bookingID,
		TicketNumber: "TKT-20260901-ABC123",
		QRPayload:    "payload",
		Status:       tickets.StatusActive,
	}
	f.issued[bookingID] = ticket
	return ticket, nil
}

func (f *fakeIssuer) GetByBookingID(_ context.Context, bookingID uuid.UUID) (*tickets.Ticket, error) {
	if ticket, ok := f.issued[bookingID]; ok {
		return ticket, nil
	}
	return nil, tickets.ErrTicketNotFound
}

type fakeDispatcher struct {
	sent []*notifications.Notification
	fail bool
}

func (f *fakeDispatcher) Dispatch(_ context.Context, notification *notifications.Notification) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.sent = append(f.sent, notification)
	return nil
}

type harness struct {
	service    Service
	repo       *fakeBookingRepo
	eventsRepo *fakeEventsRepo
	usersRepo  *fakeUsersRepo
	promos     *fakePromosService
	verifier   *fakeVerifier
	issuer     *fakeIssuer
	dispatcher *fakeDispatcher
	waitlist   *fakeWaitlistService
}

func newHarness() *harness {
	h := &harness{
		repo:       newFakeBookingRepo(),
		eventsRepo: &fakeEventsRepo{bySlug: make(map[string]*events.Event)},
		usersRepo:  &fakeUsersRepo{byID: make(map[uuid.UUID]*users.User)},
		promos:     &fakePromosService{byCode: make(map[string]*promos.DiscountResult)},
		verifier:   &fakeVerifier{results: make(map[string]*payments.VerificationResult)},
		issuer:     newFakeIssuer(),
		dispatcher: &fakeDispatcher{},
		waitlist:   newFakeWaitlistService(),
	}
	h.service = NewService(
		h.repo,
		h.eventsRepo,
		h.usersRepo,
		h.waitlist,
		h.promos,
		pricing.NewCalculator(1000), // 10%
		h.verifier,
		h.issuer,
		h.dispatcher,
	)
	return h
}

func (h *harness) addEvent(event *events.Event) *events.Event {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Status == "" {
		event.Status = events.StatusPublished
	}
	if event.Currency == "" {
		event.Currency = "USD"
	}
	if event.OrganizerID == uuid.Nil {
		organizer := h.addUser("organizer+" + event.Slug + "@example.com")
		event.OrganizerID = organizer.ID
	}
	h.eventsRepo.bySlug[event.Slug] = event
	h.repo.registerEvent(event)
	return event
}

func (h *harness) addUser(email string) *users.User {
	user := &users.User{
		ID:        uuid.New(),
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Role:      users.RoleUser,
	}
	h.usersRepo.byID[user.ID] = user
	return user
}

func TestAdmitFreeEvent(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "free-meetup", Name: "Free Meetup", IsFree: true})
	user := h.addUser("guest@example.com")

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug: event.Slug,
		UserID:    user.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeAdmitted, result.Outcome)
	assert.Equal(t, PaymentStateUnpaid, result.PaymentState)
	require.NotNil(t, result.Ticket)
	assert.Empty(t, h.repo.transactions, "free events create no transaction")
	assert.Empty(t, h.repo.payments, "free events create no payment")
}

func TestAdmitPaidEventWithVerifiedIntent(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "conf", Name: "Conf", Price: 10000})
	user := h.addUser("payer@example.com")
	h.verifier.results["pi_ok"] = &payments.VerificationResult{
		IntentID: "pi_ok", Settled: true, AmountCaptured: 10000, Currency: "USD",
	}

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:       event.Slug,
		UserID:          user.ID,
		PaymentIntentID: "pi_ok",
	})
	require.NoError(t, err)

	assert.Equal(t, PaymentStateConfirmed, result.PaymentState)
	require.NotNil(t, result.Ticket, "verified payment issues a ticket in the same call")

	require.Len(t, h.repo.transactions, 1)
	tx := h.repo.transactions[0]
	assert.Equal(t, TransactionStatusCompleted, tx.Status)
	assert.Equal(t, int64(10000), tx.GrossAmount)
	assert.Equal(t, int64(1000), tx.PlatformFee)
	assert.Equal(t, int64(9000), tx.OrganizerRevenue)

	require.Len(t, h.repo.payments, 1)
	payment := h.repo.payments[0]
	assert.Equal(t, PaymentStatusSucceeded, payment.Status)
	assert.NotNil(t, payment.PaidAt)
}

func TestAdmitPaidEventWithManualReceipt(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "gala", Name: "Gala", Price: 5000})
	user := h.addUser("manual@example.com")

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:     event.Slug,
		UserID:        user.ID,
		PaymentMethod: "bank_transfer",
		ReceiptURL:    "https://receipts.example.com/abc",
	})
	require.NoError(t, err)

	assert.Equal(t, PaymentStatePendingVerification, result.PaymentState)
	assert.Nil(t, result.Ticket, "pending verification never issues a ticket")
	assert.Contains(t, result.Message, "24 hours")

	require.Len(t, h.repo.transactions, 1)
	assert.Equal(t, TransactionStatusPending, h.repo.transactions[0].Status)
	require.Len(t, h.repo.payments, 1)
	assert.Equal(t, PaymentStatusPending, h.repo.payments[0].Status)
	assert.Nil(t, h.repo.payments[0].PaidAt)
}

func TestAdmitPaidEventWithoutEvidence(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "paid", Name: "Paid", Price: 5000})
	user := h.addUser("broke@example.com")

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug: event.Slug,
		UserID:    user.ID,
	})
	assert.ErrorIs(t, err, ErrPaymentEvidenceRequired)
	assert.Empty(t, h.repo.bookings)
}

func TestAdmitRejectsUnsettledIntent(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "paid", Name: "Paid", Price: 5000})
	user := h.addUser("slow@example.com")
	h.verifier.results["pi_pending"] = &payments.VerificationResult{IntentID: "pi_pending", Settled: false}

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:       event.Slug,
		UserID:          user.ID,
		PaymentIntentID: "pi_pending",
	})
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	assert.Empty(t, h.repo.bookings)
}

func TestAdmitDuplicateBooking(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "free", Name: "Free", IsFree: true})
	user := h.addUser("dup@example.com")

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
	require.NoError(t, err)

	_, err = h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Len(t, h.repo.bookings, 1)
}

func TestAdmitDuplicateByEmailFallback(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "free", Name: "Free", IsFree: true})
	first := h.addUser("shared@example.com")
	second := h.addUser("shared@example.com")

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: first.ID})
	require.NoError(t, err)

	_, err = h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: second.ID})
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestCapacityOneSecondAttemptWaitlisted(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "tiny", Name: "Tiny", IsFree: true, Capacity: intPtr(1), WaitlistEnabled: true})
	first := h.addUser("first@example.com")
	second := h.addUser("second@example.com")

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdmitted, result.Outcome)

	result, err = h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: second.ID})
	require.NoError(t, err)
	assert.Equal(t, OutcomeWaitlisted, result.Outcome)
	assert.Equal(t, 1, result.WaitlistPosition)
	assert.Nil(t, result.Booking)
}

func TestCapacityNeverExceededSequentially(t *testing.T) {
	h := newHarness()
	const capacity = 3
	event := h.addEvent(&events.Event{Slug: "bounded", Name: "Bounded", IsFree: true, Capacity: intPtr(capacity), WaitlistEnabled: true})

	for i := 0; i < capacity+2; i++ {
		user := h.addUser(string(rune('a'+i)) + "@example.com")
		result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
		require.NoError(t, err)
		if i < capacity {
			assert.Equal(t, OutcomeAdmitted, result.Outcome)
		} else {
			assert.Equal(t, OutcomeWaitlisted, result.Outcome)
		}
	}

	assert.Equal(t, int64(capacity), h.repo.countHolding(event.ID))
}

func TestSoldOutWithoutWaitlist(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "strict", Name: "Strict", IsFree: true, Capacity: intPtr(1), WaitlistEnabled: false})
	first := h.addUser("first@example.com")
	second := h.addUser("second@example.com")

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: first.ID})
	require.NoError(t, err)

	_, err = h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: second.ID})
	assert.ErrorIs(t, err, ErrSoldOut)
}

func TestPendingBookingDoesNotHoldCapacity(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "cap1", Name: "Cap1", Price: 5000, Capacity: intPtr(1), WaitlistEnabled: false})
	manual := h.addUser("manual@example.com")
	verified := h.addUser("verified@example.com")
	h.verifier.results["pi_ok"] = &payments.VerificationResult{IntentID: "pi_ok", Settled: true, AmountCaptured: 5000}

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:     event.Slug,
		UserID:        manual.ID,
		PaymentMethod: "bank_transfer",
		ReceiptURL:    "https://receipts.example.com/1",
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentStatePendingVerification, result.PaymentState)

	// The pending booking does not consume the single seat.
	result, err = h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:       event.Slug,
		UserID:          verified.ID,
		PaymentIntentID: "pi_ok",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdmitted, result.Outcome)
	assert.Equal(t, PaymentStateConfirmed, result.PaymentState)
}

func TestUnknownPromoCodeIsIgnored(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "promo", Name: "Promo", Price: 10000})
	user := h.addUser("hopeful@example.com")
	h.verifier.results["pi_ok"] = &payments.VerificationResult{IntentID: "pi_ok", Settled: true}

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:       event.Slug,
		UserID:          user.ID,
		PaymentIntentID: "pi_ok",
		PromoCode:       "NOSUCHCODE",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdmitted, result.Outcome)

	require.Len(t, h.repo.transactions, 1)
	assert.Equal(t, int64(0), h.repo.transactions[0].DiscountAmount)
	assert.Nil(t, h.repo.transactions[0].PromoID)
}

func TestPromoDiscountFlowsIntoTransaction(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "promo", Name: "Promo", Price: 10000})
	user := h.addUser("saver@example.com")
	promoID := uuid.New()
	h.promos.byCode["SAVE10"] = &promos.DiscountResult{PromoID: promoID, Code: "SAVE10", DiscountAmount: 500}
	h.verifier.results["pi_ok"] = &payments.VerificationResult{IntentID: "pi_ok", Settled: true}

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:       event.Slug,
		UserID:          user.ID,
		PaymentIntentID: "pi_ok",
		PromoCode:       "save10",
	})
	require.NoError(t, err)

	require.Len(t, h.repo.transactions, 1)
	tx := h.repo.transactions[0]
	assert.Equal(t, int64(10000), tx.GrossAmount)
	assert.Equal(t, int64(500), tx.DiscountAmount)
	assert.Equal(t, int64(9500), tx.Amount)
	require.NotNil(t, tx.PromoID)
	assert.Equal(t, promoID, *tx.PromoID)

	// Money invariants hold exactly.
	assert.Equal(t, tx.Amount, tx.GrossAmount-tx.DiscountAmount)
	assert.Equal(t, tx.Amount, tx.PlatformFee+tx.OrganizerRevenue)
}

func TestPaymentRecordFailureIsAdvisory(t *testing.T) {
	h := newHarness()
	h.repo.failPayment = true
	event := h.addEvent(&events.Event{Slug: "conf", Name: "Conf", Price: 10000})
	user := h.addUser("payer@example.com")
	h.verifier.results["pi_ok"] = &payments.VerificationResult{IntentID: "pi_ok", Settled: true}

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{
		EventSlug:       event.Slug,
		UserID:          user.ID,
		PaymentIntentID: "pi_ok",
	})
	require.NoError(t, err, "payment record failure must not fail the admission")
	assert.Equal(t, OutcomeAdmitted, result.Outcome)
	assert.Len(t, h.repo.bookings, 1)
}

func TestTicketIssueFailureDegradesResponse(t *testing.T) {
	h := newHarness()
	h.issuer.failNext = true
	event := h.addEvent(&events.Event{Slug: "free", Name: "Free", IsFree: true})
	user := h.addUser("unlucky@example.com")

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
	require.NoError(t, err, "ticket issuance failure must not fail the admission")
	assert.Equal(t, OutcomeAdmitted, result.Outcome)
	assert.Nil(t, result.Ticket)
}

func TestDispatchFailureIsSwallowed(t *testing.T) {
	h := newHarness()
	h.dispatcher.fail = true
	event := h.addEvent(&events.Event{Slug: "free", Name: "Free", IsFree: true})
	user := h.addUser("quiet@example.com")

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdmitted, result.Outcome)
}

func TestNotificationsSentForAdmission(t *testing.T) {
	h := newHarness()
	event := h.addEvent(&events.Event{Slug: "free", Name: "Free", IsFree: true})
	user := h.addUser("social@example.com")

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
	require.NoError(t, err)

	require.Len(t, h.dispatcher.sent, 2)
	assert.Equal(t, notifications.KindBookingConfirmed, h.dispatcher.sent[0].Kind)
	assert.Equal(t, notifications.KindOrganizerBookingReceived, h.dispatcher.sent[1].Kind)
}

func TestLostRaceFallsBackToWaitlist(t *testing.T) {
	h := newHarness()
	h.repo.forceSoldOutRaces = 1
	event := h.addEvent(&events.Event{Slug: "race", Name: "Race", IsFree: true, Capacity: intPtr(10), WaitlistEnabled: true})
	user := h.addUser("racer@example.com")

	result, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, OutcomeWaitlisted, result.Outcome)
	assert.Equal(t, 1, result.WaitlistPosition)
}

func TestPreconditionErrors(t *testing.T) {
	h := newHarness()
	user := h.addUser("someone@example.com")

	_, err := h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: "missing", UserID: user.ID})
	assert.ErrorIs(t, err, ErrEventNotFound)

	event := h.addEvent(&events.Event{Slug: "draft", Name: "Draft", IsFree: true, Status: events.StatusDraft})
	_, err = h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: event.Slug, UserID: user.ID})
	assert.ErrorIs(t, err, ErrEventNotBookable)

	live := h.addEvent(&events.Event{Slug: "live", Name: "Live", IsFree: true})
	_, err = h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: live.Slug, UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrUserNotFound)

	noEmail := h.addUser("")
	_, err = h.service.AdmitBooking(context.Background(), AdmitRequest{EventSlug: live.Slug, UserID: noEmail.ID})
	assert.ErrorIs(t, err, ErrEmailRequired)
}
