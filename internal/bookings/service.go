package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/notifications"
	"ticketly/internal/payments"
	"ticketly/internal/pricing"
	"ticketly/internal/promos"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
	"ticketly/internal/waitlist"
	"ticketly/pkg/logger"
)

// AdmitRequest is one admission attempt. UserID comes from the
// authenticated identity, never from the request body.
type AdmitRequest struct {
	EventSlug       string
	UserID          uuid.UUID
	PaymentIntentID string
	PromoCode       string
	PaymentMethod   string
	ReceiptURL      string
}

// AdmissionResult is the outcome of a successful admission attempt.
// Waitlisted is a success variant, not an error: Booking and Ticket are
// nil and WaitlistPosition is set.
type AdmissionResult struct {
	Outcome          GateOutcome     `json:"outcome"`
	Booking          *Booking        `json:"booking,omitempty"`
	PaymentState     PaymentState    `json:"payment_state,omitempty"`
	Ticket           *tickets.Ticket `json:"ticket,omitempty"`
	WaitlistPosition int             `json:"waitlist_position,omitempty"`
	Message          string          `json:"message"`
}

type Service interface {
	AdmitBooking(ctx context.Context, req AdmitRequest) (*AdmissionResult, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
}

type service struct {
	repo       Repository
	eventsRepo events.Repository
	usersRepo  users.Repository
	gate       *CapacityGate
	promos     promos.Service
	fees       *pricing.Calculator
	verifier   payments.Verifier
	issuer     tickets.Issuer
	dispatcher notifications.Dispatcher
	logger     *logger.Logger
}

func NewService(
	repo Repository,
	eventsRepo events.Repository,
	usersRepo users.Repository,
	waitlistService waitlist.Service,
	promosService promos.Service,
	fees *pricing.Calculator,
	verifier payments.Verifier,
	issuer tickets.Issuer,
	dispatcher notifications.Dispatcher,
) Service {
	return &service{
		repo:       repo,
		eventsRepo: eventsRepo,
		usersRepo:  usersRepo,
		gate:       NewCapacityGate(repo, waitlistService),
		promos:     promosService,
		fees:       fees,
		verifier:   verifier,
		issuer:     issuer,
		dispatcher: dispatcher,
		logger:     logger.GetDefault(),
	}
}

// AdmitBooking runs the full admission workflow: preconditions, the
// capacity decision, payment evidence and pricing, then the ordered
// persistence chain (booking, transaction, payment, ticket). Once the
// booking row is durable every later step is advisory: failures are
// logged and degrade the response instead of rolling anything back.
func (s *service) AdmitBooking(ctx context.Context, req AdmitRequest) (*AdmissionResult, error) {
	event, user, err := s.checkPreconditions(ctx, req)
	if err != nil {
		return nil, err
	}

	gateResult, err := s.gate.Decide(ctx, event, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	switch gateResult.Outcome {
	case OutcomeWaitlisted:
		return s.waitlistedResult(ctx, event, user, gateResult.WaitlistPosition), nil
	case OutcomeRejected:
		s.logger.LogAdmissionRejected(ctx, event.Slug, user.ID.String(), "sold out")
		return nil, ErrSoldOut
	}

	breakdown, err := s.resolvePricing(ctx, event, req)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		EventID:       event.ID,
		UserID:        user.ID,
		Email:         user.Email,
		PaymentState:  breakdown.state,
		PaymentMethod: req.PaymentMethod,
		ReceiptURL:    req.ReceiptURL,
	}

	persisted, err := s.persistBooking(ctx, event, user, booking)
	if err != nil {
		return nil, err
	}
	if persisted != nil {
		// Lost the last seat to a concurrent admission.
		return persisted, nil
	}

	s.logger.LogBookingAdmitted(ctx, booking.ID.String(), event.Slug, user.ID.String(), booking.PaymentState.String())

	// Booking is durable; everything below is advisory.
	s.recordFinancials(ctx, event, booking, breakdown, req)

	var ticket *tickets.Ticket
	if booking.PaymentState.TicketEligible() {
		ticket = s.issueTicket(ctx, booking)
	}

	s.notifyOutcome(ctx, event, user, booking, ticket)

	message := "Booking confirmed."
	if booking.PaymentState == PaymentStatePendingVerification {
		message = "Booking created. Receipt verification is in progress and confirmation may take up to 24 hours."
	}

	return &AdmissionResult{
		Outcome:      OutcomeAdmitted,
		Booking:      booking,
		PaymentState: booking.PaymentState,
		Ticket:       ticket,
		Message:      message,
	}, nil
}

func (s *service) checkPreconditions(ctx context.Context, req AdmitRequest) (*events.Event, *users.User, error) {
	event, err := s.eventsRepo.GetBySlug(ctx, req.EventSlug)
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if !event.IsBookable() {
		return nil, nil, ErrEventNotBookable
	}

	user, err := s.usersRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if user.Email == "" {
		return nil, nil, ErrEmailRequired
	}

	_, err = s.repo.FindExistingForUserOrEmail(ctx, event.ID, user.ID, user.Email)
	if err == nil {
		return nil, nil, ErrDuplicateBooking
	}
	if !errors.Is(err, ErrBookingNotFound) {
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return event, user, nil
}

// priceBreakdown carries the resolved financials for one admission.
type priceBreakdown struct {
	state            PaymentState
	grossAmount      int64
	discountAmount   int64
	amount           int64
	platformFee      int64
	organizerRevenue int64
	promoID          *uuid.UUID
	verification     *payments.VerificationResult
}

func (s *service) resolvePricing(ctx context.Context, event *events.Event, req AdmitRequest) (*priceBreakdown, error) {
	if event.IsFree {
		return &priceBreakdown{state: PaymentStateUnpaid}, nil
	}

	breakdown := &priceBreakdown{grossAmount: event.Price}

	switch {
	case req.PaymentIntentID != "":
		verification, err := s.verifier.Verify(ctx, req.PaymentIntentID)
		if err != nil {
			if errors.Is(err, payments.ErrIntentNotFound) {
				return nil, ErrPaymentNotCompleted
			}
			return nil, fmt.Errorf("%w: %v", ErrPaymentNotCompleted, err)
		}
		if !verification.Settled {
			return nil, ErrPaymentNotCompleted
		}
		breakdown.state = PaymentStateConfirmed
		breakdown.verification = verification
	case req.PaymentMethod != "" && req.ReceiptURL != "":
		breakdown.state = PaymentStatePendingVerification
	default:
		return nil, ErrPaymentEvidenceRequired
	}

	// Unknown promo codes never block admission.
	if req.PromoCode != "" {
		discount, err := s.promos.Resolve(ctx, req.PromoCode, breakdown.grossAmount)
		if err == nil {
			breakdown.discountAmount = discount.DiscountAmount
			promoID := discount.PromoID
			breakdown.promoID = &promoID
		} else if !errors.Is(err, promos.ErrPromoNotFound) {
			s.logger.LogAdvisoryFailure(ctx, "promo_resolve", "", err)
		}
	}

	breakdown.amount = breakdown.grossAmount - breakdown.discountAmount
	fee, revenue, err := s.fees.Split(breakdown.amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	breakdown.platformFee = fee
	breakdown.organizerRevenue = revenue

	return breakdown, nil
}

// persistBooking writes the booking through the path the payment state
// requires. A non-nil result means the locked insert lost the race for
// the last seat and the attempt resolved through the overflow branch.
func (s *service) persistBooking(ctx context.Context, event *events.Event, user *users.User, booking *Booking) (*AdmissionResult, error) {
	if event.Capacity != nil && booking.PaymentState.HoldsCapacity() {
		err := s.repo.CreateAdmitted(ctx, booking)
		if err == nil {
			return nil, nil
		}
		if errors.Is(err, ErrSoldOut) {
			overflow, overflowErr := s.gate.Overflow(ctx, event, user.Email)
			if overflowErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, overflowErr)
			}
			if overflow.Outcome == OutcomeRejected {
				s.logger.LogAdmissionRejected(ctx, event.Slug, user.ID.String(), "sold out")
				return nil, ErrSoldOut
			}
			return s.waitlistedResult(ctx, event, user, overflow.WaitlistPosition), nil
		}
		if errors.Is(err, ErrEventNotBookable) || errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return nil, nil
}

func (s *service) recordFinancials(ctx context.Context, event *events.Event, booking *Booking, breakdown *priceBreakdown, req AdmitRequest) {
	if breakdown.state == PaymentStateUnpaid {
		return
	}

	transactionStatus := TransactionStatusPending
	paymentStatus := PaymentStatusPending
	var externalPaymentID *string
	var paidAt *time.Time
	receiptURL := req.ReceiptURL

	if breakdown.state == PaymentStateConfirmed {
		transactionStatus = TransactionStatusCompleted
		paymentStatus = PaymentStatusSucceeded
		externalPaymentID = &req.PaymentIntentID
		now := time.Now().UTC()
		paidAt = &now
		if breakdown.verification != nil && breakdown.verification.ReceiptURL != "" {
			receiptURL = breakdown.verification.ReceiptURL
		}
	}

	transaction := &Transaction{
		BookingID:         booking.ID,
		EventID:           event.ID,
		UserID:            booking.UserID,
		GrossAmount:       breakdown.grossAmount,
		DiscountAmount:    breakdown.discountAmount,
		Amount:            breakdown.amount,
		PlatformFee:       breakdown.platformFee,
		OrganizerRevenue:  breakdown.organizerRevenue,
		Currency:          event.Currency,
		Status:            transactionStatus,
		PaymentMethod:     req.PaymentMethod,
		ExternalPaymentID: externalPaymentID,
		PromoID:           breakdown.promoID,
	}
	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		s.logger.LogAdvisoryFailure(ctx, "transaction_create", booking.ID.String(), err)
	}

	payment := &Payment{
		BookingID:     booking.ID,
		EventID:       event.ID,
		UserID:        booking.UserID,
		Amount:        breakdown.amount,
		Currency:      event.Currency,
		Status:        paymentStatus,
		PaymentMethod: req.PaymentMethod,
		ReceiptURL:    receiptURL,
		PaidAt:        paidAt,
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		s.logger.LogAdvisoryFailure(ctx, "payment_create", booking.ID.String(), err)
	}
}

func (s *service) issueTicket(ctx context.Context, booking *Booking) *tickets.Ticket {
	ticket, err := s.issuer.Issue(ctx, booking.ID)
	if err != nil {
		s.logger.LogAdvisoryFailure(ctx, "ticket_issue", booking.ID.String(), err)
		return nil
	}
	s.logger.LogTicketIssued(ctx, ticket.TicketNumber, booking.ID.String())
	return ticket
}

func (s *service) waitlistedResult(ctx context.Context, event *events.Event, user *users.User, position int) *AdmissionResult {
	s.logger.LogBookingWaitlisted(ctx, event.Slug, user.Email, position)

	notification := notifications.NewBuilder().
		WithKind(notifications.KindBookingWaitlisted).
		WithRecipient(user.ID, user.Email, user.FullName()).
		WithContent(
			fmt.Sprintf("You're on the waitlist for %s", event.Name),
			fmt.Sprintf("%s is sold out. You are number %d on the waitlist.", event.Name, position),
		).
		WithEventContext(event.ID).
		Build()
	s.dispatch(ctx, "", notification)

	return &AdmissionResult{
		Outcome:          OutcomeWaitlisted,
		WaitlistPosition: position,
		Message:          fmt.Sprintf("Event is sold out. You have been added to the waitlist at position %d.", position),
	}
}

func (s *service) notifyOutcome(ctx context.Context, event *events.Event, user *users.User, booking *Booking, ticket *tickets.Ticket) {
	kind := notifications.KindBookingConfirmed
	title := fmt.Sprintf("Booking confirmed for %s", event.Name)
	message := fmt.Sprintf("Your booking for %s on %s is confirmed.", event.Name, event.DateTime.Format("Jan 2, 2006"))
	if booking.PaymentState == PaymentStatePendingVerification {
		kind = notifications.KindBookingPending
		title = fmt.Sprintf("Booking received for %s", event.Name)
		message = fmt.Sprintf("Your booking for %s was received and your payment receipt is being verified.", event.Name)
	}

	metadata := map[string]interface{}{"payment_state": booking.PaymentState.String()}
	if ticket != nil {
		metadata["ticket_number"] = ticket.TicketNumber
	}

	userNotification := notifications.NewBuilder().
		WithKind(kind).
		WithRecipient(user.ID, user.Email, user.FullName()).
		WithContent(title, message).
		WithMetadata(metadata).
		WithEventContext(event.ID).
		WithBookingContext(booking.ID).
		Build()
	s.dispatch(ctx, booking.ID.String(), userNotification)

	organizer, err := s.usersRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		s.logger.LogAdvisoryFailure(ctx, "organizer_lookup", booking.ID.String(), err)
		return
	}

	organizerNotification := notifications.NewBuilder().
		WithKind(notifications.KindOrganizerBookingReceived).
		WithRecipient(organizer.ID, organizer.Email, organizer.FullName()).
		WithContent(
			fmt.Sprintf("New booking for %s", event.Name),
			fmt.Sprintf("A new booking was received for %s (%s).", event.Name, booking.PaymentState),
		).
		WithEventContext(event.ID).
		WithBookingContext(booking.ID).
		Build()
	s.dispatch(ctx, booking.ID.String(), organizerNotification)
}

func (s *service) dispatch(ctx context.Context, bookingID string, notification *notifications.Notification) {
	if err := s.dispatcher.Dispatch(ctx, notification); err != nil {
		s.logger.LogAdvisoryFailure(ctx, "notification_dispatch", bookingID, err)
	}
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetBookingByIDWithRelations(ctx, id)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetUserBookings(ctx, userID, query)
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetAllBookings(ctx, query)
}
