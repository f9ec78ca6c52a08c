package bookings

// PaymentState is the settlement state of a booking. It replaces the
// legacy convention of a nullable payment status column where "null"
// meant confirmed.
type PaymentState string

const (
	// PaymentStateUnpaid means no payment was required: free event.
	PaymentStateUnpaid PaymentState = "UNPAID"
	// PaymentStatePendingVerification means manual payment evidence was
	// supplied and is awaiting review.
	PaymentStatePendingVerification PaymentState = "PENDING_VERIFICATION"
	// PaymentStateConfirmed means an external payment was verified as
	// settled before admission.
	PaymentStateConfirmed PaymentState = "CONFIRMED"
)

func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStateUnpaid, PaymentStatePendingVerification, PaymentStateConfirmed:
		return true
	}
	return false
}

func (s PaymentState) String() string {
	return string(s)
}

// HoldsCapacity reports whether a booking in this state counts against
// the event's capacity. Pending manual verification does not hold a
// seat until confirmed.
func (s PaymentState) HoldsCapacity() bool {
	return s == PaymentStateConfirmed || s == PaymentStateUnpaid
}

// TicketEligible reports whether a booking in this state gets a ticket
// issued synchronously at admission.
func (s PaymentState) TicketEligible() bool {
	return s == PaymentStateConfirmed || s == PaymentStateUnpaid
}

// CapacityHoldingStates is the set used by count queries.
var CapacityHoldingStates = []PaymentState{PaymentStateConfirmed, PaymentStateUnpaid}

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
)

func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusPending
}

func (s TransactionStatus) String() string {
	return string(s)
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSucceeded, PaymentStatusFailed:
		return true
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}
