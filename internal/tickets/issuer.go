package tickets

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const ticketNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Issuer creates the admission artifact for an admitted booking: a unique
// human-readable ticket number plus a QR payload that encodes enough data
// for offline gate scanning.
type Issuer interface {
	Issue(ctx context.Context, bookingID uuid.UUID) (*Ticket, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error)
}

type issuer struct {
	repo Repository
	now  func() time.Time
}

func NewIssuer(repo Repository) Issuer {
	return &issuer{repo: repo, now: time.Now}
}

func (i *issuer) Issue(ctx context.Context, bookingID uuid.UUID) (*Ticket, error) {
	issuedAt := i.now().UTC()

	number, err := generateTicketNumber(issuedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket number: %w", err)
	}

	payload, err := buildQRPayload(number, bookingID, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr payload: %w", err)
	}

	ticket := &Ticket{
		BookingID:    bookingID,
		TicketNumber: number,
		QRPayload:    payload,
		Status:       StatusActive,
		IssuedAt:     issuedAt,
	}
	if err := i.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (i *issuer) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error) {
	return i.repo.GetByBookingID(ctx, bookingID)
}

// generateTicketNumber returns a number like TKT-20250901-X7K2M9.
func generateTicketNumber(issuedAt time.Time) (string, error) {
	suffix := make([]byte, 6)
	for idx := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(ticketNumberAlphabet))))
		if err != nil {
			return "", err
		}
		suffix[idx] = ticketNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("TKT-%s-%s", issuedAt.Format("20060102"), string(suffix)), nil
}

type qrPayload struct {
	TicketNumber string    `json:"ticket_number"`
	BookingID    uuid.UUID `json:"booking_id"`
	IssuedAt     time.Time `json:"issued_at"`
}

func buildQRPayload(number string, bookingID uuid.UUID, issuedAt time.Time) (string, error) {
	raw, err := json.Marshal(qrPayload{
		TicketNumber: number,
		BookingID:    bookingID,
		IssuedAt:     issuedAt,
	})
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeQRPayload is the inverse of the payload encoding used at issuance.
// Gate scanners use it to validate offline-scanned codes.
func DecodeQRPayload(encoded string) (ticketNumber string, bookingID uuid.UUID, issuedAt time.Time, err error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", uuid.Nil, time.Time{}, fmt.Errorf("invalid qr payload encoding: %w", err)
	}
	var payload qrPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", uuid.Nil, time.Time{}, fmt.Errorf("invalid qr payload: %w", err)
	}
	return payload.TicketNumber, payload.BookingID, payload.IssuedAt, nil
}
