package pricing

import "errors"

// ErrInvalidAmount is returned when a split is requested for a negative amount
var ErrInvalidAmount = errors.New("amount must not be negative")

// Calculator computes the platform/organizer revenue split for a booking.
// All amounts are integer minor currency units (cents); the fee rate comes
// from configuration, expressed in basis points (1000 = 10%).
type Calculator struct {
	feeBasisPoints int64
}

func NewCalculator(feeBasisPoints int64) *Calculator {
	return &Calculator{feeBasisPoints: feeBasisPoints}
}

// Split returns (platformFee, organizerRevenue) for the given amount.
// The fee is rounded to the nearest minor unit; organizer revenue is the
// remainder, so platformFee + organizerRevenue == amount always holds.
func (c *Calculator) Split(amount int64) (int64, int64, error) {
	if amount < 0 {
		return 0, 0, ErrInvalidAmount
	}

	fee := (amount*c.feeBasisPoints + 5000) / 10000
	return fee, amount - fee, nil
}
