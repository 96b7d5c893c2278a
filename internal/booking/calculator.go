package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidRange means the end of the requested window does not
	// follow its start.
	ErrInvalidRange = errors.New("end time must be after start time")
	// ErrPastBooking means the requested window starts before now.
	ErrPastBooking = errors.New("cannot book a session in the past")
)

// Quote is the price breakdown for a requested time window. Billing is
// per started hour: any fraction of an hour is billed as a full one.
type Quote struct {
	From        time.Time
	To          time.Time
	Rate        decimal.Decimal
	BilledHours int64
	Amount      decimal.Decimal
}

// NewQuote computes the price for booking the window [from, to) at the
// given hourly rate. Non-positive durations quote as zero; validation
// happens at submit time, not here, so a form can keep rendering while
// the user edits.
func NewQuote(from, to time.Time, rate decimal.Decimal) Quote {
	q := Quote{From: from, To: to, Rate: rate}

	d := to.Sub(from)
	if d <= 0 {
		q.Amount = decimal.Zero.Round(2)
		return q
	}

	billed := int64(d / time.Hour)
	if d%time.Hour != 0 {
		billed++
	}
	q.BilledHours = billed
	q.Amount = rate.Mul(decimal.NewFromInt(billed)).Round(2)
	return q
}

// Duration returns the window length split into whole hours and
// remaining minutes, both floored.
func (q Quote) Duration() (hours, minutes int) {
	d := q.To.Sub(q.From)
	if d <= 0 {
		return 0, 0
	}
	hours = int(d / time.Hour)
	minutes = int(d % time.Hour / time.Minute)
	return hours, minutes
}

// DurationLabel renders the duration the way the booking summary shows
// it, e.g. "1h 30m".
func (q Quote) DurationLabel() string {
	h, m := q.Duration()
	return fmt.Sprintf("%dh %dm", h, m)
}

// AmountDisplay is the total formatted to two decimal places.
func (q Quote) AmountDisplay() string {
	return q.Amount.StringFixed(2)
}

// Validate applies the submit-time checks for a requested window.
func Validate(from, to, now time.Time) error {
	if !to.After(from) {
		return ErrInvalidRange
	}
	if from.Before(now) {
		return ErrPastBooking
	}
	return nil
}
