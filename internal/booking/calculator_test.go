package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/directory"
	"github.com/chargehive/chargehive-client/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC)
}

func TestNewQuote(t *testing.T) {
	tests := []struct {
		name       string
		from, to   time.Time
		rate       string
		wantBilled int64
		wantAmount string
	}{
		{"90 minutes bills two hours", at(10, 0), at(11, 30), "10", 2, "20.00"},
		{"exactly one hour", at(10, 0), at(11, 0), "15", 1, "15.00"},
		{"one minute bills one hour", at(10, 0), at(10, 1), "12", 1, "12.00"},
		{"exactly two hours", at(10, 0), at(12, 0), "18", 2, "36.00"},
		{"two hours one second bills three", at(10, 0), at(12, 0).Add(time.Second), "18", 3, "54.00"},
		{"fractional rate rounds to cents", at(10, 0), at(13, 0), "12.333", 3, "37.00"},
		{"zero duration", at(10, 0), at(10, 0), "10", 0, "0.00"},
		{"negative duration", at(11, 0), at(10, 0), "10", 0, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuote(tt.from, tt.to, decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.wantBilled, q.BilledHours)
			assert.Equal(t, tt.wantAmount, q.AmountDisplay())
		})
	}
}

func TestQuote_Duration(t *testing.T) {
	tests := []struct {
		name      string
		from, to  time.Time
		wantLabel string
	}{
		{"hour and a half", at(10, 0), at(11, 30), "1h 30m"},
		{"whole hours", at(10, 0), at(13, 0), "3h 0m"},
		{"under an hour", at(10, 0), at(10, 45), "0h 45m"},
		{"zero", at(10, 0), at(10, 0), "0h 0m"},
		{"negative clamps to zero", at(11, 0), at(10, 0), "0h 0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuote(tt.from, tt.to, decimal.NewFromInt(10))
			assert.Equal(t, tt.wantLabel, q.DurationLabel())
		})
	}
}

func TestValidate(t *testing.T) {
	now := at(9, 0)
	tests := []struct {
		name     string
		from, to time.Time
		wantErr  error
	}{
		{"valid future window", at(10, 0), at(11, 0), nil},
		{"starting now is valid", now, at(10, 0), nil},
		{"end equals start", at(10, 0), at(10, 0), ErrInvalidRange},
		{"end before start", at(11, 0), at(10, 0), ErrInvalidRange},
		{"start in the past", at(8, 0), at(10, 0), ErrPastBooking},
		{"inverted and past reports range first", at(8, 0), at(7, 0), ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.from, tt.to, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

type fakeSessionBooker struct {
	calls   int
	session *models.Session
	err     error
}

func (f *fakeSessionBooker) BookSession(_ context.Context, serviceID string, from, to time.Time) (*models.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func testService() *models.Service {
	return &models.Service{
		ID:         "svc-1",
		Type:       models.ServiceParking,
		Address:    "123 Market Street",
		HourlyRate: decimal.NewFromInt(15),
		Status:     models.StatusAvailable,
	}
}

func TestBooker_Submit(t *testing.T) {
	fake := &fakeSessionBooker{session: &models.Session{ID: "s1"}}
	b := NewBooker(fake, zap.NewNop())
	b.now = func() time.Time { return at(9, 0) }

	sess, err := b.Submit(context.Background(), testService(), at(10, 0), at(11, 30))
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, 1, fake.calls)
}

func TestBooker_SubmitInvalidRangeSkipsNetwork(t *testing.T) {
	fake := &fakeSessionBooker{}
	b := NewBooker(fake, zap.NewNop())
	b.now = func() time.Time { return at(9, 0) }

	_, err := b.Submit(context.Background(), testService(), at(11, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Zero(t, fake.calls)
}

func TestBooker_SubmitPastBookingSkipsNetwork(t *testing.T) {
	fake := &fakeSessionBooker{}
	b := NewBooker(fake, zap.NewNop())
	b.now = func() time.Time { return at(12, 0) }

	_, err := b.Submit(context.Background(), testService(), at(10, 0), at(13, 0))
	assert.ErrorIs(t, err, ErrPastBooking)
	assert.Zero(t, fake.calls)
}

func TestBooker_SubmitUnavailableServiceSkipsNetwork(t *testing.T) {
	fake := &fakeSessionBooker{}
	b := NewBooker(fake, zap.NewNop())
	b.now = func() time.Time { return at(9, 0) }

	svc := testService()
	svc.Status = models.StatusOccupied
	_, err := b.Submit(context.Background(), svc, at(10, 0), at(11, 0))
	assert.ErrorIs(t, err, directory.ErrServiceUnavailable)
	assert.Zero(t, fake.calls)
}

func TestBooker_SubmitBackendErrorSurfaces(t *testing.T) {
	backendErr := errors.New("Service is already booked for this time")
	fake := &fakeSessionBooker{err: backendErr}
	b := NewBooker(fake, zap.NewNop())
	b.now = func() time.Time { return at(9, 0) }

	_, err := b.Submit(context.Background(), testService(), at(10, 0), at(11, 0))
	assert.ErrorIs(t, err, backendErr)
}
