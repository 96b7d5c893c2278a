package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/directory"
	"github.com/chargehive/chargehive-client/internal/models"
)

// SessionBooker is the slice of the API client the booker needs.
type SessionBooker interface {
	BookSession(ctx context.Context, serviceID string, from, to time.Time) (*models.Session, error)
}

// Booker validates and submits booking requests. Validation failures
// never reach the network, and a failed submit leaves the caller free
// to correct and retry; nothing is retried automatically.
type Booker struct {
	api    SessionBooker
	logger *zap.Logger
	now    func() time.Time
}

func NewBooker(api SessionBooker, logger *zap.Logger) *Booker {
	return &Booker{api: api, logger: logger, now: time.Now}
}

// Submit validates the window and books it against the service.
func (b *Booker) Submit(ctx context.Context, service *models.Service, from, to time.Time) (*models.Session, error) {
	if err := directory.EnsureBookable(service); err != nil {
		return nil, err
	}
	if err := Validate(from, to, b.now()); err != nil {
		return nil, err
	}

	quote := NewQuote(from, to, service.HourlyRate)
	b.logger.Info("submitting booking",
		zap.String("service", service.ID),
		zap.Int64("billed_hours", quote.BilledHours),
		zap.String("amount", quote.AmountDisplay()))

	session, err := b.api.BookSession(ctx, service.ID, from, to)
	if err != nil {
		b.logger.Warn("booking failed", zap.String("service", service.ID), zap.Error(err))
		return nil, err
	}
	return session, nil
}
