package api

import (
	"context"
	"time"

	"github.com/chargehive/chargehive-client/internal/models"
)

type bookSessionRequest struct {
	ServiceID    string `json:"serviceId"`
	FromDatetime string `json:"fromDatetime"`
	ToDatetime   string `json:"toDatetime"`
}

// BookSession reserves a time window against a service. Timestamps are
// sent as RFC 3339 in UTC.
func (c *Client) BookSession(ctx context.Context, serviceID string, from, to time.Time) (*models.Session, error) {
	body := bookSessionRequest{
		ServiceID:    serviceID,
		FromDatetime: from.UTC().Format(time.RFC3339),
		ToDatetime:   to.UTC().Format(time.RFC3339),
	}
	var session models.Session
	if err := c.post(ctx, "/sessions/book", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns all of the user's sessions, unordered.
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := c.get(ctx, "/sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
