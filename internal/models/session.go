package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is derived from the session's time window and is never
// stored; it is recomputed from the clock on every read.
type SessionStatus string

const (
	SessionUpcoming  SessionStatus = "Upcoming"
	SessionActive    SessionStatus = "Active"
	SessionCompleted SessionStatus = "Completed"
)

// Session is a reserved time window against a service. Sessions are
// created through the booking endpoint and are read-only afterwards.
type Session struct {
	ID          string          `json:"sessionId"`
	ServiceID   string          `json:"serviceId,omitempty"`
	Service     Service         `json:"service"`
	From        time.Time       `json:"fromDatetime"`
	To          time.Time       `json:"toDatetime"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// StatusAt derives the session status at the given instant. Both window
// boundaries count as Active.
func (s *Session) StatusAt(now time.Time) SessionStatus {
	if now.Before(s.From) {
		return SessionUpcoming
	}
	if now.After(s.To) {
		return SessionCompleted
	}
	return SessionActive
}
