package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/models"
)

// ErrServiceUnavailable rejects a booking attempt against a service
// that is occupied or under maintenance.
var ErrServiceUnavailable = errors.New("service unavailable")

// Lister is the slice of the API client the directory needs.
type Lister interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}

// Directory serves the bookable services near the user. When the
// backend is unreachable or returns nothing it falls back to a fixed
// demo dataset so the rest of the app stays usable offline.
type Directory struct {
	api    Lister
	logger *zap.Logger

	demoMode     bool
	demoNotified bool
}

func New(api Lister, logger *zap.Logger) *Directory {
	return &Directory{api: api, logger: logger}
}

// Fetch returns the current service list. Backend failures and empty
// responses both switch the directory into demo mode; a successful
// non-empty response switches it back. The fallback absorbs every
// failure, so Fetch cannot fail.
func (d *Directory) Fetch(ctx context.Context) []models.Service {
	services, err := d.api.ListServices(ctx)
	if err != nil {
		d.logger.Warn("service list unavailable, serving demo data", zap.Error(err))
		d.demoMode = true
		return DemoServices()
	}
	if len(services) == 0 {
		d.logger.Info("service list empty, serving demo data")
		d.demoMode = true
		return DemoServices()
	}
	d.demoMode = false
	return services
}

// DemoMode reports whether the last fetch fell back to demo data.
func (d *Directory) DemoMode() bool { return d.demoMode }

// DemoNotice returns the demo-data notice exactly once per fallback
// session. It returns "" when live data is being served or the notice
// was already shown.
func (d *Directory) DemoNotice() string {
	if !d.demoMode || d.demoNotified {
		return ""
	}
	d.demoNotified = true
	return "Showing demo services. Live availability could not be loaded."
}

// EnsureBookable rejects services that do not accept bookings, naming
// the service kind and its current status.
func EnsureBookable(svc *models.Service) error {
	if svc.Bookable() {
		return nil
	}
	status := string(svc.Status)
	if status == "" {
		status = "unknown"
	}
	return fmt.Errorf("%w: %s at %s is %s", ErrServiceUnavailable, svc.Type.Label(), svc.Address, status)
}

// DemoServices returns the fixed offline dataset. Callers receive a
// fresh slice each time; the entries are safe to modify.
func DemoServices() []models.Service {
	return []models.Service{
		{
			ID:          "demo-p1",
			Type:        models.ServiceParking,
			Address:     "123 Market Street",
			City:        "San Francisco",
			State:       "CA",
			Country:     "USA",
			Latitude:    37.7749,
			Longitude:   -122.4194,
			HourlyRate:  decimal.NewFromInt(15),
			Status:      models.StatusAvailable,
			Description: "Downtown parking facility",
		},
		{
			ID:          "demo-c1",
			Type:        models.ServiceCharger,
			Address:     "456 Mission Street",
			City:        "San Francisco",
			State:       "CA",
			Country:     "USA",
			Latitude:    37.7849,
			Longitude:   -122.4094,
			HourlyRate:  decimal.NewFromInt(20),
			Status:      models.StatusAvailable,
			Description: "Fast charging station",
		},
		{
			ID:          "demo-p2",
			Type:        models.ServiceParking,
			Address:     "789 Howard Street",
			City:        "San Francisco",
			State:       "CA",
			Country:     "USA",
			Latitude:    37.7649,
			Longitude:   -122.4294,
			HourlyRate:  decimal.NewFromInt(12),
			Status:      models.StatusAvailable,
			Description: "Covered parking",
		},
		{
			ID:          "demo-c2",
			Type:        models.ServiceCharger,
			Address:     "321 Folsom Street",
			City:        "San Francisco",
			State:       "CA",
			Country:     "USA",
			Latitude:    37.7799,
			Longitude:   -122.4144,
			HourlyRate:  decimal.NewFromInt(18),
			Status:      models.StatusAvailable,
			Description: "Level 2 charging",
		},
	}
}
