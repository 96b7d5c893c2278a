package location

import (
	"context"

	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/config"
)

// Provider reports the device's current position. Implementations may
// fail; the resolver absorbs every failure.
type Provider interface {
	Current(ctx context.Context) (lat, lng float64, err error)
}

// Resolver produces a usable position no matter what: the provider if
// it answers, otherwise the preferred defaults. Resolve never fails by
// construction.
type Resolver struct {
	provider Provider
	prefs    *config.Preferences
	logger   *zap.Logger
}

func NewResolver(provider Provider, prefs *config.Preferences, logger *zap.Logger) *Resolver {
	return &Resolver{provider: provider, prefs: prefs, logger: logger}
}

// Resolve returns the current position, falling back to the preference
// defaults when no provider is set or the provider errors.
func (r *Resolver) Resolve(ctx context.Context) (lat, lng float64) {
	if r.provider != nil {
		lat, lng, err := r.provider.Current(ctx)
		if err == nil {
			return lat, lng
		}
		r.logger.Debug("location provider failed, using defaults", zap.Error(err))
	}
	if r.prefs != nil {
		return r.prefs.DefaultLatitude, r.prefs.DefaultLongitude
	}
	return config.DefaultLatitude, config.DefaultLongitude
}
