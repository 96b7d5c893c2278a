package api

import (
	"context"

	"github.com/chargehive/chargehive-client/internal/models"
)

// ListServices returns every bookable location known to the backend.
func (c *Client) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := c.get(ctx, "/services", &services); err != nil {
		return nil, err
	}
	return services, nil
}
