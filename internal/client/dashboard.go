package client

import (
	"context"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

// DashboardAPI groups the dashboard endpoint.
type DashboardAPI struct {
	c *Client
}

// Data fetches the aggregate figures behind the dashboard view.
func (a DashboardAPI) Data(ctx context.Context) (*model.DashboardData, error) {
	var d model.DashboardData
	if err := a.c.get(ctx, "/dashboard/", &d); err != nil {
		return nil, err
	}
	return &d, nil
}
