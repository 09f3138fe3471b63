package client

import (
	"context"
	"fmt"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

// ServiceAPI groups the service catalog endpoints.
type ServiceAPI struct {
	c *Client
}

// List fetches the full service catalog.
func (a ServiceAPI) List(ctx context.Context) ([]model.Service, error) {
	var list listOf[model.Service]
	if err := a.c.get(ctx, "/services/", &list); err != nil {
		return nil, err
	}
	return list.items, nil
}

// Get fetches a single catalog service by ID.
func (a ServiceAPI) Get(ctx context.Context, id int64) (*model.Service, error) {
	var s model.Service
	if err := a.c.get(ctx, fmt.Sprintf("/services/%d/", id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create adds a service to the catalog.
func (a ServiceAPI) Create(ctx context.Context, s model.Service) (*model.Service, error) {
	var created model.Service
	if err := a.c.post(ctx, "/services/", s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a catalog service.
func (a ServiceAPI) Update(ctx context.Context, id int64, s model.Service) (*model.Service, error) {
	var updated model.Service
	if err := a.c.put(ctx, fmt.Sprintf("/services/%d/", id), s, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a service from the catalog.
func (a ServiceAPI) Delete(ctx context.Context, id int64) error {
	return a.c.del(ctx, fmt.Sprintf("/services/%d/", id), nil)
}
