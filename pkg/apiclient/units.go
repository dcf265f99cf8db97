package apiclient

import (
	"context"
	"net/url"
	"time"
)

// Unit is a response unit as returned by the API.
type Unit struct {
	ID        string    `json:"id"`
	CallSign  string    `json:"call_sign"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	Station   string    `json:"station,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUnitRequest is the payload for registering a new unit.
type CreateUnitRequest struct {
	CallSign string `json:"call_sign"`
	Category string `json:"category"`
	Station  string `json:"station,omitempty"`
}

// UpdateUnitRequest is the payload for editing a unit. Nil fields are
// left unchanged.
type UpdateUnitRequest struct {
	Category *string `json:"category,omitempty"`
	Station  *string `json:"station,omitempty"`
}

type unitStatusRequest struct {
	Status string `json:"status"`
}

// CreateUnit registers a new response unit (admin only).
func (c *Client) CreateUnit(ctx context.Context, req CreateUnitRequest) (*Unit, error) {
	return createResource[Unit](ctx, c, resourcePath("units"), req)
}

// ListUnits returns all response units (staff only).
func (c *Client) ListUnits(ctx context.Context) ([]Unit, error) {
	return listResources[Unit](ctx, c, resourcePath("units"))
}

// ListAvailableUnits returns units available for dispatch, optionally
// filtered by category (staff only).
func (c *Client) ListAvailableUnits(ctx context.Context, category string) ([]Unit, error) {
	q := url.Values{"available": {"true"}}
	if category != "" {
		q.Set("category", category)
	}
	return listResources[Unit](ctx, c, resourcePath("units")+"?"+q.Encode())
}

// GetUnit returns a unit by call sign (staff only).
func (c *Client) GetUnit(ctx context.Context, callSign string) (*Unit, error) {
	return getResource[Unit](ctx, c, resourcePath("units", callSign))
}

// UpdateUnit edits a unit (admin only).
func (c *Client) UpdateUnit(ctx context.Context, callSign string, req UpdateUnitRequest) (*Unit, error) {
	return updateResource[Unit](ctx, c, resourcePath("units", callSign), req)
}

// UpdateUnitStatus sets a unit's operational status (staff only).
func (c *Client) UpdateUnitStatus(ctx context.Context, callSign, status string) (*Unit, error) {
	return createResource[Unit](ctx, c, resourcePath("units", callSign, "status"), unitStatusRequest{Status: status})
}

// DeleteUnit removes a unit (admin only).
func (c *Client) DeleteUnit(ctx context.Context, callSign string) error {
	return c.delete(ctx, resourcePath("units", callSign))
}
