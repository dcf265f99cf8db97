package apiclient

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// Incident is an emergency incident as returned by the API.
type Incident struct {
	ID             string     `json:"id"`
	Reference      string     `json:"reference"`
	Category       string     `json:"category"`
	Priority       int        `json:"priority"`
	Status         string     `json:"status"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Address        string     `json:"address,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	ReporterID     string     `json:"reporter_id"`
	AssignedUnitID *string    `json:"assigned_unit_id,omitempty"`
	ReportedAt     time.Time  `json:"reported_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	DispatchedAt   *time.Time `json:"dispatched_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Reporter       *User      `json:"reporter,omitempty"`
	AssignedUnit   *Unit      `json:"assigned_unit,omitempty"`
}

// IncidentEvent is an entry in an incident's audit trail.
type IncidentEvent struct {
	ID         uint      `json:"id"`
	IncidentID string    `json:"incident_id"`
	Type       string    `json:"type"`
	ActorID    string    `json:"actor_id,omitempty"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportIncidentRequest is the payload for filing a new incident.
type ReportIncidentRequest struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Priority    int      `json:"priority,omitempty"`
}

// UpdateIncidentRequest is the payload for editing incident details.
// Nil fields are left unchanged.
type UpdateIncidentRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
}

// IncidentFilter narrows ListIncidents. Zero values are ignored.
type IncidentFilter struct {
	Status       string
	Category     string
	AssignedUnit string
	OpenOnly     bool
	MinPriority  int
	Limit        int
	Offset       int
}

type assignUnitRequest struct {
	UnitID   string `json:"unit_id,omitempty"`
	CallSign string `json:"call_sign,omitempty"`
	Force    bool   `json:"force,omitempty"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

// ReportIncident files a new incident report.
func (c *Client) ReportIncident(ctx context.Context, req ReportIncidentRequest) (*Incident, error) {
	return createResource[Incident](ctx, c, resourcePath("incidents"), req)
}

// ListIncidents returns incidents matching the filter. Citizens only see
// their own reports; staff see everything.
func (c *Client) ListIncidents(ctx context.Context, filter IncidentFilter) ([]Incident, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.AssignedUnit != "" {
		q.Set("assigned_unit", filter.AssignedUnit)
	}
	if filter.OpenOnly {
		q.Set("open", "true")
	}
	if filter.MinPriority > 0 {
		q.Set("min_priority", strconv.Itoa(filter.MinPriority))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}

	path := resourcePath("incidents")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return listResources[Incident](ctx, c, path)
}

// GetIncident returns a single incident by ID or reference.
func (c *Client) GetIncident(ctx context.Context, id string) (*Incident, error) {
	return getResource[Incident](ctx, c, resourcePath("incidents", id))
}

// UpdateIncident edits incident details (dispatcher only).
func (c *Client) UpdateIncident(ctx context.Context, id string, req UpdateIncidentRequest) (*Incident, error) {
	return updateResource[Incident](ctx, c, resourcePath("incidents", id), req)
}

// AcknowledgeIncident moves a reported incident to acknowledged
// (dispatcher only).
func (c *Client) AcknowledgeIncident(ctx context.Context, id string) (*Incident, error) {
	return createResource[Incident](ctx, c, resourcePath("incidents", id, "acknowledge"), nil)
}

// AssignUnit dispatches a unit to an incident. unitRef may be a unit ID
// or a call sign. force dispatches the unit even when it is not
// available (dispatcher only).
func (c *Client) AssignUnit(ctx context.Context, id, unitRef string, force bool) (*Incident, error) {
	req := assignUnitRequest{CallSign: unitRef, Force: force}
	if looksLikeUUID(unitRef) {
		req = assignUnitRequest{UnitID: unitRef, Force: force}
	}
	return createResource[Incident](ctx, c, resourcePath("incidents", id, "assign"), req)
}

// UpdateIncidentStatus drives the incident lifecycle (staff only).
func (c *Client) UpdateIncidentStatus(ctx context.Context, id, status string) (*Incident, error) {
	return createResource[Incident](ctx, c, resourcePath("incidents", id, "status"), transitionRequest{Status: status})
}

// IncidentEvents returns the incident's audit trail, oldest first
// (staff only).
func (c *Client) IncidentEvents(ctx context.Context, id string) ([]IncidentEvent, error) {
	return listResources[IncidentEvent](ctx, c, resourcePath("incidents", id, "events"))
}

// looksLikeUUID reports whether s has the 8-4-4-4-12 shape of a UUID.
// Call signs never do, so this picks the right assignment field.
func looksLikeUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, r := range s {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return false
			}
		default:
			isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
			if !isHex {
				return false
			}
		}
	}
	return true
}
