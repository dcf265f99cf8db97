package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirenhq/siren/internal/api/middleware"
	"github.com/sirenhq/siren/internal/logger"
	"github.com/sirenhq/siren/pkg/metrics"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/realtime"
	"github.com/sirenhq/siren/pkg/store"
)

// DispatchPolicy sets intake behavior for new reports.
type DispatchPolicy struct {
	// DefaultPriority is assigned when the report carries no priority.
	// Zero falls back to models.DefaultPriority.
	DefaultPriority int

	// AutoAcknowledge moves new reports straight to acknowledged.
	AutoAcknowledge bool
}

// IncidentHandler handles incident reporting and dispatch API endpoints.
type IncidentHandler struct {
	store   store.Store
	hub     *realtime.Hub
	metrics *metrics.Metrics
	policy  DispatchPolicy
}

// NewIncidentHandler creates a new IncidentHandler. hub and metrics may be
// nil, which disables realtime fan-out and instrumentation respectively.
func NewIncidentHandler(s store.Store, hub *realtime.Hub, m *metrics.Metrics, policy DispatchPolicy) *IncidentHandler {
	if policy.DefaultPriority == 0 {
		policy.DefaultPriority = models.DefaultPriority
	}
	return &IncidentHandler{
		store:   s,
		hub:     hub,
		metrics: m,
		policy:  policy,
	}
}

// ReportIncidentRequest is the request body for POST /api/v1/incidents.
type ReportIncidentRequest struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	// Priority is honored for staff reporters only; citizen reports
	// always start at the default priority for dispatcher triage.
	Priority int `json:"priority,omitempty"`
}

// UpdateIncidentRequest is the request body for PUT /api/v1/incidents/{id}.
type UpdateIncidentRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
}

// AssignUnitRequest is the request body for POST /api/v1/incidents/{id}/assign.
// Either the unit ID or its call sign identifies the unit.
type AssignUnitRequest struct {
	UnitID   string `json:"unit_id,omitempty"`
	CallSign string `json:"call_sign,omitempty"`
	Force    bool   `json:"force,omitempty"`
}

// TransitionRequest is the request body for POST /api/v1/incidents/{id}/status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// Report handles POST /api/v1/incidents.
// Files a new incident report and allocates its reference number.
func (h *IncidentHandler) Report(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	// Admins can pause citizen intake during maintenance windows
	if !claims.IsStaff() {
		intake, err := h.store.GetSetting(r.Context(), models.SettingIntakeEnabled)
		if err != nil {
			InternalServerError(w, "Failed to check intake status")
			return
		}
		if intake == "false" {
			ServiceUnavailable(w, "Incident intake is temporarily disabled")
			return
		}
	}

	var req ReportIncidentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	priority := h.policy.DefaultPriority
	if claims.IsStaff() && req.Priority != 0 {
		priority = req.Priority
	}

	incident := &models.Incident{
		Category:    models.IncidentCategory(req.Category),
		Priority:    priority,
		Status:      models.StatusReported,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ReporterID:  claims.UserID,
		ReportedAt:  time.Now().UTC(),
	}

	if err := incident.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	id, err := h.store.CreateIncident(r.Context(), incident)
	if err != nil {
		InternalServerError(w, "Failed to create incident")
		return
	}

	created, err := h.store.GetIncident(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch incident")
		return
	}

	if h.policy.AutoAcknowledge {
		acked, err := h.store.TransitionIncident(r.Context(), id, models.StatusAcknowledged, claims.UserID)
		if err != nil {
			InternalServerError(w, "Failed to acknowledge incident")
			return
		}
		created = acked
		h.metrics.RecordTransition(string(models.StatusAcknowledged), false)
	}

	h.metrics.RecordIncidentReported(string(created.Category))
	logger.InfoCtx(r.Context(), "incident reported",
		logger.KeyIncident, created.ID,
		logger.KeyReference, created.Reference,
		logger.KeyCategory, string(created.Category),
		logger.KeyPriority, created.Priority)

	WriteJSONCreated(w, created)
}

// List handles GET /api/v1/incidents.
// Staff see all incidents; citizens only their own reports. Supported query
// parameters: status, category, open, assigned_unit, min_priority, limit,
// offset.
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	filter := store.IncidentFilter{
		Status:         models.IncidentStatus(query.Get("status")),
		Category:       models.IncidentCategory(query.Get("category")),
		AssignedUnitID: query.Get("assigned_unit"),
		OpenOnly:       query.Get("open") == "true",
		MinPriority:    queryInt(r, "min_priority", 0),
		Limit:          queryInt(r, "limit", 0),
		Offset:         queryInt(r, "offset", 0),
	}

	if filter.Status != "" && !filter.Status.IsValid() {
		BadRequest(w, "Invalid status filter")
		return
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		BadRequest(w, "Invalid category filter")
		return
	}

	if !claims.IsStaff() {
		filter.ReporterID = claims.UserID
	}

	incidents, err := h.store.ListIncidents(r.Context(), filter)
	if err != nil {
		InternalServerError(w, "Failed to list incidents")
		return
	}

	WriteJSONOK(w, incidents)
}

// Get handles GET /api/v1/incidents/{id}.
// Accepts either the incident ID or its reference number.
func (h *IncidentHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	incident, ok := h.fetchIncident(w, r)
	if !ok {
		return
	}

	if !canViewIncident(claims, incident) {
		Forbidden(w, "Access denied")
		return
	}

	WriteJSONOK(w, incident)
}

// Update handles PUT /api/v1/incidents/{id}.
// Edits an incident's details and priority (staff only). Closed incidents
// cannot be edited.
func (h *IncidentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	incident, ok := h.fetchIncident(w, r)
	if !ok {
		return
	}

	var req UpdateIncidentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Title != nil {
		incident.Title = *req.Title
	}
	if req.Description != nil {
		incident.Description = *req.Description
	}
	if req.Address != nil {
		incident.Address = *req.Address
	}
	if req.Latitude != nil {
		incident.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		incident.Longitude = req.Longitude
	}
	if req.Priority != nil {
		incident.Priority = *req.Priority
	}

	if err := incident.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateIncident(r.Context(), incident, claims.UserID); err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			NotFound(w, "Incident not found")
			return
		}
		if errors.Is(err, models.ErrIncidentClosed) {
			Conflict(w, "Incident is closed and can no longer be edited")
			return
		}
		InternalServerError(w, "Failed to update incident")
		return
	}

	updated, err := h.store.GetIncident(r.Context(), incident.ID)
	if err != nil {
		InternalServerError(w, "Failed to fetch incident")
		return
	}

	h.publish(realtime.EventIncidentUpdated, updated)
	WriteJSONOK(w, updated)
}

// Acknowledge handles POST /api/v1/incidents/{id}/acknowledge.
// Moves a reported incident into triage (staff only).
func (h *IncidentHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.StatusAcknowledged)
}

// UpdateStatus handles POST /api/v1/incidents/{id}/status.
// Drives the incident lifecycle (staff only).
func (h *IncidentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	next := models.IncidentStatus(req.Status)
	if !next.IsValid() {
		BadRequest(w, "Invalid status")
		return
	}

	h.transition(w, r, next)
}

func (h *IncidentHandler) transition(w http.ResponseWriter, r *http.Request, next models.IncidentStatus) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	target, ok := h.fetchIncident(w, r)
	if !ok {
		return
	}

	incident, err := h.store.TransitionIncident(r.Context(), target.ID, next, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			NotFound(w, "Incident not found")
			return
		}
		if errors.Is(err, models.ErrInvalidTransition) {
			UnprocessableEntity(w, err.Error())
			return
		}
		InternalServerError(w, "Failed to update incident status")
		return
	}

	h.metrics.RecordTransition(string(next), next.IsTerminal())
	logger.InfoCtx(r.Context(), "incident status changed",
		logger.KeyIncident, incident.ID,
		logger.KeyReference, incident.Reference,
		logger.KeyTo, string(next))

	h.publish(realtime.EventIncidentStatus, incident)
	WriteJSONOK(w, incident)
}

// Assign handles POST /api/v1/incidents/{id}/assign.
// Dispatches a unit to the incident (dispatcher only). The unit must be
// available unless force is set, and a still-reported incident is
// acknowledged as part of the assignment.
func (h *IncidentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	target, ok := h.fetchIncident(w, r)
	if !ok {
		return
	}

	var req AssignUnitRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	unitID := req.UnitID
	if unitID == "" {
		if req.CallSign == "" {
			BadRequest(w, "unit_id or call_sign is required")
			return
		}
		unit, err := h.store.GetUnit(r.Context(), req.CallSign)
		if err != nil {
			if errors.Is(err, models.ErrUnitNotFound) {
				NotFound(w, "Unit not found")
				return
			}
			InternalServerError(w, "Failed to get unit")
			return
		}
		unitID = unit.ID
	}

	incident, err := h.store.AssignUnit(r.Context(), target.ID, unitID, claims.UserID, req.Force)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrIncidentNotFound):
			NotFound(w, "Incident not found")
		case errors.Is(err, models.ErrUnitNotFound):
			NotFound(w, "Unit not found")
		case errors.Is(err, models.ErrUnitUnavailable):
			Conflict(w, "Unit is not available for dispatch")
		case errors.Is(err, models.ErrInvalidTransition):
			UnprocessableEntity(w, err.Error())
		default:
			InternalServerError(w, "Failed to assign unit")
		}
		return
	}

	if incident.AssignedUnit != nil {
		h.metrics.RecordUnitAssigned(string(incident.AssignedUnit.Category))
		logger.InfoCtx(r.Context(), "unit dispatched",
			logger.KeyIncident, incident.ID,
			logger.KeyReference, incident.Reference,
			logger.KeyUnit, incident.AssignedUnit.CallSign)
	}
	h.metrics.RecordTransition(string(models.StatusDispatched), false)

	h.publish(realtime.EventIncidentAssigned, incident)
	WriteJSONOK(w, incident)
}

// Events handles GET /api/v1/incidents/{id}/events.
// Returns the incident's audit trail, oldest first (staff only).
func (h *IncidentHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Incident ID is required")
		return
	}

	events, err := h.store.ListIncidentEvents(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			NotFound(w, "Incident not found")
			return
		}
		InternalServerError(w, "Failed to list incident events")
		return
	}

	WriteJSONOK(w, events)
}

// fetchIncident resolves the {id} URL parameter, also accepting a reference
// number. Writes the error response on failure.
func (h *IncidentHandler) fetchIncident(w http.ResponseWriter, r *http.Request) (*models.Incident, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Incident ID is required")
		return nil, false
	}

	incident, err := h.store.GetIncident(r.Context(), id)
	if errors.Is(err, models.ErrIncidentNotFound) {
		incident, err = h.store.GetIncidentByReference(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			NotFound(w, "Incident not found")
			return nil, false
		}
		InternalServerError(w, "Failed to get incident")
		return nil, false
	}

	return incident, true
}

func (h *IncidentHandler) publish(eventType realtime.EventType, incident *models.Incident) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(realtime.NewEvent(eventType, incident.ID, incident))
}
