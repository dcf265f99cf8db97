package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/store"
)

// UnitHandler handles response unit management API endpoints.
type UnitHandler struct {
	store store.Store
}

// NewUnitHandler creates a new UnitHandler.
func NewUnitHandler(s store.Store) *UnitHandler {
	return &UnitHandler{store: s}
}

// CreateUnitRequest is the request body for POST /api/v1/units.
type CreateUnitRequest struct {
	CallSign string `json:"call_sign"`
	Category string `json:"category"`
	Station  string `json:"station,omitempty"`
}

// UpdateUnitRequest is the request body for PUT /api/v1/units/{callSign}.
type UpdateUnitRequest struct {
	Category *string `json:"category,omitempty"`
	Station  *string `json:"station,omitempty"`
}

// UnitStatusRequest is the request body for POST /api/v1/units/{callSign}/status.
type UnitStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /api/v1/units.
// Registers a new response unit (admin only).
func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUnitRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	unit := &models.Unit{
		ID:       uuid.New().String(),
		CallSign: req.CallSign,
		Category: models.IncidentCategory(req.Category),
		Status:   models.UnitAvailable,
		Station:  req.Station,
	}

	if err := unit.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreateUnit(r.Context(), unit); err != nil {
		if errors.Is(err, models.ErrDuplicateUnit) {
			Conflict(w, "Unit with this call sign already exists")
			return
		}
		InternalServerError(w, "Failed to create unit")
		return
	}

	WriteJSONCreated(w, unit)
}

// List handles GET /api/v1/units.
// Lists all units, or only dispatchable ones when available=true. The
// optional category parameter narrows available units to one category.
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("available") == "true" {
		category := models.IncidentCategory(query.Get("category"))
		if category != "" && !category.IsValid() {
			BadRequest(w, "Invalid category filter")
			return
		}
		units, err := h.store.ListAvailableUnits(r.Context(), category)
		if err != nil {
			InternalServerError(w, "Failed to list units")
			return
		}
		WriteJSONOK(w, units)
		return
	}

	units, err := h.store.ListUnits(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list units")
		return
	}

	WriteJSONOK(w, units)
}

// Get handles GET /api/v1/units/{callSign}.
func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	callSign := chi.URLParam(r, "callSign")
	if callSign == "" {
		BadRequest(w, "Call sign is required")
		return
	}

	unit, err := h.store.GetUnit(r.Context(), callSign)
	if err != nil {
		if errors.Is(err, models.ErrUnitNotFound) {
			NotFound(w, "Unit not found")
			return
		}
		InternalServerError(w, "Failed to get unit")
		return
	}

	WriteJSONOK(w, unit)
}

// Update handles PUT /api/v1/units/{callSign}.
// Updates a unit's category or station (admin only).
func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	callSign := chi.URLParam(r, "callSign")
	if callSign == "" {
		BadRequest(w, "Call sign is required")
		return
	}

	var req UpdateUnitRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	unit, err := h.store.GetUnit(r.Context(), callSign)
	if err != nil {
		if errors.Is(err, models.ErrUnitNotFound) {
			NotFound(w, "Unit not found")
			return
		}
		InternalServerError(w, "Failed to get unit")
		return
	}

	if req.Category != nil {
		unit.Category = models.IncidentCategory(*req.Category)
	}
	if req.Station != nil {
		unit.Station = *req.Station
	}

	if err := unit.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateUnit(r.Context(), unit); err != nil {
		InternalServerError(w, "Failed to update unit")
		return
	}

	WriteJSONOK(w, unit)
}

// UpdateStatus handles POST /api/v1/units/{callSign}/status.
// Sets a unit's operational status (staff only). Assignment-driven status
// changes happen through the incident endpoints; this endpoint covers
// manual corrections such as taking a unit out of service.
func (h *UnitHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	callSign := chi.URLParam(r, "callSign")
	if callSign == "" {
		BadRequest(w, "Call sign is required")
		return
	}

	var req UnitStatusRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	status := models.UnitStatus(req.Status)
	if !status.IsValid() {
		BadRequest(w, "Invalid unit status")
		return
	}

	if err := h.store.UpdateUnitStatus(r.Context(), callSign, status); err != nil {
		if errors.Is(err, models.ErrUnitNotFound) {
			NotFound(w, "Unit not found")
			return
		}
		InternalServerError(w, "Failed to update unit status")
		return
	}

	unit, err := h.store.GetUnit(r.Context(), callSign)
	if err != nil {
		InternalServerError(w, "Failed to get unit")
		return
	}

	WriteJSONOK(w, unit)
}

// Delete handles DELETE /api/v1/units/{callSign}.
// Removes a unit (admin only). Units assigned to an open incident cannot
// be deleted.
func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callSign := chi.URLParam(r, "callSign")
	if callSign == "" {
		BadRequest(w, "Call sign is required")
		return
	}

	if err := h.store.DeleteUnit(r.Context(), callSign); err != nil {
		if errors.Is(err, models.ErrUnitNotFound) {
			NotFound(w, "Unit not found")
			return
		}
		if errors.Is(err, models.ErrUnitAlreadyOnCall) {
			Conflict(w, "Unit is assigned to an open incident")
			return
		}
		InternalServerError(w, "Failed to delete unit")
		return
	}

	WriteNoContent(w)
}
