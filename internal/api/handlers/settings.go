package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirenhq/siren/internal/logger"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/store"
)

// SettingsHandler handles runtime settings API endpoints (admin only).
//
// Settings are flat key/value pairs. The keys the server itself consults are
// models.SettingIntakeEnabled and models.SettingReferencePrefix; other keys
// are free for deployment-specific use.
type SettingsHandler struct {
	store store.Store
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// SetSettingRequest is the request body for PUT /api/v1/settings/{key}.
type SetSettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse is a single key/value pair.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// List handles GET /api/v1/settings.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.ListSettings(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list settings")
		return
	}

	response := make([]SettingResponse, len(settings))
	for i, s := range settings {
		response[i] = SettingResponse{Key: s.Key, Value: s.Value}
	}

	WriteJSONOK(w, response)
}

// Get handles GET /api/v1/settings/{key}.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		BadRequest(w, "Setting key is required")
		return
	}

	value, err := h.store.GetSetting(r.Context(), key)
	if err != nil {
		InternalServerError(w, "Failed to get setting")
		return
	}
	if value == "" {
		NotFound(w, "Setting not found")
		return
	}

	WriteJSONOK(w, SettingResponse{Key: key, Value: value})
}

// Set handles PUT /api/v1/settings/{key}.
func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		BadRequest(w, "Setting key is required")
		return
	}

	var req SetSettingRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if key == models.SettingIntakeEnabled && req.Value != "true" && req.Value != "false" {
		BadRequest(w, "Value must be 'true' or 'false'")
		return
	}

	if err := h.store.SetSetting(r.Context(), key, req.Value); err != nil {
		InternalServerError(w, "Failed to set setting")
		return
	}

	logger.InfoCtx(r.Context(), "setting changed", "key", key)
	WriteJSONOK(w, SettingResponse{Key: key, Value: req.Value})
}

// Delete handles DELETE /api/v1/settings/{key}.
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		BadRequest(w, "Setting key is required")
		return
	}

	if err := h.store.DeleteSetting(r.Context(), key); err != nil {
		InternalServerError(w, "Failed to delete setting")
		return
	}

	WriteNoContent(w)
}
