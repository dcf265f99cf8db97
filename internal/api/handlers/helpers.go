package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirenhq/siren/internal/api/auth"
	"github.com/sirenhq/siren/pkg/models"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// queryInt parses an integer query parameter, returning fallback when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// isParticipant reports whether the caller may access an incident's chat
// thread and event stream. Dispatchers and admins participate in every
// incident, responders only when their unit is assigned, and citizens only
// on their own reports.
func isParticipant(claims *auth.Claims, incident *models.Incident) bool {
	switch claims.GetRole() {
	case models.RoleAdmin, models.RoleDispatcher:
		return true
	case models.RoleResponder:
		return incident.AssignedUnitID != nil && claims.UnitID == *incident.AssignedUnitID
	default:
		return incident.ReporterID == claims.UserID
	}
}

// canViewIncident reports whether the caller may read an incident at all.
// Staff see everything, citizens only their own reports.
func canViewIncident(claims *auth.Claims, incident *models.Incident) bool {
	if claims.IsStaff() {
		return true
	}
	return incident.ReporterID == claims.UserID
}
