package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirenhq/siren/internal/api/middleware"
	"github.com/sirenhq/siren/pkg/metrics"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/realtime"
	"github.com/sirenhq/siren/pkg/store"
)

// MessageHandler handles per-incident chat endpoints.
//
// Chat is scoped to participants: the reporting citizen, dispatchers and
// admins, and responders on the assigned unit.
type MessageHandler struct {
	store   store.Store
	hub     *realtime.Hub
	metrics *metrics.Metrics
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(s store.Store, hub *realtime.Hub, m *metrics.Metrics) *MessageHandler {
	return &MessageHandler{
		store:   s,
		hub:     hub,
		metrics: m,
	}
}

// SendMessageRequest is the request body for POST /api/v1/incidents/{id}/messages.
type SendMessageRequest struct {
	Body string `json:"body"`
}

// List handles GET /api/v1/incidents/{id}/messages.
// Returns the incident's chat thread, oldest first. Supported query
// parameters: after (RFC 3339 timestamp), limit.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	incident, ok := h.fetchIncident(w, r)
	if !ok {
		return
	}

	if !isParticipant(claims, incident) {
		Forbidden(w, "Not a participant of this incident")
		return
	}

	filter := store.MessageFilter{
		Limit: queryInt(r, "limit", 0),
	}
	if raw := r.URL.Query().Get("after"); raw != "" {
		after, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			BadRequest(w, "Invalid 'after' timestamp, expected RFC 3339")
			return
		}
		filter.After = after
	}

	messages, err := h.store.ListMessages(r.Context(), incident.ID, filter)
	if err != nil {
		InternalServerError(w, "Failed to list messages")
		return
	}

	WriteJSONOK(w, messages)
}

// Send handles POST /api/v1/incidents/{id}/messages.
// Appends a message to the incident's chat thread and fans it out to
// connected subscribers.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	incident, ok := h.fetchIncident(w, r)
	if !ok {
		return
	}

	if !isParticipant(claims, incident) {
		Forbidden(w, "Not a participant of this incident")
		return
	}

	if !incident.IsOpen() {
		Conflict(w, "Incident is closed; the chat thread is read-only")
		return
	}

	var req SendMessageRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	message := &models.ChatMessage{
		IncidentID:     incident.ID,
		SenderID:       claims.UserID,
		SenderUsername: claims.Username,
		SenderRole:     claims.Role,
		Body:           req.Body,
	}

	if err := message.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreateMessage(r.Context(), message); err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			NotFound(w, "Incident not found")
			return
		}
		InternalServerError(w, "Failed to send message")
		return
	}

	h.metrics.RecordChatMessage(claims.Role)
	if h.hub != nil {
		h.hub.Publish(realtime.NewEvent(realtime.EventChatMessage, incident.ID, message))
	}

	WriteJSONCreated(w, message)
}

func (h *MessageHandler) fetchIncident(w http.ResponseWriter, r *http.Request) (*models.Incident, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Incident ID is required")
		return nil, false
	}

	incident, err := h.store.GetIncident(r.Context(), id)
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
