package handlers

import (
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirenhq/siren/internal/api/middleware"
	"github.com/sirenhq/siren/internal/logger"
	"github.com/sirenhq/siren/pkg/metrics"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/realtime"
	"github.com/sirenhq/siren/pkg/store"
)

const (
	// writeWait is the deadline for writing a frame to the peer.
	writeWait = 10 * time.Second

	// defaultPingInterval is the keepalive interval when none is
	// configured. The pong deadline is derived from the interval so
	// that one missed pong drops the peer.
	defaultPingInterval = 54 * time.Second
)

// StreamHandler serves the per-incident websocket event stream.
//
// Clients connect to GET /api/v1/incidents/{id}/ws and receive
// realtime.Event frames as JSON. Browsers cannot set the Authorization
// header on websocket connections, so the auth middleware also accepts the
// access token via the access_token query parameter.
type StreamHandler struct {
	store   store.Store
	hub     *realtime.Hub
	metrics *metrics.Metrics

	pingInterval time.Duration
	pongWait     time.Duration
	maxConns     int64
	active       atomic.Int64

	upgrader websocket.Upgrader
}

// StreamOptions tunes the websocket streams.
type StreamOptions struct {
	// PingInterval is the keepalive interval. Zero uses the default.
	PingInterval time.Duration

	// MaxConnections caps concurrent streams. Zero means unlimited.
	MaxConnections int
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(s store.Store, hub *realtime.Hub, m *metrics.Metrics, opts StreamOptions) *StreamHandler {
	pingInterval := opts.PingInterval
	if pingInterval <= 0 {
		pingInterval = defaultPingInterval
	}
	return &StreamHandler{
		store:        s,
		hub:          hub,
		metrics:      m,
		pingInterval: pingInterval,
		pongWait:     pingInterval * 10 / 9,
		maxConns:     int64(opts.MaxConnections),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Token auth makes CSRF-style abuse of the upgrade request
			// ineffective, so cross-origin browser clients are allowed.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /api/v1/incidents/{id}/ws.
// Upgrades the connection and streams the incident's events until the
// client disconnects.
func (h *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Incident ID is required")
		return
	}

	incident, err := h.store.GetIncident(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			NotFound(w, "Incident not found")
			return
		}
		InternalServerError(w, "Failed to get incident")
		return
	}

	if !isParticipant(claims, incident) {
		Forbidden(w, "Not a participant of this incident")
		return
	}

	if h.maxConns > 0 && h.active.Add(1) > h.maxConns {
		h.active.Add(-1)
		ServiceUnavailable(w, "Too many concurrent event streams")
		return
	}
	if h.maxConns > 0 {
		defer h.active.Add(-1)
	}

	sub := h.hub.Subscribe(incident.ID)
	if sub == nil {
		ServiceUnavailable(w, "Event stream is shutting down")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.hub.Unsubscribe(sub)
		return
	}

	h.metrics.StreamOpened()
	logger.InfoCtx(r.Context(), "event stream opened",
		logger.KeyIncident, incident.ID,
		logger.KeyUsername, claims.Username)

	go h.writePump(conn, sub)
	h.readPump(conn)

	h.hub.Unsubscribe(sub)
	h.metrics.StreamClosed()
	logger.DebugCtx(r.Context(), "event stream closed",
		logger.KeyIncident, incident.ID,
		logger.KeyUsername, claims.Username,
		logger.KeyDropped, sub.Dropped())
}

// writePump forwards hub events to the peer and keeps the connection alive
// with pings. Exits when the subscriber channel closes or a write fails.
func (h *StreamHandler) writePump(conn *websocket.Conn, sub *realtime.Subscriber) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes frames from the peer until the connection drops. The
// stream is one-way; inbound data frames are discarded, but reading is
// required to process pong and close control frames.
func (h *StreamHandler) readPump(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
