// Package metrics exposes Prometheus instrumentation for the Siren server.
//
// All metrics use the "siren_" prefix. Methods handle a nil receiver
// gracefully, so a nil *Metrics acts as a no-op when metrics are disabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	// IncidentsReported counts incident reports by category.
	IncidentsReported *prometheus.CounterVec

	// IncidentTransitions counts status transitions by target status.
	IncidentTransitions *prometheus.CounterVec

	// OpenIncidents tracks the current number of non-terminal incidents.
	OpenIncidents prometheus.Gauge

	// UnitAssignments counts unit assignments by unit category.
	UnitAssignments *prometheus.CounterVec

	// ChatMessages counts chat messages by sender role.
	ChatMessages *prometheus.CounterVec

	// ActiveStreams tracks the current number of websocket subscribers.
	ActiveStreams prometheus.Gauge

	// DroppedEvents counts realtime events discarded for slow subscribers.
	DroppedEvents prometheus.Counter

	// RequestDuration tracks HTTP request latency by method, route and status.
	RequestDuration *prometheus.HistogramVec
}

// New creates a Metrics instance backed by the given registry.
// A nil registry creates a fresh one with the standard Go and process
// collectors attached.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Metrics{
		registry: registry,
		IncidentsReported: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "siren_incidents_reported_total",
				Help: "Total incident reports by category",
			},
			[]string{"category"},
		),
		IncidentTransitions: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "siren_incident_transitions_total",
				Help: "Total incident status transitions by target status",
			},
			[]string{"status"},
		),
		OpenIncidents: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "siren_open_incidents",
				Help: "Current number of incidents not yet closed or cancelled",
			},
		),
		UnitAssignments: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "siren_unit_assignments_total",
				Help: "Total unit assignments by unit category",
			},
			[]string{"category"},
		),
		ChatMessages: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "siren_chat_messages_total",
				Help: "Total chat messages by sender role",
			},
			[]string{"role"},
		),
		ActiveStreams: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "siren_active_streams",
				Help: "Current number of websocket event subscribers",
			},
		),
		DroppedEvents: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "siren_dropped_events_total",
				Help: "Total realtime events dropped for slow subscribers",
			},
		),
		RequestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siren_http_request_duration_seconds",
				Help:    "HTTP request latency by method, route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler returns the scrape endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordIncidentReported records a new incident report.
func (m *Metrics) RecordIncidentReported(category string) {
	if m == nil {
		return
	}
	m.IncidentsReported.WithLabelValues(category).Inc()
	m.OpenIncidents.Inc()
}

// RecordTransition records a status transition. Transitions into a terminal
// status decrement the open-incidents gauge.
func (m *Metrics) RecordTransition(status string, terminal bool) {
	if m == nil {
		return
	}
	m.IncidentTransitions.WithLabelValues(status).Inc()
	if terminal {
		m.OpenIncidents.Dec()
	}
}

// RecordUnitAssigned records a unit being dispatched to an incident.
func (m *Metrics) RecordUnitAssigned(category string) {
	if m == nil {
		return
	}
	m.UnitAssignments.WithLabelValues(category).Inc()
}

// RecordChatMessage records a chat message sent on an incident.
func (m *Metrics) RecordChatMessage(role string) {
	if m == nil {
		return
	}
	m.ChatMessages.WithLabelValues(role).Inc()
}

// StreamOpened records a websocket subscriber attaching.
func (m *Metrics) StreamOpened() {
	if m == nil {
		return
	}
	m.ActiveStreams.Inc()
}

// StreamClosed records a websocket subscriber detaching.
func (m *Metrics) StreamClosed() {
	if m == nil {
		return
	}
	m.ActiveStreams.Dec()
}

// RecordDroppedEvent records a realtime event discarded for a slow
// subscriber. The signature matches realtime.Hub's OnDrop callback.
func (m *Metrics) RecordDroppedEvent(incidentID string) {
	if m == nil {
		return
	}
	m.DroppedEvents.Inc()
}

// Middleware instruments HTTP requests with the RequestDuration histogram.
// The route label uses the chi route pattern so path parameters do not
// explode the label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
