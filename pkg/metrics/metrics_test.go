package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func assertCounterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string, expected float64) {
	t.Helper()

	metricFamilies, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	for _, mf := range metricFamilies {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				actual := m.GetCounter().GetValue()
				if actual != expected {
					t.Fatalf("metric %s%v: expected %v, got %v", name, labels, expected, actual)
				}
				return
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
}

func assertGaugeValue(t *testing.T, reg *prometheus.Registry, name string, expected float64) {
	t.Helper()

	metricFamilies, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	for _, mf := range metricFamilies {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			actual := m.GetGauge().GetValue()
			if actual != expected {
				t.Fatalf("metric %s: expected %v, got %v", name, expected, actual)
			}
			return
		}
	}
	t.Fatalf("metric %s not found", name)
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestIncidentCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordIncidentReported("fire")
	m.RecordIncidentReported("fire")
	m.RecordIncidentReported("medical")

	assertCounterValue(t, reg, "siren_incidents_reported_total", map[string]string{"category": "fire"}, 2)
	assertCounterValue(t, reg, "siren_incidents_reported_total", map[string]string{"category": "medical"}, 1)
	assertGaugeValue(t, reg, "siren_open_incidents", 3)

	m.RecordTransition("dispatched", false)
	assertGaugeValue(t, reg, "siren_open_incidents", 3)

	m.RecordTransition("closed", true)
	m.RecordTransition("cancelled", true)
	assertCounterValue(t, reg, "siren_incident_transitions_total", map[string]string{"status": "dispatched"}, 1)
	assertGaugeValue(t, reg, "siren_open_incidents", 1)
}

func TestStreamAndChatMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.StreamOpened()
	m.StreamOpened()
	m.StreamClosed()
	assertGaugeValue(t, reg, "siren_active_streams", 1)

	m.RecordChatMessage("citizen")
	m.RecordChatMessage("dispatcher")
	m.RecordChatMessage("dispatcher")
	assertCounterValue(t, reg, "siren_chat_messages_total", map[string]string{"role": "dispatcher"}, 2)

	m.RecordDroppedEvent("inc-1")
	m.RecordDroppedEvent("inc-2")
	assertCounterValue(t, reg, "siren_dropped_events_total", nil, 2)

	m.RecordUnitAssigned("police")
	assertCounterValue(t, reg, "siren_unit_assignments_total", map[string]string{"category": "police"}, 1)
}

func TestNilMetricsNoOp(t *testing.T) {
	var m *Metrics

	// None of these should panic.
	m.RecordIncidentReported("fire")
	m.RecordTransition("closed", true)
	m.RecordUnitAssigned("fire")
	m.RecordChatMessage("citizen")
	m.StreamOpened()
	m.StreamClosed()
	m.RecordDroppedEvent("inc-1")

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/incidents/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/incidents/abc", nil))

	metricFamilies, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() != "siren_http_request_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matchLabels(metric, map[string]string{
				"method": "GET",
				"route":  "/incidents/{id}",
				"status": "200",
			}) {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("request duration metric with route pattern not found")
	}
}

func TestHandlerServesScrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.RecordIncidentReported("police")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from scrape endpoint, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected scrape output")
	}
}
