//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirenhq/siren/pkg/models"
)

func TestUnitHandler_CreateAndGet(t *testing.T) {
	s, _ := setupTest(t)
	handler := NewUnitHandler(s)

	tests := []struct {
		name       string
		body       CreateUnitRequest
		wantStatus int
	}{
		{
			name:       "valid unit",
			body:       CreateUnitRequest{CallSign: "ENGINE-7", Category: "fire", Station: "Station 4"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate call sign",
			body:       CreateUnitRequest{CallSign: "ENGINE-7", Category: "fire"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing call sign",
			body:       CreateUnitRequest{Category: "fire"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid category",
			body:       CreateUnitRequest{CallSign: "TRUCK-1", Category: "trucking"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/units", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Create() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/", nil), nil, map[string]string{"callSign": "ENGINE-7"})
	w := httptest.NewRecorder()
	handler.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Get() status = %d, body = %s", w.Code, w.Body.String())
	}

	var unit models.Unit
	if err := json.Unmarshal(w.Body.Bytes(), &unit); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if unit.Station != "Station 4" || unit.Status != models.UnitAvailable {
		t.Errorf("Unexpected unit: %+v", unit)
	}
}

func TestUnitHandler_ListAvailable(t *testing.T) {
	s, _ := setupTest(t)
	handler := NewUnitHandler(s)

	createTestUnit(t, s, "ENGINE-7", models.CategoryFire)
	createTestUnit(t, s, "MEDIC-2", models.CategoryMedical)
	if err := s.UpdateUnitStatus(context.Background(), "MEDIC-2", models.UnitOutOfService); err != nil {
		t.Fatalf("Failed to update unit status: %v", err)
	}

	list := func(query string) []*models.Unit {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units"+query, nil)
		w := httptest.NewRecorder()
		handler.List(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("List() status = %d, body = %s", w.Code, w.Body.String())
		}
		var units []*models.Unit
		if err := json.Unmarshal(w.Body.Bytes(), &units); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		return units
	}

	if got := list(""); len(got) != 2 {
		t.Errorf("Expected 2 units, got %d", len(got))
	}
	if got := list("?available=true"); len(got) != 1 || got[0].CallSign != "ENGINE-7" {
		t.Errorf("Expected only ENGINE-7 available, got %d units", len(got))
	}
	if got := list("?available=true&category=medical"); len(got) != 0 {
		t.Errorf("Expected no available medical units, got %d", len(got))
	}
}

func TestUnitHandler_UpdateStatus(t *testing.T) {
	s, _ := setupTest(t)
	handler := NewUnitHandler(s)

	createTestUnit(t, s, "ENGINE-7", models.CategoryFire)

	tests := []struct {
		name       string
		callSign   string
		status     string
		wantStatus int
	}{
		{"take out of service", "ENGINE-7", "out_of_service", http.StatusOK},
		{"back to available", "ENGINE-7", "available", http.StatusOK},
		{"invalid status", "ENGINE-7", "parked", http.StatusBadRequest},
		{"unknown unit", "GHOST-1", "available", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(UnitStatusRequest{Status: tt.status})
			req := authedRequest(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)), nil, map[string]string{"callSign": tt.callSign})
			w := httptest.NewRecorder()

			handler.UpdateStatus(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("UpdateStatus() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUnitHandler_Delete(t *testing.T) {
	s, _ := setupTest(t)
	handler := NewUnitHandler(s)

	citizen := createTestUser(t, s, "reporter", "password123", string(models.RoleCitizen))
	dispatcher := createTestUser(t, s, "dispatch1", "password123", string(models.RoleDispatcher))
	unit := createTestUnit(t, s, "ENGINE-7", models.CategoryFire)

	incident := createTestIncident(t, s, citizen.ID, models.CategoryFire)
	if _, err := s.TransitionIncident(context.Background(), incident.ID, models.StatusAcknowledged, dispatcher.ID); err != nil {
		t.Fatalf("Failed to acknowledge: %v", err)
	}
	if _, err := s.AssignUnit(context.Background(), incident.ID, unit.ID, dispatcher.ID, false); err != nil {
		t.Fatalf("Failed to assign unit: %v", err)
	}

	del := func(callSign string) *httptest.ResponseRecorder {
		t.Helper()
		req := authedRequest(httptest.NewRequest(http.MethodDelete, "/", nil), nil, map[string]string{"callSign": callSign})
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		return w
	}

	if w := del("ENGINE-7"); w.Code != http.StatusConflict {
		t.Errorf("Delete() busy unit status = %d, want %d", w.Code, http.StatusConflict)
	}

	// Release the unit by cancelling the incident, then delete succeeds
	if _, err := s.TransitionIncident(context.Background(), incident.ID, models.StatusCancelled, dispatcher.ID); err != nil {
		t.Fatalf("Failed to cancel incident: %v", err)
	}
	if w := del("ENGINE-7"); w.Code != http.StatusNoContent {
		t.Errorf("Delete() status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w := del("ENGINE-7"); w.Code != http.StatusNotFound {
		t.Errorf("Delete() gone unit status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
