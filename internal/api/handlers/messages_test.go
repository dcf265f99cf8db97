//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/realtime"
)

func sendMessage(t *testing.T, handler *MessageHandler, user *models.User, incidentID, text string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(SendMessageRequest{Body: text})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)), claimsFor(user), map[string]string{"id": incidentID})
	w := httptest.NewRecorder()
	handler.Send(w, req)
	return w
}

func TestMessageHandler_ParticipantRules(t *testing.T) {
	s, _ := setupTest(t)
	handler := NewMessageHandler(s, nil, nil)

	alice := createTestUser(t, s, "alice", "password123", string(models.RoleCitizen))
	bob := createTestUser(t, s, "bob", "password123", string(models.RoleCitizen))
	dispatcher := createTestUser(t, s, "dispatch1", "password123", string(models.RoleDispatcher))
	unit := createTestUnit(t, s, "ENGINE-7", models.CategoryFire)
	otherUnit := createTestUnit(t, s, "MEDIC-2", models.CategoryMedical)

	crew := createTestUser(t, s, "crew1", "password123", string(models.RoleResponder))
	crew.UnitID = &unit.ID
	if err := s.UpdateUser(context.Background(), crew); err != nil {
		t.Fatalf("Failed to attach responder: %v", err)
	}
	otherCrew := createTestUser(t, s, "crew2", "password123", string(models.RoleResponder))
	otherCrew.UnitID = &otherUnit.ID
	if err := s.UpdateUser(context.Background(), otherCrew); err != nil {
		t.Fatalf("Failed to attach responder: %v", err)
	}

	incident := createTestIncident(t, s, alice.ID, models.CategoryFire)
	if _, err := s.TransitionIncident(context.Background(), incident.ID, models.StatusAcknowledged, dispatcher.ID); err != nil {
		t.Fatalf("Failed to acknowledge: %v", err)
	}
	if _, err := s.AssignUnit(context.Background(), incident.ID, unit.ID, dispatcher.ID, false); err != nil {
		t.Fatalf("Failed to assign unit: %v", err)
	}

	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{"reporter can chat", alice, http.StatusCreated},
		{"dispatcher can chat", dispatcher, http.StatusCreated},
		{"assigned crew can chat", crew, http.StatusCreated},
		{"other citizen cannot", bob, http.StatusForbidden},
		{"unassigned crew cannot", otherCrew, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sendMessage(t, handler, tt.user, incident.ID, "on my way")
			if w.Code != tt.wantStatus {
				t.Errorf("Send() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestMessageHandler_SendAndList(t *testing.T) {
	s, _ := setupTest(t)
	hub := realtime.NewHub(8)
	defer hub.Close()
	handler := NewMessageHandler(s, hub, nil)

	alice := createTestUser(t, s, "alice", "password123", string(models.RoleCitizen))
	dispatcher := createTestUser(t, s, "dispatch1", "password123", string(models.RoleDispatcher))
	incident := createTestIncident(t, s, alice.ID, models.CategoryMedical)

	sub := hub.Subscribe(incident.ID)
	defer hub.Unsubscribe(sub)

	if w := sendMessage(t, handler, alice, incident.ID, "my father collapsed"); w.Code != http.StatusCreated {
		t.Fatalf("Send() status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := sendMessage(t, handler, dispatcher, incident.ID, "an ambulance is on its way"); w.Code != http.StatusCreated {
		t.Fatalf("Send() status = %d, body = %s", w.Code, w.Body.String())
	}

	// The fan-out carries the message payload
	select {
	case event := <-sub.Events():
		if event.Type != realtime.EventChatMessage {
			t.Errorf("Expected chat.message event, got %s", event.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a published chat event")
	}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/", nil), claimsFor(alice), map[string]string{"id": incident.ID})
	w := httptest.NewRecorder()
	handler.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("List() status = %d, body = %s", w.Code, w.Body.String())
	}

	var messages []*models.ChatMessage
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].SenderUsername != "alice" || messages[0].SenderRole != string(models.RoleCitizen) {
		t.Errorf("Unexpected sender denormalization: %+v", messages[0])
	}

	// Limit applies
	req = authedRequest(httptest.NewRequest(http.MethodGet, "/?limit=1", nil), claimsFor(alice), map[string]string{"id": incident.ID})
	w = httptest.NewRecorder()
	handler.List(w, req)
	messages = nil
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("Expected 1 message with limit=1, got %d", len(messages))
	}

	// Malformed after timestamp
	req = authedRequest(httptest.NewRequest(http.MethodGet, "/?after=yesterday", nil), claimsFor(alice), map[string]string{"id": incident.ID})
	w = httptest.NewRecorder()
	handler.List(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("List() with bad after = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestMessageHandler_Validation(t *testing.T) {
	s, _ := setupTest(t)
	handler := NewMessageHandler(s, nil, nil)

	alice := createTestUser(t, s, "alice", "password123", string(models.RoleCitizen))
	dispatcher := createTestUser(t, s, "dispatch1", "password123", string(models.RoleDispatcher))
	incident := createTestIncident(t, s, alice.ID, models.CategoryPolice)

	if w := sendMessage(t, handler, alice, incident.ID, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Send() empty body = %d, want %d", w.Code, http.StatusBadRequest)
	}

	long := strings.Repeat("x", models.MaxMessageLength+1)
	if w := sendMessage(t, handler, alice, incident.ID, long); w.Code != http.StatusBadRequest {
		t.Errorf("Send() oversized body = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// Cancelled incident thread is read-only
	if _, err := s.TransitionIncident(context.Background(), incident.ID, models.StatusCancelled, dispatcher.ID); err != nil {
		t.Fatalf("Failed to cancel incident: %v", err)
	}
	if w := sendMessage(t, handler, alice, incident.ID, "hello?"); w.Code != http.StatusConflict {
		t.Errorf("Send() on cancelled incident = %d, want %d", w.Code, http.StatusConflict)
	}
}
