package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirenhq/siren/internal/api/auth"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/realtime"
	"github.com/sirenhq/siren/pkg/store"
)

// deadlineStore wraps a store and records whether the request context
// carried a deadline when the handler reached the storage layer.
type deadlineStore struct {
	store.Store
	login    chan bool
	incident chan bool
}

func (d *deadlineStore) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	_, ok := ctx.Deadline()
	d.login <- ok
	return d.Store.ValidateCredentials(ctx, username, password)
}

func (d *deadlineStore) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	_, ok := ctx.Deadline()
	d.incident <- ok
	return d.Store.GetIncident(ctx, id)
}

func TestRouterRequestTimeout(t *testing.T) {
	base, cfg := testSetup(t, 0)
	ds := &deadlineStore{
		Store:    base,
		login:    make(chan bool, 1),
		incident: make(chan bool, 1),
	}

	jwtService, err := auth.NewJWTService(auth.JWTConfig{Secret: cfg.JWT.Secret})
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}
	hub := realtime.NewHub(0)
	defer hub.Close()

	router := NewRouter(ds, jwtService, hub, nil, RealtimeConfig{}, DispatchConfig{})

	t.Run("REST routes run under a deadline", func(t *testing.T) {
		body := strings.NewReader(`{"username":"nobody","password":"wrong-password"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("login status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
		select {
		case hasDeadline := <-ds.login:
			if !hasDeadline {
				t.Error("login handler ran without a request deadline")
			}
		default:
			t.Fatal("login never reached the store")
		}
	})

	t.Run("websocket route is exempt", func(t *testing.T) {
		dispatcher := &models.User{
			ID:       "dispatch-id",
			Username: "dispatch1",
			Role:     string(models.RoleDispatcher),
		}
		pair, err := jwtService.GenerateTokenPair(dispatcher)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents/no-such-id/ws", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("stream status = %d, want %d", w.Code, http.StatusNotFound)
		}
		select {
		case hasDeadline := <-ds.incident:
			if hasDeadline {
				t.Error("stream handler ran under a request deadline")
			}
		default:
			t.Fatal("stream never reached the store")
		}
	})
}
