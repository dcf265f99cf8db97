//go:build integration

package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirenhq/siren/internal/api/auth"
	"github.com/sirenhq/siren/internal/api/middleware"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/store"
)

// setupTest creates an in-memory SQLite store and a JWT service shared by
// the handler tests.
func setupTest(t *testing.T) (store.Store, *auth.JWTService) {
	t.Helper()

	s, err := store.New(&store.Config{
		Type: store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "test-secret-key-that-is-at-least-32-characters-long",
		Issuer: "test",
	})
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}

	return s, jwtService
}

// createTestUser inserts a user with the given role and returns it.
func createTestUser(t *testing.T, s store.Store, username, password, role string) *models.User {
	t.Helper()

	passwordHash, err := models.HashPasswordWithCost(password, 4)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		Enabled:      true,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if _, err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// createTestUnit registers a unit and returns it.
func createTestUnit(t *testing.T, s store.Store, callSign string, category models.IncidentCategory) *models.Unit {
	t.Helper()

	unit := &models.Unit{
		ID:       uuid.New().String(),
		CallSign: callSign,
		Category: category,
		Status:   models.UnitAvailable,
	}
	if _, err := s.CreateUnit(context.Background(), unit); err != nil {
		t.Fatalf("Failed to create test unit: %v", err)
	}
	return unit
}

// createTestIncident files an incident for the given reporter and returns it
// with preloads populated.
func createTestIncident(t *testing.T, s store.Store, reporterID string, category models.IncidentCategory) *models.Incident {
	t.Helper()

	incident := &models.Incident{
		Category:   category,
		Priority:   models.DefaultPriority,
		Status:     models.StatusReported,
		Title:      "test incident",
		Address:    "1 Main St",
		ReporterID: reporterID,
		ReportedAt: time.Now().UTC(),
	}
	id, err := s.CreateIncident(context.Background(), incident)
	if err != nil {
		t.Fatalf("Failed to create test incident: %v", err)
	}
	created, err := s.GetIncident(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to fetch test incident: %v", err)
	}
	return created
}

// claimsFor builds access token claims matching a user record.
func claimsFor(user *models.User) *auth.Claims {
	claims := &auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if user.UnitID != nil {
		claims.UnitID = *user.UnitID
	}
	return claims
}

// authedRequest attaches claims and chi URL parameters to a request so
// handlers can be exercised without the full router.
func authedRequest(req *http.Request, claims *auth.Claims, params map[string]string) *http.Request {
	ctx := req.Context()
	if claims != nil {
		ctx = middleware.WithClaims(ctx, claims)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}
