package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirenhq/siren/internal/api/auth"
	"github.com/sirenhq/siren/pkg/models"
)

func newJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "middleware-test-secret-0123456789abcdef",
	})
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	return svc
}

func tokenFor(t *testing.T, svc *auth.JWTService, role string, mustChange bool) string {
	t.Helper()
	pair, err := svc.GenerateTokenPair(&models.User{
		ID:                 "u-1",
		Username:           "tester",
		Role:               role,
		MustChangePassword: mustChange,
	})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return pair.AccessToken
}

// okHandler records whether the request got through and what claims it saw.
func okHandler(sawClaims *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaimsFromContext(r.Context()) != nil {
			*sawClaims = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth(t *testing.T) {
	svc := newJWTService(t)
	token := tokenFor(t, svc, "citizen", false)

	tests := []struct {
		name       string
		decorate   func(r *http.Request)
		wantStatus int
		wantClaims bool
	}{
		{
			"bearer header",
			func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			http.StatusOK, true,
		},
		{
			"access_token query param",
			func(r *http.Request) {
				q := r.URL.Query()
				q.Set("access_token", token)
				r.URL.RawQuery = q.Encode()
			},
			http.StatusOK, true,
		},
		{
			"missing token",
			func(r *http.Request) {},
			http.StatusUnauthorized, false,
		},
		{
			"malformed header",
			func(r *http.Request) { r.Header.Set("Authorization", "Basic dXNlcjpwYXNz") },
			http.StatusUnauthorized, false,
		},
		{
			"garbage token",
			func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			http.StatusUnauthorized, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawClaims bool
			handler := JWTAuth(svc)(okHandler(&sawClaims))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil)
			tt.decorate(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if sawClaims != tt.wantClaims {
				t.Errorf("sawClaims = %v, want %v", sawClaims, tt.wantClaims)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	svc := newJWTService(t)

	tests := []struct {
		name       string
		role       string
		required   []models.UserRole
		wantStatus int
	}{
		{"dispatcher allowed", "dispatcher", []models.UserRole{models.RoleDispatcher}, http.StatusOK},
		{"admin always allowed", "admin", []models.UserRole{models.RoleDispatcher}, http.StatusOK},
		{"citizen rejected", "citizen", []models.UserRole{models.RoleDispatcher}, http.StatusForbidden},
		{"responder in multi-role list", "responder", []models.UserRole{models.RoleDispatcher, models.RoleResponder}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawClaims bool
			handler := JWTAuth(svc)(RequireRole(tt.required...)(okHandler(&sawClaims)))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, tt.role, false))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	t.Run("no claims yields 401", func(t *testing.T) {
		var sawClaims bool
		handler := RequireRole(models.RoleDispatcher)(okHandler(&sawClaims))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := newJWTService(t)
	var sawClaims bool
	handler := JWTAuth(svc)(RequireAdmin()(okHandler(&sawClaims)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "dispatcher", false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("dispatcher passed admin gate: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "admin", false))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin rejected: %d", rec.Code)
	}
}

func TestRequirePasswordChange(t *testing.T) {
	svc := newJWTService(t)

	tests := []struct {
		name       string
		mustChange bool
		path       string
		wantStatus int
	}{
		{"normal user passes", false, "/api/v1/incidents", http.StatusOK},
		{"blocked until changed", true, "/api/v1/incidents", http.StatusForbidden},
		{"password endpoint always allowed", true, "/api/v1/users/me/password", http.StatusOK},
		{"trailing slash normalized", true, "/api/v1/users/me/password/", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawClaims bool
			handler := JWTAuth(svc)(
				RequirePasswordChange("/api/v1/users/me/password")(okHandler(&sawClaims)))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "citizen", tt.mustChange))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
