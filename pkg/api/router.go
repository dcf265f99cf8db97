package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sirenhq/siren/internal/api/auth"
	"github.com/sirenhq/siren/internal/api/handlers"
	apiMiddleware "github.com/sirenhq/siren/internal/api/middleware"
	"github.com/sirenhq/siren/internal/logger"
	"github.com/sirenhq/siren/pkg/metrics"
	"github.com/sirenhq/siren/pkg/models"
	"github.com/sirenhq/siren/pkg/realtime"
	"github.com/sirenhq/siren/pkg/store"
)

// requestTimeout bounds every REST handler. The websocket stream is
// exempt because subscriptions stay open for the life of the incident.
const requestTimeout = 30 * time.Second

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout on the REST routes; the websocket stream is
//     long-lived and runs without one
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - GET /health/store - Store health detail (backend, latency)
//   - GET /metrics - Prometheus scrape endpoint (when enabled)
//   - POST /api/v1/auth/register - Citizen self-registration
//   - POST /api/v1/auth/login - User authentication
//   - POST /api/v1/auth/refresh - Token refresh
//   - GET /api/v1/auth/me - Current user info
//   - POST /api/v1/users/me/password - Change own password
//   - /api/v1/users/* - User management (admin only)
//   - /api/v1/incidents - Incident reporting and listing
//   - /api/v1/incidents/{id} - Incident detail and editing
//   - /api/v1/incidents/{id}/acknowledge|assign|status - Dispatch lifecycle (staff)
//   - /api/v1/incidents/{id}/events - Audit trail (staff)
//   - /api/v1/incidents/{id}/messages - Incident chat (participants)
//   - /api/v1/incidents/{id}/ws - Websocket event stream (participants)
//   - /api/v1/units/* - Unit management (staff read, admin write)
//   - /api/v1/settings/* - System settings management (admin only)
func NewRouter(s store.Store, jwtService *auth.JWTService, hub *realtime.Hub, m *metrics.Metrics, rt RealtimeConfig, dp DispatchConfig) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(m.Middleware)
	r.Use(middleware.Recoverer)

	healthHandler := handlers.NewHealthHandler(s)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
		r.Get("/store", healthHandler.Store)
	})

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authHandler := handlers.NewAuthHandler(s, jwtService)
	userHandler := handlers.NewUserHandler(s)
	incidentHandler := handlers.NewIncidentHandler(s, hub, m, handlers.DispatchPolicy{
		DefaultPriority: dp.DefaultPriority,
		AutoAcknowledge: dp.AutoAcknowledge,
	})
	messageHandler := handlers.NewMessageHandler(s, hub, m)
	unitHandler := handlers.NewUnitHandler(s)
	settingsHandler := handlers.NewSettingsHandler(s)
	streamHandler := handlers.NewStreamHandler(s, hub, m, handlers.StreamOptions{
		PingInterval:   rt.PingInterval,
		MaxConnections: rt.MaxConnections,
	})

	staffOnly := apiMiddleware.RequireRole(models.RoleDispatcher, models.RoleResponder)
	dispatchOnly := apiMiddleware.RequireRole(models.RoleDispatcher)
	timed := middleware.Timeout(requestTimeout)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes - mostly unauthenticated
		r.Route("/auth", func(r chi.Router) {
			r.Use(timed)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.JWTAuth(jwtService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Password change - authenticated but exempt from MustChangePassword check
		// This allows users who must change their password to actually change it
		r.Route("/users/me/password", func(r chi.Router) {
			r.Use(timed)
			r.Use(apiMiddleware.JWTAuth(jwtService))
			r.Post("/", userHandler.ChangeOwnPassword)
		})

		// Protected routes - require authentication and password change complete
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(jwtService))
			r.Use(apiMiddleware.RequirePasswordChange("/api/v1/users/me/password"))

			// User management
			r.Route("/users", func(r chi.Router) {
				r.Use(timed)

				// Self-access allowed - handler does its own authorization
				r.Get("/{username}", userHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin())

					r.Post("/", userHandler.Create)
					r.Get("/", userHandler.List)
					r.Put("/{username}", userHandler.Update)
					r.Delete("/{username}", userHandler.Delete)
					r.Post("/{username}/password", userHandler.ResetPassword)
				})
			})

			// Incident reporting and dispatch
			r.Route("/incidents", func(r chi.Router) {
				// The event stream outlives the request timeout, so
				// it is the one route registered outside the timed
				// groups. Participant check in the handler.
				r.Get("/{id}/ws", streamHandler.Serve)

				r.Group(func(r chi.Router) {
					r.Use(timed)

					// Reporting and reading do their own per-role scoping
					r.Post("/", incidentHandler.Report)
					r.Get("/", incidentHandler.List)
					r.Get("/{id}", incidentHandler.Get)

					// Chat - participant check in the handler
					r.Get("/{id}/messages", messageHandler.List)
					r.Post("/{id}/messages", messageHandler.Send)

					// Lifecycle operations - dispatch staff
					r.Group(func(r chi.Router) {
						r.Use(staffOnly)
						r.Post("/{id}/status", incidentHandler.UpdateStatus)
						r.Get("/{id}/events", incidentHandler.Events)
					})
					r.Group(func(r chi.Router) {
						r.Use(dispatchOnly)
						r.Put("/{id}", incidentHandler.Update)
						r.Post("/{id}/acknowledge", incidentHandler.Acknowledge)
						r.Post("/{id}/assign", incidentHandler.Assign)
					})
				})
			})

			// Unit management - staff read, admin write
			r.Route("/units", func(r chi.Router) {
				r.Use(timed)

				r.Group(func(r chi.Router) {
					r.Use(staffOnly)
					r.Get("/", unitHandler.List)
					r.Get("/{callSign}", unitHandler.Get)
					r.Post("/{callSign}/status", unitHandler.UpdateStatus)
				})

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin())
					r.Post("/", unitHandler.Create)
					r.Put("/{callSign}", unitHandler.Update)
					r.Delete("/{callSign}", unitHandler.Delete)
				})
			})

			// System settings (admin only)
			r.Route("/settings", func(r chi.Router) {
				r.Use(timed)
				r.Use(apiMiddleware.RequireAdmin())

				r.Get("/", settingsHandler.List)
				r.Get("/{key}", settingsHandler.Get)
				r.Put("/{key}", settingsHandler.Set)
				r.Delete("/{key}", settingsHandler.Delete)
			})
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/") || path == "/metrics"
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck and scrape requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyClientIP, r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyStatus, ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
