package api

import (
	"os"
	"time"

	"github.com/sirenhq/siren/internal/logger"
)

// EnvAPISecret is the name of the environment variable for the JWT
// authentication signing secret.
const EnvAPISecret = "SIREN_API_SECRET"

// APIConfig configures the REST API HTTP server.
//
// The API server carries the whole product surface: incident intake and
// dispatch, chat, websocket event streams, user and unit management, and
// health probes.
type APIConfig struct {
	// Port is the HTTP port for the API endpoints.
	// Default: 8080
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means there is no timeout.
	// Default: 10s
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Websocket connections manage their own deadlines once the
	// connection is hijacked.
	// Default: 10s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If zero, the value of ReadTimeout is used.
	// Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// MetricsEnabled exposes Prometheus metrics on GET /metrics.
	// Default: true (disable by setting metrics_enabled: false)
	MetricsEnabled *bool `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`

	// JWT configures JWT authentication for API endpoints.
	JWT JWTConfig `mapstructure:"jwt" yaml:"jwt"`
}

// RealtimeConfig tunes the per-incident websocket event streams.
type RealtimeConfig struct {
	// EventQueueSize is the per-subscriber buffer for websocket event
	// streams. Subscribers falling this far behind have events dropped.
	// Default: 32
	EventQueueSize int `mapstructure:"event_queue_size" validate:"omitempty,min=1" yaml:"event_queue_size"`

	// PingInterval is the websocket keepalive interval. Peers that miss
	// a pong within a small grace window past the interval are dropped.
	// Default: 54s
	PingInterval time.Duration `mapstructure:"ping_interval" yaml:"ping_interval"`

	// MaxConnections caps concurrent websocket streams across all
	// incidents. Zero means unlimited.
	MaxConnections int `mapstructure:"max_connections" validate:"omitempty,min=1" yaml:"max_connections"`
}

// applyDefaults fills in zero values with sensible defaults.
func (c *RealtimeConfig) applyDefaults() {
	if c.EventQueueSize == 0 {
		c.EventQueueSize = 32
	}
	if c.PingInterval == 0 {
		c.PingInterval = 54 * time.Second
	}
}

// DispatchConfig sets intake policy for newly reported incidents.
type DispatchConfig struct {
	// DefaultPriority is assigned to reports that carry no priority of
	// their own. Citizen reports always start here.
	// Default: 3
	DefaultPriority int `mapstructure:"default_priority" validate:"omitempty,min=1,max=5" yaml:"default_priority"`

	// AutoAcknowledge immediately moves new reports to acknowledged,
	// for deployments without a staffed intake desk.
	// Default: false
	AutoAcknowledge bool `mapstructure:"auto_acknowledge" yaml:"auto_acknowledge"`
}

// applyDefaults fills in zero values with sensible defaults.
func (c *DispatchConfig) applyDefaults() {
	if c.DefaultPriority == 0 {
		c.DefaultPriority = 3
	}
}

// JWTConfig configures JWT token generation and validation.
type JWTConfig struct {
	// Secret is the HMAC signing key for JWT tokens.
	// Must be at least 32 characters long.
	// Can also be set via SIREN_API_SECRET environment variable.
	// Environment variable takes precedence over config file.
	Secret string `mapstructure:"secret" yaml:"secret"`

	// AccessTokenDuration is the lifetime of access tokens.
	// Default: 15m
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration" yaml:"access_token_duration"`

	// RefreshTokenDuration is the lifetime of refresh tokens.
	// Default: 168h (7 days)
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration" yaml:"refresh_token_duration"`
}

// applyDefaults fills in zero values with sensible defaults.
func (c *APIConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.JWT.AccessTokenDuration == 0 {
		c.JWT.AccessTokenDuration = 15 * time.Minute
	}
	if c.JWT.RefreshTokenDuration == 0 {
		c.JWT.RefreshTokenDuration = 7 * 24 * time.Hour
	}
}

// metricsEnabled reports whether the metrics endpoint should be served.
func (c *APIConfig) metricsEnabled() bool {
	return c.MetricsEnabled == nil || *c.MetricsEnabled
}

// GetJWTSecret returns the JWT secret, preferring the environment variable.
// Returns empty string if neither env var nor config secret is set.
// Logs a warning if the environment variable overrides a config file value.
func (c *APIConfig) GetJWTSecret() string {
	envSecret := os.Getenv(EnvAPISecret)
	if envSecret != "" {
		if c.JWT.Secret != "" && c.JWT.Secret != envSecret {
			logger.Warn("JWT secret from environment variable overrides config file value",
				"env_var", EnvAPISecret)
		}
		return envSecret
	}
	return c.JWT.Secret
}

// HasJWTSecret returns whether a JWT secret is configured.
func (c *APIConfig) HasJWTSecret() bool {
	return c.GetJWTSecret() != ""
}
