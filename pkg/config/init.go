package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig creates a configuration file at the default location.
//
// Parameters:
//   - force: Overwrite an existing configuration file
//
// Returns:
//   - string: Path of the created configuration file
//   - error: If the file already exists (without force) or cannot be written
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath creates a configuration file at the specified path.
//
// The generated file contains commented defaults for every section and a
// freshly generated random JWT secret.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	secret, err := generateJWTSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	content := fmt.Sprintf(configTemplate, secret)

	// 0600 because the file contains the JWT secret
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateJWTSecret returns a 64-character hex-encoded random secret.
func generateJWTSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const configTemplate = `# Siren Configuration File
#
# This file configures the Siren incident reporting and dispatch server.
# Environment variables with the SIREN_ prefix override values in this file.
# Example: SIREN_LOGGING_LEVEL=DEBUG

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: "INFO"
  # Output format: text or json
  format: "text"
  # Where logs are written: stdout, stderr, or a file path
  output: "stdout"

# Maximum time to wait for graceful shutdown
shutdown_timeout: 30s

database:
  # Backend type: sqlite (single-node, default) or postgres
  type: sqlite
  # sqlite:
  #   path: /var/lib/siren/siren.db
  # postgres:
  #   host: localhost
  #   port: 5432
  #   database: siren
  #   user: siren
  #   password: ""
  #   ssl_mode: disable

api:
  # HTTP port for the REST API and websocket event streams
  port: 8080
  # Prometheus metrics on GET /metrics
  metrics_enabled: true
  jwt:
    # HMAC signing key for JWT tokens (minimum 32 characters).
    # Can also be set via the SIREN_API_SECRET environment variable.
    secret: "%s"
    access_token_duration: 15m
    refresh_token_duration: 168h

realtime:
  # Per-subscriber event queue size for websocket streams
  event_queue_size: 32
  # Websocket keepalive interval
  ping_interval: 54s
  # Concurrent stream cap across all incidents (0 = unlimited)
  max_connections: 0

dispatch:
  # Priority assigned to reports that carry none (1 = most urgent)
  default_priority: 3
  # Move new reports straight to acknowledged (unstaffed intake)
  auto_acknowledge: false

telemetry:
  # OpenTelemetry distributed tracing (opt-in)
  enabled: false
  endpoint: "localhost:4317"
  insecure: true
  sample_rate: 1.0
  profiling:
    # Pyroscope continuous profiling (opt-in)
    enabled: false
    endpoint: "http://localhost:4040"

admin:
  # Initial admin user created by 'siren init'
  username: "admin"
`
