//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sirenhq/siren/pkg/models"
)

// TestPostgresBackend runs the store against a real PostgreSQL instance to
// catch dialect differences the in-memory SQLite tests cannot. Skipped in
// short mode since it pulls and boots a container.
func TestPostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("siren_test"),
		postgres.WithUsername("siren_test"),
		postgres.WithPassword("siren_test"),
		testcontainers.WithWaitStrategyAndDeadline(5*time.Minute,
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	store, err := New(&Config{
		Type: DatabaseTypePostgres,
		Postgres: PostgresConfig{
			Host:     host,
			Port:     port.Int(),
			Database: "siren_test",
			User:     "siren_test",
			Password: "siren_test",
			SSLMode:  "disable",
		},
	})
	if err != nil {
		t.Fatalf("failed to create postgres store: %v", err)
	}
	defer store.Close()

	if err := store.Healthcheck(ctx); err != nil {
		t.Fatalf("healthcheck: %v", err)
	}

	t.Run("full dispatch flow", func(t *testing.T) {
		reporterID, err := store.CreateUser(ctx, &models.User{
			Username: "pg-reporter", PasswordHash: "x", Role: "citizen",
		})
		if err != nil {
			t.Fatalf("create reporter: %v", err)
		}

		unitID, err := store.CreateUnit(ctx, &models.Unit{
			CallSign: "RESCUE-1", Category: models.CategoryDisaster,
		})
		if err != nil {
			t.Fatalf("create unit: %v", err)
		}

		incident := &models.Incident{
			Title:      "flooded underpass",
			Category:   models.CategoryDisaster,
			Priority:   1,
			ReporterID: reporterID,
		}
		if _, err := store.CreateIncident(ctx, incident); err != nil {
			t.Fatalf("create incident: %v", err)
		}
		if incident.Reference == "" {
			t.Fatal("reference not allocated")
		}

		if _, err := store.TransitionIncident(ctx, incident.ID, models.StatusAcknowledged, reporterID); err != nil {
			t.Fatalf("acknowledge: %v", err)
		}
		updated, err := store.AssignUnit(ctx, incident.ID, unitID, reporterID, false)
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if updated.Status != models.StatusDispatched {
			t.Errorf("status = %s, want dispatched", updated.Status)
		}

		// Duplicate detection must work on postgres error strings too.
		if _, err := store.CreateUnit(ctx, &models.Unit{
			CallSign: "RESCUE-1", Category: models.CategoryDisaster,
		}); err != models.ErrDuplicateUnit {
			t.Errorf("expected ErrDuplicateUnit, got %v", err)
		}
	})
}
