//go:build integration

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirenhq/siren/pkg/models"
)

// createTestStore creates an in-memory SQLite store for testing.
func createTestStore(t *testing.T) *GORMStore {
	t.Helper()
	store, err := New(&Config{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

// createTestUser inserts a user and returns its ID.
func createTestUser(t *testing.T, s *GORMStore, username, role string) string {
	t.Helper()
	id, err := s.CreateUser(context.Background(), &models.User{
		Username:     username,
		PasswordHash: "hashed",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return id
}

// createTestIncident files an incident and returns it.
func createTestIncident(t *testing.T, s *GORMStore, reporterID string, category models.IncidentCategory) *models.Incident {
	t.Helper()
	incident := &models.Incident{
		Title:      "test incident",
		Category:   category,
		Priority:   2,
		ReporterID: reporterID,
	}
	if _, err := s.CreateIncident(context.Background(), incident); err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}
	return incident
}

func TestNew(t *testing.T) {
	t.Run("creates in-memory store", func(t *testing.T) {
		store := createTestStore(t)
		defer store.Close()

		if err := store.Healthcheck(context.Background()); err != nil {
			t.Errorf("healthcheck failed: %v", err)
		}
	})

	t.Run("invalid config returns error", func(t *testing.T) {
		_, err := New(&Config{Type: "invalid"})
		if err == nil {
			t.Error("expected error for invalid config")
		}
	})
}

func TestUserOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create and get user", func(t *testing.T) {
		id := createTestUser(t, store, "maria", "citizen")
		if id == "" {
			t.Fatal("expected non-empty user ID")
		}

		user, err := store.GetUser(ctx, "maria")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if user.ID != id || user.Role != "citizen" {
			t.Errorf("unexpected user: %+v", user)
		}

		byID, err := store.GetUserByID(ctx, id)
		if err != nil {
			t.Fatalf("failed to get user by id: %v", err)
		}
		if byID.Username != "maria" {
			t.Errorf("expected maria, got %q", byID.Username)
		}
	})

	t.Run("duplicate user fails", func(t *testing.T) {
		_, err := store.CreateUser(ctx, &models.User{Username: "maria", PasswordHash: "x"})
		if !errors.Is(err, models.ErrDuplicateUser) {
			t.Errorf("expected ErrDuplicateUser, got %v", err)
		}
	})

	t.Run("get missing user", func(t *testing.T) {
		_, err := store.GetUser(ctx, "ghost")
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("validate credentials", func(t *testing.T) {
		hash, err := models.HashPasswordWithCost("dispatch-pass-1", 4)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if _, err := store.CreateUser(ctx, &models.User{
			Username:     "ops1",
			PasswordHash: hash,
			Role:         "dispatcher",
			Enabled:      true,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}

		user, err := store.ValidateCredentials(ctx, "ops1", "dispatch-pass-1")
		if err != nil {
			t.Fatalf("expected valid credentials: %v", err)
		}
		if user.Username != "ops1" {
			t.Errorf("unexpected user %q", user.Username)
		}

		if _, err := store.ValidateCredentials(ctx, "ops1", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := store.ValidateCredentials(ctx, "ghost", "whatever"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
		}
	})

	t.Run("disabled user cannot authenticate", func(t *testing.T) {
		hash, _ := models.HashPasswordWithCost("disabled-pass", 4)
		id, err := store.CreateUser(ctx, &models.User{
			Username: "benched", PasswordHash: hash, Role: "responder",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		user, _ := store.GetUserByID(ctx, id)
		user.Enabled = false
		if err := store.UpdateUser(ctx, user); err != nil {
			t.Fatalf("update: %v", err)
		}

		if _, err := store.ValidateCredentials(ctx, "benched", "disabled-pass"); !errors.Is(err, models.ErrUserDisabled) {
			t.Errorf("expected ErrUserDisabled, got %v", err)
		}
	})

	t.Run("update password clears must change flag", func(t *testing.T) {
		if err := store.UpdatePassword(ctx, "ops1", "new-hash"); err != nil {
			t.Fatalf("update password: %v", err)
		}
		user, _ := store.GetUser(ctx, "ops1")
		if user.PasswordHash != "new-hash" || user.MustChangePassword {
			t.Errorf("password update not applied: %+v", user)
		}

		if err := store.UpdatePassword(ctx, "ghost", "x"); !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("update last login", func(t *testing.T) {
		ts := time.Now().Truncate(time.Second)
		if err := store.UpdateLastLogin(ctx, "ops1", ts); err != nil {
			t.Fatalf("update last login: %v", err)
		}
		user, _ := store.GetUser(ctx, "ops1")
		if user.LastLogin == nil {
			t.Fatal("last login not recorded")
		}
	})

	t.Run("delete user", func(t *testing.T) {
		createTestUser(t, store, "deleteme", "citizen")
		if err := store.DeleteUser(ctx, "deleteme"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := store.DeleteUser(ctx, "deleteme"); !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestEnsureAdminUser(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	password, err := store.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if password == "" {
		t.Fatal("expected generated password on first run")
	}

	admin, err := store.GetUser(ctx, models.AdminUsername)
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if !admin.IsAdmin() || !admin.MustChangePassword {
		t.Errorf("unexpected admin user: %+v", admin)
	}

	// Second call is a no-op.
	password, err = store.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
	if password != "" {
		t.Error("expected empty password when admin exists")
	}
}

func TestIncidentOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	reporterID := createTestUser(t, store, "reporter", "citizen")
	dispatcherID := createTestUser(t, store, "dispatch", "dispatcher")

	t.Run("create allocates sequential references", func(t *testing.T) {
		first := createTestIncident(t, store, reporterID, models.CategoryFire)
		second := createTestIncident(t, store, reporterID, models.CategoryMedical)

		day := time.Now().Format("20060102")
		wantFirst := fmt.Sprintf("SIR-%s-0001", day)
		wantSecond := fmt.Sprintf("SIR-%s-0002", day)
		if first.Reference != wantFirst {
			t.Errorf("first reference = %s, want %s", first.Reference, wantFirst)
		}
		if second.Reference != wantSecond {
			t.Errorf("second reference = %s, want %s", second.Reference, wantSecond)
		}
		if first.Status != models.StatusReported {
			t.Errorf("initial status = %s", first.Status)
		}
	})

	t.Run("create records reported event", func(t *testing.T) {
		incident := createTestIncident(t, store, reporterID, models.CategoryPolice)
		events, err := store.ListIncidentEvents(ctx, incident.ID)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if len(events) != 1 || events[0].Type != models.EventReported {
			t.Errorf("unexpected events: %+v", events)
		}
	})

	t.Run("custom reference prefix", func(t *testing.T) {
		if err := store.SetSetting(ctx, models.SettingReferencePrefix, "EMG"); err != nil {
			t.Fatalf("set setting: %v", err)
		}
		defer store.DeleteSetting(ctx, models.SettingReferencePrefix)

		incident := createTestIncident(t, store, reporterID, models.CategoryDisaster)
		if !strings.HasPrefix(incident.Reference, "EMG-") {
			t.Errorf("reference = %s, want EMG prefix", incident.Reference)
		}
	})

	t.Run("get by reference", func(t *testing.T) {
		incident := createTestIncident(t, store, reporterID, models.CategoryFire)
		found, err := store.GetIncidentByReference(ctx, incident.Reference)
		if err != nil {
			t.Fatalf("get by reference: %v", err)
		}
		if found.ID != incident.ID {
			t.Errorf("wrong incident: %s", found.ID)
		}
		if found.Reporter == nil || found.Reporter.Username != "reporter" {
			t.Error("reporter not preloaded")
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		_, err := store.CreateIncident(ctx, &models.Incident{
			Title: "no category", ReporterID: reporterID, Category: "bogus",
		})
		if err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("lifecycle transitions with audit trail", func(t *testing.T) {
		incident := createTestIncident(t, store, reporterID, models.CategoryFire)

		updated, err := store.TransitionIncident(ctx, incident.ID, models.StatusAcknowledged, dispatcherID)
		if err != nil {
			t.Fatalf("acknowledge: %v", err)
		}
		if updated.Status != models.StatusAcknowledged || updated.AcknowledgedAt == nil {
			t.Errorf("acknowledge not applied: %+v", updated)
		}

		// Illegal jump is rejected.
		if _, err := store.TransitionIncident(ctx, incident.ID, models.StatusClosed, dispatcherID); !errors.Is(err, models.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}

		events, _ := store.ListIncidentEvents(ctx, incident.ID)
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		last := events[len(events)-1]
		if last.Type != models.EventStatusChanged ||
			last.FromStatus != string(models.StatusReported) ||
			last.ToStatus != string(models.StatusAcknowledged) {
			t.Errorf("unexpected audit event: %+v", last)
		}
	})

	t.Run("transition missing incident", func(t *testing.T) {
		_, err := store.TransitionIncident(ctx, "no-such-id", models.StatusAcknowledged, dispatcherID)
		if !errors.Is(err, models.ErrIncidentNotFound) {
			t.Errorf("expected ErrIncidentNotFound, got %v", err)
		}
	})

	t.Run("update editable fields", func(t *testing.T) {
		incident := createTestIncident(t, store, reporterID, models.CategoryMedical)

		incident.Title = "updated title"
		incident.Priority = 1
		if err := store.UpdateIncident(ctx, incident, dispatcherID); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, _ := store.GetIncident(ctx, incident.ID)
		if got.Title != "updated title" || got.Priority != 1 {
			t.Errorf("update not applied: %+v", got)
		}

		events, _ := store.ListIncidentEvents(ctx, incident.ID)
		var detail string
		for _, e := range events {
			if e.Type == models.EventPriorityChanged {
				detail = e.Detail
			}
		}
		if detail == "" {
			t.Fatal("priority change not audited")
		}
		if detail != "priority 2 -> 1" {
			t.Errorf("audit detail = %q, want %q", detail, "priority 2 -> 1")
		}
	})

	t.Run("update terminal incident rejected", func(t *testing.T) {
		incident := createTestIncident(t, store, reporterID, models.CategoryMedical)
		if _, err := store.TransitionIncident(ctx, incident.ID, models.StatusCancelled, dispatcherID); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		incident.Title = "too late"
		if err := store.UpdateIncident(ctx, incident, dispatcherID); !errors.Is(err, models.ErrIncidentClosed) {
			t.Errorf("expected ErrIncidentClosed, got %v", err)
		}
	})
}

func TestListIncidents(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	alice := createTestUser(t, store, "alice", "citizen")
	bob := createTestUser(t, store, "bob", "citizen")
	dispatcher := createTestUser(t, store, "ops", "dispatcher")

	createTestIncident(t, store, alice, models.CategoryFire)
	createTestIncident(t, store, alice, models.CategoryPolice)
	createTestIncident(t, store, bob, models.CategoryFire)

	cancelled := createTestIncident(t, store, bob, models.CategoryMedical)
	if _, err := store.TransitionIncident(ctx, cancelled.ID, models.StatusCancelled, dispatcher); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	tests := []struct {
		name   string
		filter IncidentFilter
		want   int
	}{
		{"all", IncidentFilter{}, 4},
		{"by category", IncidentFilter{Category: models.CategoryFire}, 2},
		{"by reporter", IncidentFilter{ReporterID: alice}, 2},
		{"open only", IncidentFilter{OpenOnly: true}, 3},
		{"by status", IncidentFilter{Status: models.StatusCancelled}, 1},
		{"limit", IncidentFilter{Limit: 2}, 2},
		{"min priority", IncidentFilter{MinPriority: 2}, 4},
		{"no match", IncidentFilter{Category: models.CategoryDisaster}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incidents, err := store.ListIncidents(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(incidents) != tt.want {
				t.Errorf("got %d incidents, want %d", len(incidents), tt.want)
			}
		})
	}

	t.Run("ordered most recent first", func(t *testing.T) {
		incidents, err := store.ListIncidents(ctx, IncidentFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for i := 1; i < len(incidents); i++ {
			if incidents[i].ReportedAt.After(incidents[i-1].ReportedAt) {
				t.Error("incidents not ordered by reported_at DESC")
			}
		}
	})
}

func TestUnitOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create and get unit", func(t *testing.T) {
		id, err := store.CreateUnit(ctx, &models.Unit{
			CallSign: "ENGINE-7",
			Category: models.CategoryFire,
			Station:  "Station 3",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		unit, err := store.GetUnit(ctx, "ENGINE-7")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if unit.ID != id || unit.Status != models.UnitAvailable {
			t.Errorf("unexpected unit: %+v", unit)
		}
	})

	t.Run("duplicate call sign fails", func(t *testing.T) {
		_, err := store.CreateUnit(ctx, &models.Unit{
			CallSign: "ENGINE-7", Category: models.CategoryFire,
		})
		if !errors.Is(err, models.ErrDuplicateUnit) {
			t.Errorf("expected ErrDuplicateUnit, got %v", err)
		}
	})

	t.Run("list available by category", func(t *testing.T) {
		if _, err := store.CreateUnit(ctx, &models.Unit{
			CallSign: "MEDIC-2", Category: models.CategoryMedical,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := store.UpdateUnitStatus(ctx, "MEDIC-2", models.UnitOutOfService); err != nil {
			t.Fatalf("update status: %v", err)
		}

		fire, err := store.ListAvailableUnits(ctx, models.CategoryFire)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(fire) != 1 || fire[0].CallSign != "ENGINE-7" {
			t.Errorf("unexpected available fire units: %+v", fire)
		}

		medical, err := store.ListAvailableUnits(ctx, models.CategoryMedical)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(medical) != 0 {
			t.Errorf("out-of-service unit listed as available: %+v", medical)
		}
	})

	t.Run("update unit status missing unit", func(t *testing.T) {
		err := store.UpdateUnitStatus(ctx, "GHOST-1", models.UnitAvailable)
		if !errors.Is(err, models.ErrUnitNotFound) {
			t.Errorf("expected ErrUnitNotFound, got %v", err)
		}
	})

	t.Run("delete unit detaches responders", func(t *testing.T) {
		unitID, err := store.CreateUnit(ctx, &models.Unit{
			CallSign: "PATROL-9", Category: models.CategoryPolice,
		})
		if err != nil {
			t.Fatalf("create unit: %v", err)
		}

		responderID, err := store.CreateUser(ctx, &models.User{
			Username: "officer", PasswordHash: "x", Role: "responder", UnitID: &unitID,
		})
		if err != nil {
			t.Fatalf("create responder: %v", err)
		}

		if err := store.DeleteUnit(ctx, "PATROL-9"); err != nil {
			t.Fatalf("delete: %v", err)
		}

		responder, _ := store.GetUserByID(ctx, responderID)
		if responder.UnitID != nil {
			t.Error("responder still attached to deleted unit")
		}
	})
}

func TestAssignUnit(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	reporterID := createTestUser(t, store, "reporter", "citizen")
	dispatcherID := createTestUser(t, store, "ops", "dispatcher")

	unitID, err := store.CreateUnit(ctx, &models.Unit{
		CallSign: "ENGINE-1", Category: models.CategoryFire,
	})
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}

	incident := createTestIncident(t, store, reporterID, models.CategoryFire)
	if _, err := store.TransitionIncident(ctx, incident.ID, models.StatusAcknowledged, dispatcherID); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	t.Run("assign dispatches incident and unit", func(t *testing.T) {
		updated, err := store.AssignUnit(ctx, incident.ID, unitID, dispatcherID, false)
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if updated.Status != models.StatusDispatched {
			t.Errorf("status = %s, want dispatched", updated.Status)
		}
		if updated.AssignedUnitID == nil || *updated.AssignedUnitID != unitID {
			t.Error("unit not recorded on incident")
		}
		if updated.AssignedUnit == nil || updated.AssignedUnit.CallSign != "ENGINE-1" {
			t.Error("assigned unit not preloaded")
		}

		unit, _ := store.GetUnitByID(ctx, unitID)
		if unit.Status != models.UnitEnRoute {
			t.Errorf("unit status = %s, want en_route", unit.Status)
		}
	})

	t.Run("busy unit cannot be assigned twice", func(t *testing.T) {
		other := createTestIncident(t, store, reporterID, models.CategoryFire)
		if _, err := store.TransitionIncident(ctx, other.ID, models.StatusAcknowledged, dispatcherID); err != nil {
			t.Fatalf("acknowledge: %v", err)
		}

		_, err := store.AssignUnit(ctx, other.ID, unitID, dispatcherID, false)
		if !errors.Is(err, models.ErrUnitUnavailable) {
			t.Errorf("expected ErrUnitUnavailable, got %v", err)
		}
	})

	t.Run("on scene mirrors onto unit", func(t *testing.T) {
		updated, err := store.TransitionIncident(ctx, incident.ID, models.StatusOnScene, dispatcherID)
		if err != nil {
			t.Fatalf("on scene: %v", err)
		}
		if updated.Status != models.StatusOnScene {
			t.Errorf("status = %s", updated.Status)
		}
		unit, _ := store.GetUnitByID(ctx, unitID)
		if unit.Status != models.UnitOnScene {
			t.Errorf("unit status = %s, want on_scene", unit.Status)
		}
	})

	t.Run("busy unit cannot be deleted", func(t *testing.T) {
		err := store.DeleteUnit(ctx, "ENGINE-1")
		if !errors.Is(err, models.ErrUnitAlreadyOnCall) {
			t.Errorf("expected ErrUnitAlreadyOnCall, got %v", err)
		}
	})

	t.Run("resolving releases unit", func(t *testing.T) {
		if _, err := store.TransitionIncident(ctx, incident.ID, models.StatusResolved, dispatcherID); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		unit, _ := store.GetUnitByID(ctx, unitID)
		if unit.Status != models.UnitAvailable {
			t.Errorf("unit status = %s, want available after resolve", unit.Status)
		}

		countReleases := func() int {
			events, _ := store.ListIncidentEvents(ctx, incident.ID)
			n := 0
			for _, e := range events {
				if e.Type == models.EventUnitReleased {
					n++
				}
			}
			return n
		}
		if got := countReleases(); got != 1 {
			t.Errorf("release events = %d, want 1", got)
		}

		if _, err := store.TransitionIncident(ctx, incident.ID, models.StatusClosed, dispatcherID); err != nil {
			t.Fatalf("close: %v", err)
		}
		if got := countReleases(); got != 1 {
			t.Errorf("release events after close = %d, want 1", got)
		}
	})

	t.Run("assign acknowledges reported incident", func(t *testing.T) {
		fresh := createTestIncident(t, store, reporterID, models.CategoryFire)
		ladderID, err := store.CreateUnit(ctx, &models.Unit{
			CallSign: "LADDER-2", Category: models.CategoryFire,
		})
		if err != nil {
			t.Fatalf("create unit: %v", err)
		}

		updated, err := store.AssignUnit(ctx, fresh.ID, ladderID, dispatcherID, false)
		if err != nil {
			t.Fatalf("assign from reported: %v", err)
		}
		if updated.Status != models.StatusDispatched {
			t.Errorf("status = %s, want dispatched", updated.Status)
		}
		if updated.AcknowledgedAt == nil {
			t.Error("acknowledged timestamp not stamped")
		}

		events, _ := store.ListIncidentEvents(ctx, fresh.ID)
		var steps []string
		for _, e := range events {
			if e.Type == models.EventStatusChanged {
				steps = append(steps, e.FromStatus+"->"+e.ToStatus)
			}
		}
		want := []string{"reported->acknowledged", "acknowledged->dispatched"}
		if len(steps) != len(want) || steps[0] != want[0] || steps[1] != want[1] {
			t.Errorf("status events = %v, want %v", steps, want)
		}
	})

	t.Run("force dispatches busy unit", func(t *testing.T) {
		units, err := store.ListUnits(ctx)
		if err != nil {
			t.Fatalf("list units: %v", err)
		}
		var ladder *models.Unit
		for _, u := range units {
			if u.CallSign == "LADDER-2" {
				ladder = u
			}
		}
		if ladder == nil || ladder.Status != models.UnitEnRoute {
			t.Fatal("expected LADDER-2 en route from previous assignment")
		}

		urgent := createTestIncident(t, store, reporterID, models.CategoryFire)
		if _, err := store.AssignUnit(ctx, urgent.ID, ladder.ID, dispatcherID, false); !errors.Is(err, models.ErrUnitUnavailable) {
			t.Fatalf("expected ErrUnitUnavailable without force, got %v", err)
		}

		updated, err := store.AssignUnit(ctx, urgent.ID, ladder.ID, dispatcherID, true)
		if err != nil {
			t.Fatalf("force assign: %v", err)
		}
		if updated.Status != models.StatusDispatched {
			t.Errorf("status = %s, want dispatched", updated.Status)
		}
		if updated.AssignedUnitID == nil || *updated.AssignedUnitID != ladder.ID {
			t.Error("unit not recorded on incident")
		}
	})

	t.Run("assign to unknown incident", func(t *testing.T) {
		_, err := store.AssignUnit(ctx, "no-such-id", unitID, dispatcherID, false)
		if !errors.Is(err, models.ErrIncidentNotFound) {
			t.Errorf("expected ErrIncidentNotFound, got %v", err)
		}
	})
}

func TestMessageOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	reporterID := createTestUser(t, store, "reporter", "citizen")
	incident := createTestIncident(t, store, reporterID, models.CategoryPolice)

	t.Run("create and list ordered", func(t *testing.T) {
		for i, body := range []string{"first", "second", "third"} {
			_, err := store.CreateMessage(ctx, &models.ChatMessage{
				IncidentID:     incident.ID,
				SenderID:       reporterID,
				SenderUsername: "reporter",
				SenderRole:     "citizen",
				Body:           body,
				CreatedAt:      time.Now().Add(time.Duration(i) * time.Millisecond),
			})
			if err != nil {
				t.Fatalf("create message %d: %v", i, err)
			}
		}

		messages, err := store.ListMessages(ctx, incident.ID, MessageFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(messages) != 3 {
			t.Fatalf("got %d messages, want 3", len(messages))
		}
		if messages[0].Body != "first" || messages[2].Body != "third" {
			t.Errorf("messages out of order: %+v", messages)
		}
	})

	t.Run("filter after timestamp", func(t *testing.T) {
		all, _ := store.ListMessages(ctx, incident.ID, MessageFilter{})
		after := all[0].CreatedAt

		recent, err := store.ListMessages(ctx, incident.ID, MessageFilter{After: after})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(recent) != 2 {
			t.Errorf("got %d messages after first, want 2", len(recent))
		}
	})

	t.Run("limit", func(t *testing.T) {
		limited, err := store.ListMessages(ctx, incident.ID, MessageFilter{Limit: 1})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(limited) != 1 {
			t.Errorf("got %d messages, want 1", len(limited))
		}
	})

	t.Run("unknown incident", func(t *testing.T) {
		_, err := store.CreateMessage(ctx, &models.ChatMessage{
			IncidentID: "no-such-id", SenderID: reporterID, Body: "hello",
		})
		if !errors.Is(err, models.ErrIncidentNotFound) {
			t.Errorf("expected ErrIncidentNotFound, got %v", err)
		}

		if _, err := store.ListMessages(ctx, "no-such-id", MessageFilter{}); !errors.Is(err, models.ErrIncidentNotFound) {
			t.Errorf("expected ErrIncidentNotFound, got %v", err)
		}
	})
}

func TestSettingsOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("get missing returns empty", func(t *testing.T) {
		value, err := store.GetSetting(ctx, "never.set")
		if err != nil || value != "" {
			t.Errorf("GetSetting = %q, %v", value, err)
		}
	})

	t.Run("set get delete roundtrip", func(t *testing.T) {
		if err := store.SetSetting(ctx, models.SettingIntakeEnabled, "false"); err != nil {
			t.Fatalf("set: %v", err)
		}
		value, err := store.GetSetting(ctx, models.SettingIntakeEnabled)
		if err != nil || value != "false" {
			t.Errorf("GetSetting = %q, %v", value, err)
		}

		// Overwrite
		if err := store.SetSetting(ctx, models.SettingIntakeEnabled, "true"); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		value, _ = store.GetSetting(ctx, models.SettingIntakeEnabled)
		if value != "true" {
			t.Errorf("overwrite not applied: %q", value)
		}

		if err := store.DeleteSetting(ctx, models.SettingIntakeEnabled); err != nil {
			t.Fatalf("delete: %v", err)
		}
		value, _ = store.GetSetting(ctx, models.SettingIntakeEnabled)
		if value != "" {
			t.Errorf("setting survived delete: %q", value)
		}
	})

	t.Run("list", func(t *testing.T) {
		if err := store.SetSetting(ctx, "a", "1"); err != nil {
			t.Fatal(err)
		}
		if err := store.SetSetting(ctx, "b", "2"); err != nil {
			t.Fatal(err)
		}
		settings, err := store.ListSettings(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(settings) < 2 {
			t.Errorf("got %d settings", len(settings))
		}
	})
}
