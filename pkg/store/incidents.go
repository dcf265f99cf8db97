package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirenhq/siren/pkg/models"
)

// DefaultReferencePrefix is used for incident references when no override
// is configured in settings.
const DefaultReferencePrefix = "SIR"

// referenceAllocationRetries bounds the retry loop for concurrent reference
// allocation. Two transactions can read the same counter value; the unique
// index on incidents.reference catches the loser, which retries.
const referenceAllocationRetries = 3

// ============================================
// INCIDENT OPERATIONS
// ============================================

func (s *GORMStore) CreateIncident(ctx context.Context, incident *models.Incident) (string, error) {
	if incident.Status == "" {
		incident.Status = models.StatusReported
	}
	if incident.Priority == 0 {
		incident.Priority = models.DefaultPriority
	}
	now := time.Now()
	if incident.ReportedAt.IsZero() {
		incident.ReportedAt = now
	}
	if incident.ID == "" {
		incident.ID = uuid.New().String()
	}

	if err := incident.Validate(); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < referenceAllocationRetries; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			reference, err := s.nextReference(tx, incident.ReportedAt)
			if err != nil {
				return err
			}
			incident.Reference = reference

			if err := tx.Create(incident).Error; err != nil {
				if isUniqueConstraintError(err) {
					return models.ErrDuplicateReference
				}
				return err
			}

			event := &models.IncidentEvent{
				IncidentID: incident.ID,
				Type:       models.EventReported,
				ActorID:    incident.ReporterID,
				ToStatus:   string(models.StatusReported),
			}
			return tx.Create(event).Error
		})
		if err == nil {
			return incident.ID, nil
		}
		lastErr = err
		if !errors.Is(err, models.ErrDuplicateReference) {
			return "", err
		}
	}
	return "", fmt.Errorf("failed to allocate incident reference: %w", lastErr)
}

// nextReference allocates the next day-scoped reference inside tx, e.g.
// SIR-20260831-0042. The counter lives in the settings table.
func (s *GORMStore) nextReference(tx *gorm.DB, day time.Time) (string, error) {
	prefix := DefaultReferencePrefix
	var prefixSetting models.Setting
	err := tx.Where("key = ?", models.SettingReferencePrefix).First(&prefixSetting).Error
	if err == nil && prefixSetting.Value != "" {
		prefix = prefixSetting.Value
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	counterKey := models.ReferenceCounterKey(day)
	next := 1
	var counter models.Setting
	err = tx.Where("key = ?", counterKey).First(&counter).Error
	switch {
	case err == nil:
		current, parseErr := strconv.Atoi(counter.Value)
		if parseErr != nil {
			return "", fmt.Errorf("corrupt reference counter %q: %w", counter.Value, parseErr)
		}
		next = current + 1
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first incident of the day
	default:
		return "", err
	}

	counter.Key = counterKey
	counter.Value = strconv.Itoa(next)
	counter.UpdatedAt = time.Now()
	if err := tx.Save(&counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), next), nil
}

func (s *GORMStore) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	return getByField[models.Incident](s.db, ctx, "id", id, models.ErrIncidentNotFound, "Reporter", "AssignedUnit")
}

func (s *GORMStore) GetIncidentByReference(ctx context.Context, reference string) (*models.Incident, error) {
	return getByField[models.Incident](s.db, ctx, "reference", reference, models.ErrIncidentNotFound, "Reporter", "AssignedUnit")
}

func (s *GORMStore) ListIncidents(ctx context.Context, filter IncidentFilter) ([]*models.Incident, error) {
	q := s.db.WithContext(ctx).
		Preload("Reporter").
		Preload("AssignedUnit").
		Order("reported_at DESC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.ReporterID != "" {
		q = q.Where("reporter_id = ?", filter.ReporterID)
	}
	if filter.AssignedUnitID != "" {
		q = q.Where("assigned_unit_id = ?", filter.AssignedUnitID)
	}
	if filter.OpenOnly {
		q = q.Where("status NOT IN ?", []models.IncidentStatus{models.StatusClosed, models.StatusCancelled})
	}
	if filter.MinPriority > 0 {
		q = q.Where("priority <= ?", filter.MinPriority)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var incidents []*models.Incident
	if err := q.Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

func (s *GORMStore) UpdateIncident(ctx context.Context, incident *models.Incident, actorID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Incident
		if err := tx.Where("id = ?", incident.ID).First(&existing).Error; err != nil {
			return convertNotFoundError(err, models.ErrIncidentNotFound)
		}
		if existing.Status.IsTerminal() {
			return models.ErrIncidentClosed
		}

		if incident.Priority != 0 &&
			(incident.Priority < models.MinPriority || incident.Priority > models.MaxPriority) {
			return fmt.Errorf("priority must be between %d and %d", models.MinPriority, models.MaxPriority)
		}

		// Updates copies the new values back into existing, so the
		// old priority has to be captured before the write.
		oldPriority := existing.Priority
		priorityChanged := incident.Priority != 0 && incident.Priority != oldPriority

		if err := tx.Model(&existing).
			Select("Title", "Description", "Address", "Latitude", "Longitude", "Priority").
			Updates(incident).Error; err != nil {
			return err
		}

		if priorityChanged {
			event := &models.IncidentEvent{
				IncidentID: existing.ID,
				Type:       models.EventPriorityChanged,
				ActorID:    actorID,
				Detail:     fmt.Sprintf("priority %d -> %d", oldPriority, incident.Priority),
			}
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GORMStore) TransitionIncident(ctx context.Context, id string, next models.IncidentStatus, actorID string) (*models.Incident, error) {
	var updated *models.Incident
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var incident models.Incident
		if err := tx.Where("id = ?", id).First(&incident).Error; err != nil {
			return convertNotFoundError(err, models.ErrIncidentNotFound)
		}

		from := incident.Status
		if err := incident.Transition(next, time.Now()); err != nil {
			return err
		}

		if err := tx.Model(&incident).
			Select("Status", "AcknowledgedAt", "DispatchedAt", "ResolvedAt", "ClosedAt").
			Updates(&incident).Error; err != nil {
			return err
		}

		event := &models.IncidentEvent{
			IncidentID: incident.ID,
			Type:       models.EventStatusChanged,
			ActorID:    actorID,
			FromStatus: string(from),
			ToStatus:   string(next),
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		// Resolving puts the unit back into the available pool.
		// Closing only happens after resolution, so cancellation is
		// the other path that still holds a unit.
		if (next == models.StatusResolved || next == models.StatusCancelled) && incident.AssignedUnitID != nil {
			if err := tx.Model(&models.Unit{}).
				Where("id = ?", *incident.AssignedUnitID).
				Update("status", models.UnitAvailable).Error; err != nil {
				return err
			}
			release := &models.IncidentEvent{
				IncidentID: incident.ID,
				Type:       models.EventUnitReleased,
				ActorID:    actorID,
			}
			if err := tx.Create(release).Error; err != nil {
				return err
			}
		}

		// Arriving on scene is mirrored onto the unit status.
		if next == models.StatusOnScene && incident.AssignedUnitID != nil {
			if err := tx.Model(&models.Unit{}).
				Where("id = ?", *incident.AssignedUnitID).
				Update("status", models.UnitOnScene).Error; err != nil {
				return err
			}
		}

		updated = &incident
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetIncident(ctx, updated.ID)
}

func (s *GORMStore) AssignUnit(ctx context.Context, incidentID, unitID, actorID string, force bool) (*models.Incident, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var incident models.Incident
		if err := tx.Where("id = ?", incidentID).First(&incident).Error; err != nil {
			return convertNotFoundError(err, models.ErrIncidentNotFound)
		}

		var unit models.Unit
		if err := tx.Where("id = ?", unitID).First(&unit).Error; err != nil {
			return convertNotFoundError(err, models.ErrUnitNotFound)
		}
		if !unit.IsDispatchable() && !force {
			return models.ErrUnitUnavailable
		}

		now := time.Now()
		var events []*models.IncidentEvent

		// A freshly reported incident is acknowledged implicitly so
		// dispatchers can assign a unit in one step.
		if incident.Status == models.StatusReported {
			if err := incident.Transition(models.StatusAcknowledged, now); err != nil {
				return err
			}
			events = append(events, &models.IncidentEvent{
				IncidentID: incident.ID,
				Type:       models.EventStatusChanged,
				ActorID:    actorID,
				FromStatus: string(models.StatusReported),
				ToStatus:   string(models.StatusAcknowledged),
			})
		}

		from := incident.Status
		if err := incident.Transition(models.StatusDispatched, now); err != nil {
			return err
		}
		incident.AssignedUnitID = &unit.ID

		if err := tx.Model(&incident).
			Select("Status", "AcknowledgedAt", "DispatchedAt", "AssignedUnitID").
			Updates(&incident).Error; err != nil {
			return err
		}

		if err := tx.Model(&unit).Update("status", models.UnitEnRoute).Error; err != nil {
			return err
		}

		events = append(events,
			&models.IncidentEvent{
				IncidentID: incident.ID,
				Type:       models.EventUnitAssigned,
				ActorID:    actorID,
				Detail:     unit.CallSign,
			},
			&models.IncidentEvent{
				IncidentID: incident.ID,
				Type:       models.EventStatusChanged,
				ActorID:    actorID,
				FromStatus: string(from),
				ToStatus:   string(models.StatusDispatched),
			},
		)
		for _, event := range events {
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetIncident(ctx, incidentID)
}

func (s *GORMStore) ListIncidentEvents(ctx context.Context, incidentID string) ([]*models.IncidentEvent, error) {
	if err := s.incidentExists(ctx, incidentID); err != nil {
		return nil, err
	}

	var events []*models.IncidentEvent
	err := s.db.WithContext(ctx).
		Where("incident_id = ?", incidentID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// incidentExists checks for an incident without loading associations.
func (s *GORMStore) incidentExists(ctx context.Context, id string) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Incident{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrIncidentNotFound
	}
	return nil
}
