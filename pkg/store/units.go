package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sirenhq/siren/pkg/models"
)

// ============================================
// UNIT OPERATIONS
// ============================================

func (s *GORMStore) GetUnit(ctx context.Context, callSign string) (*models.Unit, error) {
	return getByField[models.Unit](s.db, ctx, "call_sign", callSign, models.ErrUnitNotFound)
}

func (s *GORMStore) GetUnitByID(ctx context.Context, id string) (*models.Unit, error) {
	return getByField[models.Unit](s.db, ctx, "id", id, models.ErrUnitNotFound)
}

func (s *GORMStore) ListUnits(ctx context.Context) ([]*models.Unit, error) {
	return listAll[models.Unit](s.db, ctx)
}

func (s *GORMStore) ListAvailableUnits(ctx context.Context, category models.IncidentCategory) ([]*models.Unit, error) {
	q := s.db.WithContext(ctx).Where("status = ?", models.UnitAvailable)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var units []*models.Unit
	if err := q.Order("call_sign ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (s *GORMStore) CreateUnit(ctx context.Context, unit *models.Unit) (string, error) {
	if unit.Status == "" {
		unit.Status = models.UnitAvailable
	}
	if err := unit.Validate(); err != nil {
		return "", err
	}
	unit.CreatedAt = time.Now()
	return createWithID(s.db, ctx, unit, func(u *models.Unit, id string) { u.ID = id }, unit.ID, models.ErrDuplicateUnit)
}

func (s *GORMStore) UpdateUnit(ctx context.Context, unit *models.Unit) error {
	var existing models.Unit
	if err := s.db.WithContext(ctx).Where("id = ?", unit.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrUnitNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("CallSign", "Category", "Status", "Station").
		Updates(unit).Error
}

func (s *GORMStore) UpdateUnitStatus(ctx context.Context, callSign string, status models.UnitStatus) error {
	result := s.db.WithContext(ctx).
		Model(&models.Unit{}).
		Where("call_sign = ?", callSign).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUnitNotFound
	}
	return nil
}

func (s *GORMStore) DeleteUnit(ctx context.Context, callSign string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.Where("call_sign = ?", callSign).First(&unit).Error; err != nil {
			return convertNotFoundError(err, models.ErrUnitNotFound)
		}

		var open int64
		err := tx.Model(&models.Incident{}).
			Where("assigned_unit_id = ? AND status NOT IN ?",
				unit.ID, []models.IncidentStatus{models.StatusClosed, models.StatusCancelled}).
			Count(&open).Error
		if err != nil {
			return err
		}
		if open > 0 {
			return models.ErrUnitAlreadyOnCall
		}

		// Detach responders before removing the unit.
		if err := tx.Model(&models.User{}).
			Where("unit_id = ?", unit.ID).
			Update("unit_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&unit).Error
	})
}
