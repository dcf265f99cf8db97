package store

import (
	"context"

	"github.com/sirenhq/siren/pkg/models"
)

// ============================================
// CHAT OPERATIONS
// ============================================

func (s *GORMStore) CreateMessage(ctx context.Context, message *models.ChatMessage) (string, error) {
	if err := message.Validate(); err != nil {
		return "", err
	}
	if err := s.incidentExists(ctx, message.IncidentID); err != nil {
		return "", err
	}
	return createWithID(s.db, ctx, message, func(m *models.ChatMessage, id string) { m.ID = id }, message.ID, models.ErrMessageNotFound)
}

func (s *GORMStore) ListMessages(ctx context.Context, incidentID string, filter MessageFilter) ([]*models.ChatMessage, error) {
	if err := s.incidentExists(ctx, incidentID); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).
		Where("incident_id = ?", incidentID).
		Order("created_at ASC")

	if !filter.After.IsZero() {
		q = q.Where("created_at > ?", filter.After)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var messages []*models.ChatMessage
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
