package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/model"
)

// UnlockIncidentRepository implements persistence.UnlockIncidentRepository using GORM
type UnlockIncidentRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewUnlockIncidentRepository creates a new UnlockIncidentRepository instance
func NewUnlockIncidentRepository(db *gorm.DB, logger coreport.Logger) *UnlockIncidentRepository {
	return &UnlockIncidentRepository{
		db:     db,
		logger: logger,
	}
}

// Create saves a new incident row
func (r *UnlockIncidentRepository) Create(ctx context.Context, incident *entity.UnlockIncident) error {
	m := model.UnlockIncident{
		ID:         incident.ID,
		RequestID:  incident.RequestID,
		ResourceID: incident.ResourceID,
		UserID:     incident.UserID,
		Detail:     incident.Detail,
		Resolved:   incident.Resolved,
		CreatedAt:  incident.CreatedAt,
		ResolvedAt: incident.ResolvedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		r.logger.Error("Database error when creating unlock incident", map[string]any{
			"resource_id": incident.ResourceID,
			"error":       result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	incident.ID = m.ID
	return nil
}

// ListUnresolved returns incidents awaiting operator action, oldest first
func (r *UnlockIncidentRepository) ListUnresolved(ctx context.Context) ([]*entity.UnlockIncident, error) {
	var ms []model.UnlockIncident
	result := r.db.WithContext(ctx).
		Where("resolved = ?", false).
		Order("created_at ASC").
		Find(&ms)

	if result.Error != nil {
		r.logger.Error("Database error when listing unlock incidents", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	incidents := make([]*entity.UnlockIncident, 0, len(ms))
	for i := range ms {
		m := ms[i]
		incidents = append(incidents, &entity.UnlockIncident{
			ID:         m.ID,
			RequestID:  m.RequestID,
			ResourceID: m.ResourceID,
			UserID:     m.UserID,
			Detail:     m.Detail,
			Resolved:   m.Resolved,
			CreatedAt:  m.CreatedAt,
			ResolvedAt: m.ResolvedAt,
		})
	}
	return incidents, nil
}
