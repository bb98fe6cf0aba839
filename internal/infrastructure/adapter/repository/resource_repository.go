package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/model"
)

// ResourceRepository implements persistence.ResourceRepository using GORM
type ResourceRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewResourceRepository creates a new ResourceRepository instance
func NewResourceRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ResourceRepository {
	return &ResourceRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *ResourceRepository) modelToEntity(m *model.Resource) *entity.Resource {
	return &entity.Resource{
		ID:         m.ID,
		UserID:     m.UserID,
		Kind:       entity.ResourceKind(m.Kind),
		LockStatus: entity.LockStatus(m.LockStatus),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *ResourceRepository) handleDatabaseError(operation string, err error, resourceID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Resource not found", map[string]any{
			"resource_id": resourceID,
		})
		return errs.ErrResourceNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"resource_id": resourceID,
		"error":       err.Error(),
	})

	return r.errorClassifier.Translate(err)
}

// GetByID retrieves a resource scoped to its owner
func (r *ResourceRepository) GetByID(ctx context.Context, resourceID, userID string) (*entity.Resource, error) {
	var m model.Resource
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", resourceID, userID).
		First(&m)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting resource", result.Error, resourceID)
	}

	return r.modelToEntity(&m), nil
}

// GetByIDForUpdate retrieves a resource with an exclusive row lock
func (r *ResourceRepository) GetByIDForUpdate(ctx context.Context, resourceID, userID string) (*entity.Resource, error) {
	var m model.Resource
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", resourceID, userID).
		First(&m)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking resource", result.Error, resourceID)
	}

	return r.modelToEntity(&m), nil
}

// GetLockStatus reads just the lock status column
func (r *ResourceRepository) GetLockStatus(ctx context.Context, resourceID, userID string) (entity.LockStatus, error) {
	var status string
	result := r.db.WithContext(ctx).
		Model(&model.Resource{}).
		Select("lock_status").
		Where("id = ? AND user_id = ?", resourceID, userID).
		First(&status)

	if result.Error != nil {
		return "", r.handleDatabaseError("reading lock status", result.Error, resourceID)
	}

	return entity.LockStatus(status), nil
}

// SetLockStatus writes the lock status of a resource
func (r *ResourceRepository) SetLockStatus(ctx context.Context, resourceID string, status entity.LockStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Resource{}).
		Where("id = ?", resourceID).
		Updates(map[string]interface{}{
			"lock_status": string(status),
			"updated_at":  r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("writing lock status", result.Error, resourceID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Resource not found during lock status write", map[string]any{
			"resource_id": resourceID,
		})
		return errs.ErrResourceNotFound
	}

	r.logger.Debug("Lock status written", map[string]any{
		"resource_id": resourceID,
		"status":      string(status),
	})
	return nil
}

// Create stores a new resource
func (r *ResourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	m := model.Resource{
		ID:         resource.ID,
		UserID:     resource.UserID,
		Kind:       string(resource.Kind),
		LockStatus: string(resource.LockStatus),
		CreatedAt:  resource.CreatedAt,
		UpdatedAt:  resource.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating resource", result.Error, resource.ID)
	}

	return nil
}
