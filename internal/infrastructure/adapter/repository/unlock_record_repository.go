package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/model"
)

// UnlockRecordRepository implements persistence.UnlockRecordRepository using GORM
type UnlockRecordRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUnlockRecordRepository creates a new UnlockRecordRepository instance
func NewUnlockRecordRepository(db *gorm.DB, logger coreport.Logger) *UnlockRecordRepository {
	return &UnlockRecordRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func entityToModel(record *entity.UnlockRecord) model.UnlockRecord {
	return model.UnlockRecord{
		ID:            record.ID,
		RequestID:     record.RequestID,
		ResourceID:    record.ResourceID,
		UserID:        record.UserID,
		Kind:          string(record.Kind),
		CreditsSpent:  record.CreditsSpent,
		Status:        string(record.Status),
		ErrorStage:    record.ErrorStage,
		CreatedAt:     record.CreatedAt,
		CompletedAt:   record.CompletedAt,
		ResultBalance: record.ResultBalance,
	}
}

func recordModelToEntity(m *model.UnlockRecord) *entity.UnlockRecord {
	return &entity.UnlockRecord{
		ID:            m.ID,
		RequestID:     m.RequestID,
		ResourceID:    m.ResourceID,
		UserID:        m.UserID,
		Kind:          entity.ResourceKind(m.Kind),
		CreditsSpent:  m.CreditsSpent,
		Status:        entity.UnlockStatus(m.Status),
		ErrorStage:    m.ErrorStage,
		CreatedAt:     m.CreatedAt,
		CompletedAt:   m.CompletedAt,
		ResultBalance: m.ResultBalance,
	}
}

// Create saves a new unlock record
func (r *UnlockRecordRepository) Create(ctx context.Context, record *entity.UnlockRecord) error {
	m := entityToModel(record)

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		if r.errorClassifier.Classify(result.Error) == ClassDuplicateKey {
			return errs.ErrConstraintViolation
		}
		r.logger.Error("Database error when creating unlock record", map[string]any{
			"request_id": record.RequestID,
			"error":      result.Error.Error(),
		})
		return r.errorClassifier.Translate(result.Error)
	}

	record.ID = m.ID
	return nil
}

// Update persists status changes to an existing record, keyed by request id
func (r *UnlockRecordRepository) Update(ctx context.Context, record *entity.UnlockRecord) error {
	result := r.db.WithContext(ctx).
		Model(&model.UnlockRecord{}).
		Where("request_id = ?", record.RequestID).
		Updates(map[string]interface{}{
			"credits_spent":  record.CreditsSpent,
			"status":         string(record.Status),
			"error_stage":    record.ErrorStage,
			"completed_at":   record.CompletedAt,
			"result_balance": record.ResultBalance,
		})

	if result.Error != nil {
		r.logger.Error("Database error when updating unlock record", map[string]any{
			"request_id": record.RequestID,
			"error":      result.Error.Error(),
		})
		return r.errorClassifier.Translate(result.Error)
	}

	return nil
}

// ListByResource returns the attempts recorded against a resource, newest first
func (r *UnlockRecordRepository) ListByResource(ctx context.Context, resourceID string) ([]*entity.UnlockRecord, error) {
	var ms []model.UnlockRecord
	result := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("created_at DESC").
		Find(&ms)

	if result.Error != nil {
		r.logger.Error("Database error when listing unlock records", map[string]any{
			"resource_id": resourceID,
			"error":       result.Error.Error(),
		})
		return nil, r.errorClassifier.Translate(result.Error)
	}

	records := make([]*entity.UnlockRecord, 0, len(ms))
	for i := range ms {
		records = append(records, recordModelToEntity(&ms[i]))
	}
	return records, nil
}
