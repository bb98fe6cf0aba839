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

// CreditRepository implements persistence.CreditRepository using GORM
type CreditRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCreditRepository creates a new CreditRepository instance
func NewCreditRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *CreditRepository {
	return &CreditRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *CreditRepository) modelToEntity(m *model.CreditBalance) (*entity.CreditBalance, error) {
	balance, err := entity.NewCreditBalance(m.UserID, m.Credits, r.timeProvider)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hydrate credit balance: %s", errs.ErrInternalServer, err.Error())
	}
	balance.CreatedAt = m.CreatedAt
	balance.UpdatedAt = m.UpdatedAt
	return balance, nil
}

// handleDatabaseError standardizes database error handling
func (r *CreditRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrBalanceNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	return r.errorClassifier.Translate(err)
}

// GetBalance retrieves a user's credit balance
func (r *CreditRepository) GetBalance(ctx context.Context, userID string) (*entity.CreditBalance, error) {
	var m model.CreditBalance
	result := r.db.WithContext(ctx).First(&m, "user_id = ?", userID)

	if result.Error != nil {
		return nil, r.handleDatabaseError("reading balance", result.Error, userID)
	}

	return r.modelToEntity(&m)
}

// GetBalanceForUpdate retrieves a balance with an exclusive row lock
func (r *CreditRepository) GetBalanceForUpdate(ctx context.Context, userID string) (*entity.CreditBalance, error) {
	var m model.CreditBalance
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "user_id = ?", userID)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking balance", result.Error, userID)
	}

	return r.modelToEntity(&m)
}

// Decrement debits credits with a conditional update. The WHERE guard on the
// stored balance is the concurrency control: of two racing debits of a
// balance of one, exactly one matches a row.
func (r *CreditRepository) Decrement(ctx context.Context, userID string, amount int64) (*entity.CreditBalance, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidCreditAmount
	}

	result := r.db.WithContext(ctx).
		Model(&model.CreditBalance{}).
		Where("user_id = ? AND credits >= ?", userID, amount).
		Updates(map[string]interface{}{
			"credits":    gorm.Expr("credits - ?", amount),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return nil, r.handleDatabaseError("debiting credits", result.Error, userID)
	}

	if result.RowsAffected == 0 {
		// Either no balance row, or one that no longer covers the amount.
		var m model.CreditBalance
		lookup := r.db.WithContext(ctx).First(&m, "user_id = ?", userID)
		if lookup.Error != nil {
			if errors.Is(lookup.Error, gorm.ErrRecordNotFound) {
				return nil, errs.ErrBalanceNotFound
			}
			return nil, r.handleDatabaseError("debiting credits", lookup.Error, userID)
		}
		return nil, errs.NewInsufficientCreditsError(userID, amount, m.Credits)
	}

	balance, err := r.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Credits debited", map[string]any{
		"user_id":        userID,
		"amount":         amount,
		"result_balance": balance.Credits(),
	})
	return balance, nil
}

// Grant adds purchased credits, creating the balance row when absent
func (r *CreditRepository) Grant(ctx context.Context, userID string, amount int64) (*entity.CreditBalance, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidCreditAmount
	}

	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"credits":    gorm.Expr("credit_balances.credits + ?", amount),
				"updated_at": now,
			}),
		}).
		Create(&model.CreditBalance{
			UserID:    userID,
			Credits:   amount,
			CreatedAt: now,
			UpdatedAt: now,
		})

	if result.Error != nil {
		return nil, r.handleDatabaseError("granting credits", result.Error, userID)
	}

	return r.GetBalance(ctx, userID)
}

// Create stores a new balance row
func (r *CreditRepository) Create(ctx context.Context, balance *entity.CreditBalance) error {
	m := model.CreditBalance{
		UserID:    balance.UserID,
		Credits:   balance.Credits(),
		CreatedAt: balance.CreatedAt,
		UpdatedAt: balance.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating balance", result.Error, balance.UserID)
	}

	return nil
}
