package unlock

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/domain/port/persistence"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
)

// AtomicUnlocker runs the whole read-check-write-write sequence inside one
// database transaction with exclusive row locks on the resource and the
// balance. Double unlocks and unlocked-but-undebited states cannot occur: a
// failure anywhere rolls the transaction back to the starting state.
type AtomicUnlocker struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAtomicUnlocker creates a new AtomicUnlocker
func NewAtomicUnlocker(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *AtomicUnlocker {
	return &AtomicUnlocker{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Unlock moves the resource from locked to unlocked and debits one credit in
// a single committed transaction.
func (u *AtomicUnlocker) Unlock(
	ctx context.Context,
	reqCtx portuse.RequestContext,
	resourceID string,
) (*entity.UnlockRecord, error) {
	tracer := otel.Tracer("entitlement-service")
	ctx, span := tracer.Start(ctx, "unlock.atomic")
	defer span.End()

	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin failed")
		u.logger.Error("Failed to begin unlock transaction", map[string]any{
			"request_id":  reqCtx.RequestID,
			"resource_id": resourceID,
			"error":       err.Error(),
		})
		return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageStatusRead, errs.ErrStoreRead)
	}

	record, err := u.unlockInTx(txCtx, reqCtx, resourceID)
	if err != nil {
		if rbErr := u.uow.Rollback(txCtx); rbErr != nil {
			u.logger.Error("Failed to roll back unlock transaction", map[string]any{
				"request_id": reqCtx.RequestID,
				"error":      rbErr.Error(),
			})
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unlock rolled back")
		return nil, err
	}

	if err := u.uow.Commit(txCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		u.logger.Error("Failed to commit unlock transaction", map[string]any{
			"request_id":  reqCtx.RequestID,
			"resource_id": resourceID,
			"error":       err.Error(),
		})
		return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageCreditWrite, errs.ErrCreditWrite)
	}

	if record.Status == entity.UnlockCompleted && record.CreditsSpent > 0 {
		u.logger.Info("Resource unlocked", map[string]any{
			"request_id":     reqCtx.RequestID,
			"resource_id":    resourceID,
			"user_id":        reqCtx.UserID,
			"kind":           string(record.Kind),
			"credits_spent":  record.CreditsSpent,
			"result_balance": record.ResultBalance,
		})
	}

	return record, nil
}

// unlockInTx performs the locked reads and both writes against transaction-
// bound repositories. Any returned error aborts the whole transaction.
func (u *AtomicUnlocker) unlockInTx(
	txCtx context.Context,
	reqCtx portuse.RequestContext,
	resourceID string,
) (*entity.UnlockRecord, error) {
	resourceRepo := u.uow.GetResourceRepository(txCtx)
	creditRepo := u.uow.GetCreditRepository(txCtx)
	recordRepo := u.uow.GetUnlockRecordRepository(txCtx)

	// Locking the resource row first gives concurrent unlocks of the same
	// resource a single serialization point.
	resource, err := resourceRepo.GetByIDForUpdate(txCtx, resourceID, reqCtx.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrResourceNotFound) {
			return nil, err
		}
		return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageStatusRead, errs.ErrStoreRead)
	}

	record, err := entity.NewUnlockRecord(reqCtx.RequestID, resourceID, reqCtx.UserID, resource.Kind, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if resource.IsUnlocked() {
		currentBalance := int64(0)
		balance, err := creditRepo.GetBalance(txCtx, reqCtx.UserID)
		if err != nil && !errors.Is(err, errs.ErrBalanceNotFound) {
			return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageBalanceRead, errs.ErrStoreRead)
		}
		if err == nil {
			currentBalance = balance.Credits()
		}
		u.logger.Info("Resource already unlocked, skipping debit", map[string]any{
			"request_id":  reqCtx.RequestID,
			"resource_id": resourceID,
			"user_id":     reqCtx.UserID,
		})
		record.MarkCompleted(0, currentBalance, u.timeProvider)
		if err := recordRepo.Create(txCtx, record); err != nil {
			return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageCreditWrite, errs.ErrCreditWrite)
		}
		return record, nil
	}

	balance, err := creditRepo.GetBalanceForUpdate(txCtx, reqCtx.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrBalanceNotFound) {
			return nil, errs.NewInsufficientCreditsError(reqCtx.UserID, entity.UnlockCost, 0)
		}
		return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageBalanceRead, errs.ErrStoreRead)
	}

	if !balance.CanSpend(entity.UnlockCost) {
		return nil, errs.NewInsufficientCreditsError(reqCtx.UserID, entity.UnlockCost, balance.Credits())
	}

	if err := resourceRepo.SetLockStatus(txCtx, resourceID, entity.StatusUnlocked); err != nil {
		return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageLockWrite, errs.ErrLockWrite)
	}

	newBalance, err := creditRepo.Decrement(txCtx, reqCtx.UserID, entity.UnlockCost)
	if err != nil {
		// Rollback undoes the status flip; no compensation logic is needed here.
		return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageCreditWrite, errs.ErrCreditWrite)
	}

	record.MarkCompleted(entity.UnlockCost, newBalance.Credits(), u.timeProvider)
	if err := recordRepo.Create(txCtx, record); err != nil {
		// The audit record rides the same transaction as the debit: losing it
		// aborts the unlock rather than producing an unaccounted debit.
		return nil, errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageCreditWrite, errs.ErrCreditWrite)
	}

	return record, nil
}
