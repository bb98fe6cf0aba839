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

// SequentialUnlocker runs the unlock as independent store calls with a
// best-effort compensating write, for entitlement stores that offer no
// multi-statement transaction. The sequence:
//
//  1. read lock status (already unlocked -> succeed without charging)
//  2. read balance
//  3. reject if balance < cost
//  4. write status unlocked
//  5. debit one credit; on failure restore the lock status
//
// Between 4 and 5 a concurrent reader can observe the resource unlocked
// before the debit lands. The conditional debit in the store keeps two racing
// attempts from both charging, but this strategy cannot make the pair of
// writes atomic; AtomicUnlocker exists for stores that can.
type SequentialUnlocker struct {
	resourceRepo persistence.ResourceRepository
	creditRepo   persistence.CreditRepository
	recordRepo   persistence.UnlockRecordRepository
	incidents    *IncidentReporter
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSequentialUnlocker creates a new SequentialUnlocker
func NewSequentialUnlocker(
	resourceRepo persistence.ResourceRepository,
	creditRepo persistence.CreditRepository,
	recordRepo persistence.UnlockRecordRepository,
	incidents *IncidentReporter,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *SequentialUnlocker {
	return &SequentialUnlocker{
		resourceRepo: resourceRepo,
		creditRepo:   creditRepo,
		recordRepo:   recordRepo,
		incidents:    incidents,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Unlock attempts to move the resource from locked to unlocked, spending
// exactly one credit. On the happy path it issues one status write and one
// balance write; the failure path of the debit issues up to one extra
// compensating write.
func (u *SequentialUnlocker) Unlock(
	ctx context.Context,
	reqCtx portuse.RequestContext,
	resourceID string,
) (*entity.UnlockRecord, error) {
	tracer := otel.Tracer("entitlement-service")
	ctx, span := tracer.Start(ctx, "unlock.sequential")
	defer span.End()

	// Step 1: read current lock status. No mutation has happened if this fails.
	resource, err := u.resourceRepo.GetByID(ctx, resourceID, reqCtx.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "status read failed")
		return nil, u.failure(reqCtx, resourceID, errs.StageStatusRead, err)
	}

	record, err := entity.NewUnlockRecord(reqCtx.RequestID, resourceID, reqCtx.UserID, resource.Kind, u.timeProvider)
	if err != nil {
		return nil, err
	}

	// Repeat unlocks are free: an unlocked resource means a debit was already
	// recorded for it, so charging again would double-bill. The response still
	// carries the caller's actual balance.
	if resource.IsUnlocked() {
		currentBalance, err := u.repeatBalance(ctx, reqCtx.UserID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "balance read failed")
			return nil, u.failure(reqCtx, resourceID, errs.StageBalanceRead, err)
		}
		u.logger.Info("Resource already unlocked, skipping debit", map[string]any{
			"request_id":  reqCtx.RequestID,
			"resource_id": resourceID,
			"user_id":     reqCtx.UserID,
		})
		record.MarkCompleted(0, currentBalance, u.timeProvider)
		u.persistRecord(ctx, record)
		return record, nil
	}

	// Step 2: read the balance.
	balance, err := u.creditRepo.GetBalance(ctx, reqCtx.UserID)
	if err != nil {
		// A user with no balance row simply has zero credits.
		if errors.Is(err, errs.ErrBalanceNotFound) {
			return nil, u.insufficient(reqCtx, resourceID, 0)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "balance read failed")
		return nil, u.failure(reqCtx, resourceID, errs.StageBalanceRead, err)
	}

	// Step 3: pre-check the balance before touching anything.
	if !balance.CanSpend(entity.UnlockCost) {
		return nil, u.insufficient(reqCtx, resourceID, balance.Credits())
	}

	u.persistRecord(ctx, record)

	// Step 4: flip the lock status. State is unchanged from the caller's
	// perspective if this write fails.
	if err := u.resourceRepo.SetLockStatus(ctx, resourceID, entity.StatusUnlocked); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lock write failed")
		record.MarkFailed(errs.StageLockWrite, u.timeProvider)
		u.persistRecordUpdate(ctx, record)
		return nil, u.failure(reqCtx, resourceID, errs.StageLockWrite, err)
	}

	// Step 5: debit the credit. The conditional update re-checks the balance,
	// so a concurrent spend since step 2 surfaces here as ErrInsufficientCredits.
	newBalance, err := u.creditRepo.Decrement(ctx, reqCtx.UserID, entity.UnlockCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "credit write failed")
		record.MarkFailed(errs.StageCreditWrite, u.timeProvider)
		u.persistRecordUpdate(ctx, record)
		return nil, u.compensate(ctx, reqCtx, resourceID, err)
	}

	record.MarkCompleted(entity.UnlockCost, newBalance.Credits(), u.timeProvider)
	u.persistRecordUpdate(ctx, record)

	u.logger.Info("Resource unlocked", map[string]any{
		"request_id":     reqCtx.RequestID,
		"resource_id":    resourceID,
		"user_id":        reqCtx.UserID,
		"kind":           string(resource.Kind),
		"credits_spent":  entity.UnlockCost,
		"result_balance": newBalance.Credits(),
	})

	return record, nil
}

// repeatBalance reads the balance reported back for a free repeat unlock. A
// missing balance row reads as zero.
func (u *SequentialUnlocker) repeatBalance(ctx context.Context, userID string) (int64, error) {
	balance, err := u.creditRepo.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrBalanceNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return balance.Credits(), nil
}

// compensate restores the lock status after a failed debit. The caller gets
// the same credit-write error whether or not the restore succeeds; a failed
// restore additionally raises an operator incident.
func (u *SequentialUnlocker) compensate(
	ctx context.Context,
	reqCtx portuse.RequestContext,
	resourceID string,
	debitErr error,
) error {
	compErr := u.resourceRepo.SetLockStatus(context.WithoutCancel(ctx), resourceID, entity.StatusLocked)

	// A debit rejected by the conditional update means another request spent
	// the last credit between steps 2 and 5. Once the status is restored this
	// is an ordinary insufficient-credits outcome, not an infrastructure one.
	if errors.Is(debitErr, errs.ErrInsufficientCredits) && compErr == nil {
		return u.insufficient(reqCtx, resourceID, 0)
	}

	if compErr != nil {
		u.incidents.Report(ctx, reqCtx, resourceID, compErr.Error())

		unlockErr := errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageCreditWrite,
			errs.ErrCreditWrite)
		unlockErr.Compensated = false
		u.logger.Error("Unlock failed, compensation failed", unlockErr.LogFields())
		return unlockErr
	}

	unlockErr := errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, errs.StageCreditWrite,
		errs.ErrCreditWrite)
	unlockErr.Compensated = true
	u.logger.Warn("Unlock failed, lock status restored", map[string]any{
		"request_id":  reqCtx.RequestID,
		"resource_id": resourceID,
		"user_id":     reqCtx.UserID,
		"debit_error": debitErr.Error(),
	})
	return unlockErr
}

func (u *SequentialUnlocker) failure(reqCtx portuse.RequestContext, resourceID string, stage errs.UnlockStage, err error) error {
	// Not-found reads keep their identity so callers can 404; everything else
	// collapses into the stage error.
	if errors.Is(err, errs.ErrResourceNotFound) {
		return err
	}

	unlockErr := errs.NewUnlockError(resourceID, reqCtx.UserID, reqCtx.RequestID, stage, stageSentinel(stage))
	u.logger.Error("Unlock step failed", unlockErr.LogFields())
	return unlockErr
}

func (u *SequentialUnlocker) insufficient(reqCtx portuse.RequestContext, resourceID string, available int64) error {
	err := errs.NewInsufficientCreditsError(reqCtx.UserID, entity.UnlockCost, available)
	u.logger.Warn("Unlock rejected, insufficient credits", map[string]any{
		"request_id":  reqCtx.RequestID,
		"resource_id": resourceID,
		"user_id":     reqCtx.UserID,
		"available":   available,
	})
	return err
}

// persistRecord and persistRecordUpdate are audit writes; their failures are
// logged and do not change the unlock outcome.
func (u *SequentialUnlocker) persistRecord(ctx context.Context, record *entity.UnlockRecord) {
	if err := u.recordRepo.Create(ctx, record); err != nil {
		u.logger.Warn("Failed to persist unlock record", map[string]any{
			"request_id": record.RequestID,
			"error":      err.Error(),
		})
	}
}

func (u *SequentialUnlocker) persistRecordUpdate(ctx context.Context, record *entity.UnlockRecord) {
	if err := u.recordRepo.Update(context.WithoutCancel(ctx), record); err != nil {
		u.logger.Warn("Failed to update unlock record", map[string]any{
			"request_id": record.RequestID,
			"error":      err.Error(),
		})
	}
}

func stageSentinel(stage errs.UnlockStage) error {
	switch stage {
	case errs.StageStatusRead, errs.StageBalanceRead:
		return errs.ErrStoreRead
	case errs.StageLockWrite:
		return errs.ErrLockWrite
	case errs.StageCreditWrite:
		return errs.ErrCreditWrite
	default:
		return errs.ErrInternalServer
	}
}
