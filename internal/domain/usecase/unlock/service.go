package unlock

import (
	"context"
	"net/http"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/domain/port/events"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
)

// OutcomeRecorder counts unlock outcomes for the metrics endpoint. Kept as a
// small interface so the domain layer stays free of the metrics library.
type OutcomeRecorder interface {
	RecordUnlockOutcome(outcome string)
}

// Service is the boundary of the unlock transaction: it validates input, runs
// the configured strategy, and converts every failure into one of exactly two
// user-facing messages. No error escapes it.
type Service struct {
	unlocker     portuse.Unlocker
	validator    *Validator
	publisher    events.Publisher
	metrics      OutcomeRecorder
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new unlock service around the given strategy
func NewService(
	unlocker portuse.Unlocker,
	publisher events.Publisher,
	metrics OutcomeRecorder,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		unlocker:     unlocker,
		validator:    NewValidator(),
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Unlock processes one unlock request end to end
func (s *Service) Unlock(ctx context.Context, reqCtx portuse.RequestContext, resourceID string) *portuse.UnlockResult {
	if err := s.validator.ValidateUnlock(reqCtx, resourceID); err != nil {
		s.metrics.RecordUnlockOutcome("invalid")
		return &portuse.UnlockResult{
			Success:    false,
			Message:    MsgGeneric,
			StatusCode: http.StatusBadRequest,
		}
	}

	record, err := s.unlocker.Unlock(ctx, reqCtx, resourceID)
	if err != nil {
		return s.failureResult(reqCtx, resourceID, err)
	}

	if record.CreditsSpent > 0 {
		s.publishCompleted(ctx, record)
	}

	s.metrics.RecordUnlockOutcome("success")
	return &portuse.UnlockResult{
		Success:       true,
		Message:       MsgUnlocked,
		ResultBalance: record.ResultBalance,
		StatusCode:    http.StatusOK,
	}
}

// failureResult maps the internal error taxonomy onto the caller contract. A
// caller cannot tell a clean abort from a compensated one; only the
// insufficient-credits cause gets its own message.
func (s *Service) failureResult(reqCtx portuse.RequestContext, resourceID string, err error) *portuse.UnlockResult {
	switch {
	case errs.IsInsufficientCreditsError(err):
		s.metrics.RecordUnlockOutcome("insufficient_credits")
		return &portuse.UnlockResult{
			Success:    false,
			Message:    MsgInsufficientCredits,
			StatusCode: http.StatusOK,
		}

	case errs.IsNotFoundError(err):
		s.metrics.RecordUnlockOutcome("not_found")
		return &portuse.UnlockResult{
			Success:    false,
			Message:    MsgGeneric,
			StatusCode: http.StatusNotFound,
		}

	default:
		s.metrics.RecordUnlockOutcome("error")
		s.logger.Error("Unlock failed", map[string]any{
			"request_id":  reqCtx.RequestID,
			"resource_id": resourceID,
			"user_id":     reqCtx.UserID,
			"error":       err.Error(),
		})
		return &portuse.UnlockResult{
			Success:    false,
			Message:    MsgGeneric,
			StatusCode: http.StatusOK,
		}
	}
}

// publishCompleted raises the unlock event. Best-effort: a broker hiccup is
// logged and swallowed.
func (s *Service) publishCompleted(ctx context.Context, record *entity.UnlockRecord) {
	event := events.UnlockCompletedEvent{
		RequestID:     record.RequestID,
		ResourceID:    record.ResourceID,
		UserID:        record.UserID,
		Kind:          string(record.Kind),
		CreditsSpent:  record.CreditsSpent,
		ResultBalance: record.ResultBalance,
		OccurredAt:    s.timeProvider.Now(),
	}
	if err := s.publisher.PublishUnlockCompleted(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("Failed to publish unlock event", map[string]any{
			"request_id":  record.RequestID,
			"resource_id": record.ResourceID,
			"error":       err.Error(),
		})
	}
}
