package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/domain/port/events"
	"github.com/yorby-ai/entitlement-service/internal/domain/port/persistence"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
)

// IdempotencyStore remembers processed webhook event ids. Backed by Redis in
// production; the TTL bounds how long the broker may redeliver an event.
type IdempotencyStore interface {
	// SetNX stores the key only if absent, returning whether it was stored
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
	// Del removes the key, re-arming the event for a retry
	Del(ctx context.Context, key string) error
}

// eventKeyTTL bounds webhook redelivery dedup; billing providers retry for
// up to three days.
const eventKeyTTL = 72 * time.Hour

// UseCase implements balance reads and webhook-driven credit grants
type UseCase struct {
	creditRepo   persistence.CreditRepository
	idempotency  IdempotencyStore
	publisher    events.Publisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new credit use case instance
func NewUseCase(
	creditRepo persistence.CreditRepository,
	idempotency IdempotencyStore,
	publisher events.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		creditRepo:   creditRepo,
		idempotency:  idempotency,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetBalance returns the user's current credits. A missing balance row reads
// as zero credits: accounts are provisioned lazily and a user who never
// bought a pack legitimately has none.
func (u *UseCase) GetBalance(ctx context.Context, userID string) (*portuse.BalanceResponse, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	balance, err := u.creditRepo.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrBalanceNotFound) {
			return &portuse.BalanceResponse{UserID: userID, Credits: 0}, nil
		}
		u.logger.Error("Failed to read credit balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	return &portuse.BalanceResponse{
		UserID:  userID,
		Credits: balance.Credits(),
	}, nil
}

// GrantCredits applies a purchased credit pack exactly once per event id. The
// billing provider redelivers webhooks until acknowledged, so the event id is
// claimed before the write and released again if the write fails.
func (u *UseCase) GrantCredits(ctx context.Context, req portuse.GrantRequest) (*portuse.BalanceResponse, error) {
	tracer := otel.Tracer("entitlement-service")
	ctx, span := tracer.Start(ctx, "credit.grant")
	defer span.End()

	if req.EventID == "" {
		return nil, errs.ErrInvalidRequest
	}
	if req.UserID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if req.Credits <= 0 {
		return nil, errs.ErrInvalidCreditAmount
	}

	eventKey := fmt.Sprintf("checkout:event:%s", req.EventID)
	stored, err := u.idempotency.SetNX(ctx, eventKey, "processed", eventKeyTTL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "idempotency check failed")
		u.logger.Error("Failed to claim webhook event id", map[string]any{
			"event_id": req.EventID,
			"error":    err.Error(),
		})
		return nil, errs.ErrInternalServer
	}
	if !stored {
		u.logger.Info("Duplicate checkout event ignored", map[string]any{
			"event_id": req.EventID,
			"user_id":  req.UserID,
		})
		return nil, errs.ErrDuplicateEvent
	}

	balance, err := u.creditRepo.Grant(ctx, req.UserID, req.Credits)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grant write failed")
		// Release the event id so the provider's retry can land the grant.
		if delErr := u.idempotency.Del(context.WithoutCancel(ctx), eventKey); delErr != nil {
			u.logger.Error("Failed to release webhook event id after grant failure", map[string]any{
				"event_id": req.EventID,
				"error":    delErr.Error(),
			})
		}
		u.logger.Error("Failed to grant credits", map[string]any{
			"event_id": req.EventID,
			"user_id":  req.UserID,
			"credits":  req.Credits,
			"error":    err.Error(),
		})
		return nil, err
	}

	event := events.CreditsGrantedEvent{
		EventID:       req.EventID,
		UserID:        req.UserID,
		Credits:       req.Credits,
		ResultBalance: balance.Credits(),
		OccurredAt:    u.timeProvider.Now(),
	}
	if err := u.publisher.PublishCreditsGranted(context.WithoutCancel(ctx), event); err != nil {
		u.logger.Warn("Failed to publish credits granted event", map[string]any{
			"event_id": req.EventID,
			"error":    err.Error(),
		})
	}

	u.logger.Info("Credits granted", map[string]any{
		"event_id":       req.EventID,
		"user_id":        req.UserID,
		"credits":        req.Credits,
		"result_balance": balance.Credits(),
	})

	return &portuse.BalanceResponse{
		UserID:  req.UserID,
		Credits: balance.Credits(),
	}, nil
}
