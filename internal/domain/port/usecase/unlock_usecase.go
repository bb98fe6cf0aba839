package usecase

import (
	"context"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
)

// RequestContext carries the verified identity and correlation id of one
// request explicitly, instead of relying on ambient per-request state.
type RequestContext struct {
	UserID    string
	RequestID string
}

// UnlockResult is what caller surfaces render to the user. Message is one of
// exactly two strings on failure: a generic retry prompt or the
// insufficient-credits message. Internal failure detail never crosses this
// boundary.
type UnlockResult struct {
	Success       bool
	Message       string
	ResultBalance int64
	StatusCode    int // HTTP status code
}

// UnlockUseCase is the caller-facing contract of the unlock transaction.
type UnlockUseCase interface {
	// Unlock attempts to move a resource from locked to unlocked, spending
	// one credit. All failures are converted to an UnlockResult; no error
	// propagates past this boundary.
	Unlock(ctx context.Context, reqCtx RequestContext, resourceID string) *UnlockResult
}

// Unlocker is the strategy interface both unlock implementations satisfy: the
// single-transaction atomic strategy and the sequential compensating one.
type Unlocker interface {
	Unlock(ctx context.Context, reqCtx RequestContext, resourceID string) (*entity.UnlockRecord, error)
}
