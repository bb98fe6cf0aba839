package entity

import (
	"time"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
)

// UnlockStatus defines possible status values for an unlock attempt
type UnlockStatus string

const (
	UnlockPending   UnlockStatus = "pending"
	UnlockCompleted UnlockStatus = "completed"
	UnlockFailed    UnlockStatus = "failed"
)

// UnlockRecord is the audit trail of one unlock attempt. A completed record is
// the durable evidence that a credit debit corresponds to an unlocked resource.
type UnlockRecord struct {
	ID            uint64       // Database identifier
	RequestID     string       // Correlation id of the originating request
	ResourceID    string       // Resource the attempt targeted
	UserID        string       // Paying user
	Kind          ResourceKind // Resource kind at the time of the attempt
	CreditsSpent  int64        // Credits debited; zero for failed or idempotent attempts
	Status        UnlockStatus
	ErrorStage    string // Stage of the failure, empty on success
	CreatedAt     time.Time
	CompletedAt   *time.Time
	ResultBalance int64 // Balance after the attempt, valid only when completed
}

// NewUnlockRecord creates a pending record for an unlock attempt
func NewUnlockRecord(requestID, resourceID, userID string, kind ResourceKind, timeProvider coreport.TimeProvider) (*UnlockRecord, error) {
	if requestID == "" {
		return nil, errs.ErrInvalidRequest
	}
	if resourceID == "" {
		return nil, errs.ErrInvalidResourceID
	}
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	return &UnlockRecord{
		RequestID:  requestID,
		ResourceID: resourceID,
		UserID:     userID,
		Kind:       kind,
		Status:     UnlockPending,
		CreatedAt:  timeProvider.Now(),
	}, nil
}

// MarkCompleted marks the attempt as successfully debited and unlocked
func (r *UnlockRecord) MarkCompleted(creditsSpent, resultBalance int64, timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	r.CompletedAt = &now
	r.CreditsSpent = creditsSpent
	r.ResultBalance = resultBalance
	r.Status = UnlockCompleted
}

// MarkFailed marks the attempt as failed at the given stage. No credits were
// retained from a failed attempt.
func (r *UnlockRecord) MarkFailed(stage errs.UnlockStage, timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	r.CompletedAt = &now
	r.CreditsSpent = 0
	r.Status = UnlockFailed
	r.ErrorStage = string(stage)
}
