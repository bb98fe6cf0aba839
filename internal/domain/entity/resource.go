package entity

import (
	"time"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
)

// LockStatus is the binary gating state of a resource
type LockStatus string

const (
	StatusLocked   LockStatus = "locked"
	StatusUnlocked LockStatus = "unlocked"
)

// ResourceKind identifies which product surface a gated resource belongs to
type ResourceKind string

const (
	KindResume           ResourceKind = "resume"
	KindJob              ResourceKind = "job"
	KindInterviewCopilot ResourceKind = "interview_copilot"
)

// Resource represents a gated resource owned by a user. Its lock status is
// mutated exclusively through the unlock flow.
type Resource struct {
	ID         string       // Unique identifier (UUID)
	UserID     string       // Owner
	Kind       ResourceKind // Product surface the resource belongs to
	LockStatus LockStatus   // Current gating state
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewResource creates a new locked resource with basic validation
func NewResource(id, userID string, kind ResourceKind, timeProvider coreport.TimeProvider) (*Resource, error) {
	if id == "" {
		return nil, errs.ErrInvalidResourceID
	}
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !isValidKind(kind) {
		return nil, errs.ErrInvalidResourceKind
	}

	now := timeProvider.Now()
	return &Resource{
		ID:         id,
		UserID:     userID,
		Kind:       kind,
		LockStatus: StatusLocked,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// IsUnlocked reports whether the resource is already unlocked
func (r *Resource) IsUnlocked() bool {
	return r.LockStatus == StatusUnlocked
}

// IsOwnedBy reports whether the given user owns the resource
func (r *Resource) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

// Unlock flips the resource to unlocked
func (r *Resource) Unlock(timeProvider coreport.TimeProvider) {
	r.LockStatus = StatusUnlocked
	r.UpdatedAt = timeProvider.Now()
}

// Relock restores the locked state. Used only by the compensation path of the
// sequential unlock strategy.
func (r *Resource) Relock(timeProvider coreport.TimeProvider) {
	r.LockStatus = StatusLocked
	r.UpdatedAt = timeProvider.Now()
}

func isValidKind(kind ResourceKind) bool {
	return kind == KindResume || kind == KindJob || kind == KindInterviewCopilot
}
