package entity

import (
	"time"

	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
)

// UnlockIncident records a known-inconsistent store state for a human
// operator: a resource left unlocked with no credit debited, after both the
// debit and its compensation failed. Incidents are append-only; resolution is
// manual.
type UnlockIncident struct {
	ID         uint64
	RequestID  string
	ResourceID string
	UserID     string
	Detail     string // internal failure detail, never shown to the user
	CreatedAt  time.Time
	Resolved   bool
	ResolvedAt *time.Time
}

// NewUnlockIncident creates an unresolved incident
func NewUnlockIncident(requestID, resourceID, userID, detail string, timeProvider coreport.TimeProvider) *UnlockIncident {
	return &UnlockIncident{
		RequestID:  requestID,
		ResourceID: resourceID,
		UserID:     userID,
		Detail:     detail,
		CreatedAt:  timeProvider.Now(),
	}
}

// Resolve marks the incident handled by an operator
func (i *UnlockIncident) Resolve(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	i.Resolved = true
	i.ResolvedAt = &now
}
