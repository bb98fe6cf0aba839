package events

import (
	"context"
	"time"
)

// UnlockCompletedEvent announces a successful unlock to downstream consumers
// (analytics, email, cache invalidation).
type UnlockCompletedEvent struct {
	RequestID     string    `json:"request_id"`
	ResourceID    string    `json:"resource_id"`
	UserID        string    `json:"user_id"`
	Kind          string    `json:"kind"`
	CreditsSpent  int64     `json:"credits_spent"`
	ResultBalance int64     `json:"result_balance"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// UnlockIncidentEvent alerts operators that the store was left inconsistent:
// a resource unlocked with no matching debit.
type UnlockIncidentEvent struct {
	RequestID  string    `json:"request_id"`
	ResourceID string    `json:"resource_id"`
	UserID     string    `json:"user_id"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CreditsGrantedEvent announces purchased credits applied to a balance.
type CreditsGrantedEvent struct {
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	Credits       int64     `json:"credits"`
	ResultBalance int64     `json:"result_balance"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers domain events to the message broker. Publishing is
// best-effort and asynchronous; a delivery failure never fails the operation
// that raised the event.
type Publisher interface {
	PublishUnlockCompleted(ctx context.Context, event UnlockCompletedEvent) error
	PublishUnlockIncident(ctx context.Context, event UnlockIncidentEvent) error
	PublishCreditsGranted(ctx context.Context, event CreditsGrantedEvent) error
	Close() error
}
