package events

import (
	"context"

	eventport "github.com/yorby-ai/entitlement-service/internal/domain/port/events"
)

// NoopPublisher discards events. Used when the broker is disabled and in tests.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops everything
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishUnlockCompleted(ctx context.Context, event eventport.UnlockCompletedEvent) error {
	return nil
}

func (p *NoopPublisher) PublishUnlockIncident(ctx context.Context, event eventport.UnlockIncidentEvent) error {
	return nil
}

func (p *NoopPublisher) PublishCreditsGranted(ctx context.Context, event eventport.CreditsGrantedEvent) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
