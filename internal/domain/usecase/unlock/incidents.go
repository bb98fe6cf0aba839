package unlock

import (
	"context"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/domain/port/events"
	"github.com/yorby-ai/entitlement-service/internal/domain/port/persistence"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
)

// IncidentReporter escalates a failed compensation to a human operator: the
// resource is unlocked, no credit was debited, and nothing in the request
// path can repair that anymore. It writes a durable incident row and raises
// a broker alert. Reporting itself is best-effort; the caller still only
// sees the generic failure message.
type IncidentReporter struct {
	incidentRepo persistence.UnlockIncidentRepository
	publisher    events.Publisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewIncidentReporter creates a new IncidentReporter
func NewIncidentReporter(
	incidentRepo persistence.UnlockIncidentRepository,
	publisher events.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *IncidentReporter {
	return &IncidentReporter{
		incidentRepo: incidentRepo,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Report records the inconsistency. Uses a background-safe context so a
// request timeout that caused the failure cannot also suppress the report.
func (r *IncidentReporter) Report(ctx context.Context, reqCtx portuse.RequestContext, resourceID, detail string) {
	incident := entity.NewUnlockIncident(reqCtx.RequestID, resourceID, reqCtx.UserID, detail, r.timeProvider)

	if err := r.incidentRepo.Create(context.WithoutCancel(ctx), incident); err != nil {
		r.logger.Error("Failed to persist unlock incident", map[string]any{
			"request_id":  reqCtx.RequestID,
			"resource_id": resourceID,
			"user_id":     reqCtx.UserID,
			"detail":      detail,
			"error":       err.Error(),
		})
	}

	event := events.UnlockIncidentEvent{
		RequestID:  reqCtx.RequestID,
		ResourceID: resourceID,
		UserID:     reqCtx.UserID,
		Detail:     detail,
		OccurredAt: r.timeProvider.Now(),
	}
	if err := r.publisher.PublishUnlockIncident(context.WithoutCancel(ctx), event); err != nil {
		r.logger.Error("Failed to publish unlock incident event", map[string]any{
			"request_id":  reqCtx.RequestID,
			"resource_id": resourceID,
			"error":       err.Error(),
		})
	}

	r.logger.Error("Unlock left store inconsistent: resource unlocked with no debit", map[string]any{
		"request_id":  reqCtx.RequestID,
		"resource_id": resourceID,
		"user_id":     reqCtx.UserID,
		"detail":      detail,
	})
}
