package persistence

import (
	"context"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
)

// UnlockIncidentRepository persists operator-facing inconsistency reports.
type UnlockIncidentRepository interface {
	// Create appends a new incident.
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Create(ctx context.Context, incident *entity.UnlockIncident) error

	// ListUnresolved returns incidents awaiting operator action, oldest first.
	ListUnresolved(ctx context.Context) ([]*entity.UnlockIncident, error)
}
