package persistence

import (
	"context"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
)

// UnlockRecordRepository persists the audit trail of unlock attempts.
type UnlockRecordRepository interface {
	// Create saves a new unlock record.
	//
	// Possible errors:
	// - ErrConstraintViolation: a record with the same request id exists
	// - ErrDatabaseConnection
	Create(ctx context.Context, record *entity.UnlockRecord) error

	// Update persists status changes to an existing record.
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Update(ctx context.Context, record *entity.UnlockRecord) error

	// ListByResource returns the attempts recorded against a resource, newest
	// first. Used by the incident reconciliation tooling.
	ListByResource(ctx context.Context, resourceID string) ([]*entity.UnlockRecord, error)
}
