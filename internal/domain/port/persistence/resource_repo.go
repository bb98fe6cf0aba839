package persistence

import (
	"context"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
)

// ResourceRepository defines the lock-state half of the entitlement store.
// Each call is an independent round trip; callers needing multi-statement
// guarantees must go through the UnitOfWork.
type ResourceRepository interface {
	// GetByID retrieves a resource owned by the given user.
	//
	// Possible errors:
	// - ErrResourceNotFound: resource doesn't exist or belongs to another user
	// - ErrDatabaseConnection: store unreachable
	GetByID(ctx context.Context, resourceID, userID string) (*entity.Resource, error)

	// GetByIDForUpdate is GetByID with an exclusive row lock. Only meaningful
	// inside a UnitOfWork transaction.
	GetByIDForUpdate(ctx context.Context, resourceID, userID string) (*entity.Resource, error)

	// GetLockStatus reads just the lock status of a resource.
	//
	// Possible errors:
	// - ErrResourceNotFound
	// - ErrDatabaseConnection
	GetLockStatus(ctx context.Context, resourceID, userID string) (entity.LockStatus, error)

	// SetLockStatus writes the lock status of a resource.
	//
	// Possible errors:
	// - ErrResourceNotFound
	// - ErrDatabaseConnection
	SetLockStatus(ctx context.Context, resourceID string, status entity.LockStatus) error

	// Create stores a new resource. Used by seeding and tests; production
	// resource creation lives in the upload/generation services.
	Create(ctx context.Context, resource *entity.Resource) error
}
