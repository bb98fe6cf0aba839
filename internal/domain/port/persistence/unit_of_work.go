package persistence

import (
	"context"
)

// UnitOfWork coordinates multi-repository writes inside a single database
// transaction. The atomic unlock strategy runs its whole read-check-write
// sequence through one unit of work so partial states are impossible.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetResourceRepository returns a resource repository bound to the current transaction
	GetResourceRepository(ctx context.Context) ResourceRepository

	// GetCreditRepository returns a credit repository bound to the current transaction
	GetCreditRepository(ctx context.Context) CreditRepository

	// GetUnlockRecordRepository returns an unlock record repository bound to the current transaction
	GetUnlockRecordRepository(ctx context.Context) UnlockRecordRepository
}
