package persistence

import (
	"context"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
)

// CreditRepository defines the balance half of the entitlement store.
type CreditRepository interface {
	// GetBalance retrieves a user's credit balance.
	//
	// Possible errors:
	// - ErrBalanceNotFound: no balance row was provisioned for the user
	// - ErrDatabaseConnection: store unreachable
	GetBalance(ctx context.Context, userID string) (*entity.CreditBalance, error)

	// GetBalanceForUpdate is GetBalance with an exclusive row lock. Only
	// meaningful inside a UnitOfWork transaction.
	GetBalanceForUpdate(ctx context.Context, userID string) (*entity.CreditBalance, error)

	// Decrement debits credits with a conditional update: the write only
	// applies while the stored balance still covers the amount, so two racing
	// debits of a balance of one cannot both succeed.
	//
	// Possible errors:
	// - ErrInsufficientCredits: the stored balance no longer covers the amount
	// - ErrBalanceNotFound
	// - ErrDatabaseConnection
	Decrement(ctx context.Context, userID string, amount int64) (*entity.CreditBalance, error)

	// Grant adds purchased credits, creating the balance row when absent.
	//
	// Possible errors:
	// - ErrInvalidCreditAmount
	// - ErrDatabaseConnection
	Grant(ctx context.Context, userID string, amount int64) (*entity.CreditBalance, error)

	// Create stores a new balance row.
	//
	// Possible errors:
	// - ErrConstraintViolation: a row for the user already exists
	// - ErrDatabaseConnection
	Create(ctx context.Context, balance *entity.CreditBalance) error
}
