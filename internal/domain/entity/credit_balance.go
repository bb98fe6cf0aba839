package entity

import (
	"time"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
)

// UnlockCost is the number of credits debited for one successful unlock,
// regardless of resource kind.
const UnlockCost int64 = 1

// CreditBalance tracks a user's available credits. The count is private so it
// can only move through Spend and Grant, which keep it non-negative.
type CreditBalance struct {
	UserID    string
	credits   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCreditBalance creates a balance row for a user. A zero initial count is
// valid; negative is not.
func NewCreditBalance(userID string, initialCredits int64, timeProvider coreport.TimeProvider) (*CreditBalance, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if initialCredits < 0 {
		return nil, errs.ErrInvalidCreditAmount
	}

	now := timeProvider.Now()
	return &CreditBalance{
		UserID:    userID,
		credits:   initialCredits,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Credits returns the current available credit count
func (b *CreditBalance) Credits() int64 {
	return b.credits
}

// SetCredits sets the count directly. For repository hydration only.
func (b *CreditBalance) SetCredits(credits int64, timeProvider coreport.TimeProvider) {
	b.credits = credits
	b.UpdatedAt = timeProvider.Now()
}

// CanSpend reports whether the balance covers the given amount
func (b *CreditBalance) CanSpend(amount int64) bool {
	return b.credits >= amount
}

// Spend debits the balance, rejecting amounts it cannot cover
func (b *CreditBalance) Spend(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidCreditAmount
	}
	if b.credits < amount {
		return errs.NewInsufficientCreditsError(b.UserID, amount, b.credits)
	}

	b.credits -= amount
	b.UpdatedAt = timeProvider.Now()
	return nil
}

// Grant adds purchased credits to the balance
func (b *CreditBalance) Grant(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidCreditAmount
	}

	b.credits += amount
	b.UpdatedAt = timeProvider.Now()
	return nil
}
