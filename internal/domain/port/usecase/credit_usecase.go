package usecase

import (
	"context"
)

// BalanceResponse is the standardized balance payload
type BalanceResponse struct {
	UserID  string `json:"userId"`
	Credits int64  `json:"credits"`
}

// GrantRequest is a checkout-completed webhook translated to domain terms
type GrantRequest struct {
	EventID string
	UserID  string
	Credits int64
}

// CreditUseCase defines credit balance reads and webhook-driven grants.
type CreditUseCase interface {
	// GetBalance returns the user's current credits. A user with no balance
	// row reads as zero credits, not as an error.
	GetBalance(ctx context.Context, userID string) (*BalanceResponse, error)

	// GrantCredits applies a purchased credit pack exactly once per event id.
	GrantCredits(ctx context.Context, req GrantRequest) (*BalanceResponse, error)
}
