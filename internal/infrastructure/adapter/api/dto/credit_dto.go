package dto

// BalanceResponse represents the API response for a user's credit balance
type BalanceResponse struct {
	UserID  string `json:"userId"`
	Credits int64  `json:"credits"`
}

// CheckoutEventRequest is the payload of a checkout-completed webhook
type CheckoutEventRequest struct {
	EventID string `json:"event_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	Credits int64  `json:"credits" binding:"required,gt=0"`
}

// WebhookAckResponse acknowledges a processed webhook delivery
type WebhookAckResponse struct {
	Received bool `json:"received"`
}
