package dto

// UnlockSuccessResponse represents a completed unlock
type UnlockSuccessResponse struct {
	Success string `json:"success"`
	Credits int64  `json:"credits"`
}
