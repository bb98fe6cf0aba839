package dto

import "time"

// ResourceResponse represents the API response for a resource read
type ResourceResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	LockStatus string    `json:"lockStatus"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
