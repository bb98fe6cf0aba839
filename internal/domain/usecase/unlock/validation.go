package unlock

import (
	"github.com/google/uuid"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
)

// Validator checks unlock inputs before any store call is made
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUnlock validates the request context and resource id. Resource ids
// are UUIDs minted by the upload/generation services.
func (v *Validator) ValidateUnlock(reqCtx portuse.RequestContext, resourceID string) error {
	if reqCtx.UserID == "" {
		return errs.ErrUnauthorized
	}
	if reqCtx.RequestID == "" {
		return errs.ErrInvalidRequest
	}
	if resourceID == "" {
		return errs.ErrInvalidResourceID
	}
	if _, err := uuid.Parse(resourceID); err != nil {
		return errs.ErrInvalidResourceID
	}
	return nil
}
