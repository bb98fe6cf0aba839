package resource

import (
	"context"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/domain/port/persistence"
)

// UseCase serves owner-scoped resource reads
type UseCase struct {
	resourceRepo persistence.ResourceRepository
	logger       coreport.Logger
}

// NewUseCase creates a new resource use case instance
func NewUseCase(resourceRepo persistence.ResourceRepository, logger coreport.Logger) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// GetResource returns a resource with its lock status. Resources owned by
// other users read as not found rather than forbidden, so resource ids leak
// no existence information.
func (u *UseCase) GetResource(ctx context.Context, userID, resourceID string) (*entity.Resource, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if resourceID == "" {
		return nil, errs.ErrInvalidResourceID
	}

	res, err := u.resourceRepo.GetByID(ctx, resourceID, userID)
	if err != nil {
		if !errs.IsNotFoundError(err) {
			u.logger.Error("Failed to read resource", map[string]any{
				"resource_id": resourceID,
				"user_id":     userID,
				"error":       err.Error(),
			})
		}
		return nil, err
	}

	return res, nil
}
