package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	resourceUseCase "github.com/yorby-ai/entitlement-service/internal/domain/usecase/resource"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/middleware"
)

// ResourceHandler handles resource read HTTP requests
type ResourceHandler struct {
	resourceService *resourceUseCase.UseCase
	logger          coreport.Logger
}

// NewResourceHandler creates a new resource handler instance
func NewResourceHandler(resourceService *resourceUseCase.UseCase, logger coreport.Logger) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		logger:          logger,
	}
}

// GetResource handles the GET /resources/:resourceId endpoint
func (h *ResourceHandler) GetResource(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	resourceID := c.Param("resourceId")

	res, err := h.resourceService.GetResource(c.Request.Context(), userID, resourceID)
	if err != nil {
		switch {
		case domainerr.IsNotFoundError(err):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Resource not found",
			})
		case domainerr.ErrorCode(err) < 5000:
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Invalid request",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ResourceResponse{
		ID:         res.ID,
		Kind:       string(res.Kind),
		LockStatus: string(res.LockStatus),
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.UpdatedAt,
	})
}
