package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	usecaseport "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/middleware"
)

// UnlockHandler handles unlock-related HTTP requests
type UnlockHandler struct {
	unlockService usecaseport.UnlockUseCase
	logger        coreport.Logger
}

// NewUnlockHandler creates a new unlock handler instance
func NewUnlockHandler(unlockService usecaseport.UnlockUseCase, logger coreport.Logger) *UnlockHandler {
	return &UnlockHandler{
		unlockService: unlockService,
		logger:        logger,
	}
}

// UnlockResource handles the POST /resources/:resourceId/unlock endpoint
func (h *UnlockHandler) UnlockResource(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	resourceID := c.Param("resourceId")

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	reqCtx := usecaseport.RequestContext{
		UserID:    userID,
		RequestID: requestID,
	}

	result := h.unlockService.Unlock(c.Request.Context(), reqCtx, resourceID)

	if result.Success {
		c.JSON(http.StatusOK, dto.UnlockSuccessResponse{
			Success: result.Message,
			Credits: result.ResultBalance,
		})
		return
	}

	// Business failures carry one of the two approved messages; the status
	// code distinguishes only missing resources
	c.JSON(result.StatusCode, dto.BusinessErrorResponse{
		Error: result.Message,
	})
}
