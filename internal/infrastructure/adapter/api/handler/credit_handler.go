package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	usecaseport "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/middleware"
)

// CreditHandler handles credit balance HTTP requests
type CreditHandler struct {
	creditService usecaseport.CreditUseCase
	logger        coreport.Logger
}

// NewCreditHandler creates a new credit handler instance
func NewCreditHandler(creditService usecaseport.CreditUseCase, logger coreport.Logger) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		logger:        logger,
	}
}

// GetBalance handles the GET /credits endpoint
func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	balance, err := h.creditService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to read balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  balance.UserID,
		Credits: balance.Credits,
	})
}
