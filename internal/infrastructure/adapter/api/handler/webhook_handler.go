package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	usecaseport "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/observability"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body
const SignatureHeader = "X-Checkout-Signature"

// WebhookHandler consumes checkout-completed events from the billing provider
type WebhookHandler struct {
	creditService usecaseport.CreditUseCase
	signingSecret string
	metrics       *observability.Metrics
	logger        coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(
	creditService usecaseport.CreditUseCase,
	signingSecret string,
	metrics *observability.Metrics,
	logger coreport.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		creditService: creditService,
		signingSecret: signingSecret,
		metrics:       metrics,
		logger:        logger,
	}
}

// HandleCheckoutEvent handles the POST /webhooks/checkout endpoint
func (h *WebhookHandler) HandleCheckoutEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Could not read request body",
		})
		return
	}

	if !h.verifySignature(body, c.GetHeader(SignatureHeader)) {
		h.logger.Warn("Webhook signature verification failed", map[string]any{
			"ip": c.ClientIP(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
			Message: "Invalid signature",
		})
		return
	}

	var req dto.CheckoutEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}
	if req.EventID == "" || req.UserID == "" || req.Credits <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Missing or invalid event fields",
		})
		return
	}

	_, err = h.creditService.GrantCredits(c.Request.Context(), usecaseport.GrantRequest{
		EventID: req.EventID,
		UserID:  req.UserID,
		Credits: req.Credits,
	})

	switch {
	case err == nil:
		h.metrics.RecordCreditGrant("granted")
	case domainerr.IsDuplicateEventError(err):
		// Redelivery of an already-applied event still gets a 200 so the
		// provider stops retrying
		h.metrics.RecordCreditGrant("duplicate")
	default:
		h.metrics.RecordCreditGrant("error")
		h.logger.Error("Failed to apply credit grant", map[string]any{
			"event_id": req.EventID,
			"user_id":  req.UserID,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAckResponse{Received: true})
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.signingSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
