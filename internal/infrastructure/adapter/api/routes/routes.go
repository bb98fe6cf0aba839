package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/handler"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/middleware"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/observability"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	unlockHandler *handler.UnlockHandler,
	resourceHandler *handler.ResourceHandler,
	creditHandler *handler.CreditHandler,
	webhookHandler *handler.WebhookHandler,
	authMiddleware gin.HandlerFunc,
) {
	// Authenticated user-facing routes
	resourceRoutes := router.Group("/resources", authMiddleware)
	{
		// GET /resources/:resourceId
		resourceRoutes.GET("/:resourceId", resourceHandler.GetResource)

		// POST /resources/:resourceId/unlock
		resourceRoutes.POST("/:resourceId/unlock", unlockHandler.UnlockResource)
	}

	// GET /credits
	router.GET("/credits", authMiddleware, creditHandler.GetBalance)

	// Signed billing provider callback, no bearer auth
	router.POST("/webhooks/checkout", webhookHandler.HandleCheckoutEvent)

	// Operational endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, metrics *observability.Metrics) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(metrics))
	router.Use(middleware.CORS())
}
