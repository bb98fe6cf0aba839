package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	eventport "github.com/yorby-ai/entitlement-service/internal/domain/port/events"
	usecaseport "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
	creditUseCase "github.com/yorby-ai/entitlement-service/internal/domain/usecase/credit"
	resourceUseCase "github.com/yorby-ai/entitlement-service/internal/domain/usecase/resource"
	unlockUseCase "github.com/yorby-ai/entitlement-service/internal/domain/usecase/unlock"

	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/handler"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/middleware"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/routes"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/cache"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/database"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/database/migration"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/events"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/logger"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/repository"
	timeProvider "github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/time"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/config"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/observability"
)

const serviceVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(parseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Initialize tracing
	tracingShutdown, err := observability.InitTracing(context.Background(), &observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, serviceVersion)
	if err != nil {
		appLogger.Error("Failed to initialize tracing", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Connect to the database
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Connect to Redis (token revocation, webhook idempotency keys)
	redisClient, err := cache.NewClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to Redis", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	// Event publisher
	var publisher eventport.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(&events.Config{
			Brokers:       cfg.Kafka.Brokers,
			UnlockTopic:   cfg.Kafka.UnlockTopic,
			IncidentTopic: cfg.Kafka.IncidentTopic,
			CreditTopic:   cfg.Kafka.CreditTopic,
		}, appLogger)
	} else {
		publisher = events.NewNoopPublisher()
	}

	// Metrics
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	// Initialize repositories
	resourceRepo := repository.NewResourceRepository(dbManager.DB(), tp, appLogger)
	creditRepo := repository.NewCreditRepository(dbManager.DB(), tp, appLogger)
	recordRepo := repository.NewUnlockRecordRepository(dbManager.DB(), appLogger)
	incidentRepo := repository.NewUnlockIncidentRepository(dbManager.DB(), appLogger)

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Select the unlock strategy
	incidentReporter := unlockUseCase.NewIncidentReporter(incidentRepo, publisher, tp, appLogger)

	var unlocker usecaseport.Unlocker
	switch cfg.Unlock.Strategy {
	case config.StrategySequential:
		unlocker = unlockUseCase.NewSequentialUnlocker(
			resourceRepo, creditRepo, recordRepo, incidentReporter, tp, appLogger)
	default:
		unlocker = unlockUseCase.NewAtomicUnlocker(uow, tp, appLogger)
	}

	appLogger.Info("Unlock strategy selected", map[string]any{
		"strategy": cfg.Unlock.Strategy,
	})

	// Initialize use cases
	unlockService := unlockUseCase.NewService(unlocker, publisher, metrics, tp, appLogger)
	creditService := creditUseCase.NewUseCase(creditRepo, redisClient, publisher, tp, appLogger)
	resourceService := resourceUseCase.NewUseCase(resourceRepo, appLogger)

	// Initialize API handlers
	unlockHandler := handler.NewUnlockHandler(unlockService, appLogger)
	resourceHandler := handler.NewResourceHandler(resourceService, appLogger)
	creditHandler := handler.NewCreditHandler(creditService, appLogger)
	webhookHandler := handler.NewWebhookHandler(creditService, cfg.Webhook.SigningSecret, metrics, appLogger)

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
		Leeway: cfg.Auth.Leeway,
	}, redisClient, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, metrics)
	routes.SetupRoutes(router, unlockHandler, resourceHandler, creditHandler, webhookHandler, authMiddleware)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	// Flush pending events and spans before the process exits
	if err := publisher.Close(); err != nil {
		appLogger.Error("Failed to close event publisher", map[string]any{
			"error": err.Error(),
		})
	}
	if err := tracingShutdown(ctx); err != nil {
		appLogger.Error("Failed to shut down tracing", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// parseLogLevel maps a config string to a core log level
func parseLogLevel(level string) coreport.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return coreport.LogLevelDebug
	case "warn":
		return coreport.LogLevelWarn
	case "error":
		return coreport.LogLevelError
	default:
		return coreport.LogLevelInfo
	}
}
