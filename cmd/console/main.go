// Package main is the entry point for the TravelOps Console Service.
// @title TravelOps Console Service API
// @version 1.0
// @description Admin console backend for AI-assisted traveler support: reactive dashboard cache, realtime reconciliation and entity access over a hosted data gateway
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/travelops/console-service
// @contact.email support@travelops.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/travelops/console-service/docs"
	"github.com/travelops/console-service/internal/api/handlers"
	"github.com/travelops/console-service/internal/api/middleware"
	"github.com/travelops/console-service/internal/api/routes"
	"github.com/travelops/console-service/internal/config"
	"github.com/travelops/console-service/internal/core/audit"
	"github.com/travelops/console-service/internal/core/cache"
	auditmongo "github.com/travelops/console-service/internal/infrastructure/audit/mongodb"
	rediscache "github.com/travelops/console-service/internal/infrastructure/cache/redis"
	"github.com/travelops/console-service/internal/infrastructure/gateway/supabase"
	"github.com/travelops/console-service/internal/pkg/encryption"
	"github.com/travelops/console-service/internal/services/authbridge"
	"github.com/travelops/console-service/internal/services/dashboard"
	"github.com/travelops/console-service/internal/services/directory"
	"github.com/travelops/console-service/internal/services/session"
	"github.com/travelops/console-service/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	ctx := context.Background()

	// Initialize the data gateway client
	gatewayClient, err := supabase.NewClient(supabase.Config{
		URL:     cfg.Gateway.URL,
		AnonKey: cfg.Gateway.AnonKey,
		Timeout: cfg.Gateway.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gateway client")
	}
	defer gatewayClient.Close()

	// Initialize cache client
	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	defer cacheClient.Close()

	// Initialize the audit recorder; the console runs without it when the
	// backend is unreachable.
	auditRecorder := createAuditRecorder(ctx, cfg.Audit)
	if auditRecorder != nil {
		defer auditRecorder.Close(ctx)
	}

	// Initialize encryptor for session persistence
	encryptor, err := createEncryptor(cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize encryptor")
	}

	// Initialize session service
	sessionService, err := session.NewService(&session.Config{
		Cache:     cacheClient,
		Encryptor: encryptor,
		TTL:       cfg.Session.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session service")
	}

	// Assemble the reactive state and its services
	st := store.New()

	directoryService, err := directory.NewService(&directory.Config{
		Store: gatewayClient.Store(),
		MetricsDefaults: directory.MetricsDefaults{
			AvgResponseTime:     cfg.Metrics.AvgResponseTime,
			SatisfactionScore:   cfg.Metrics.SatisfactionScore,
			IssueResolutionRate: cfg.Metrics.IssueResolutionRate,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize directory service")
	}

	dashboardService, err := dashboard.NewService(&dashboard.Config{
		Store:     st,
		Directory: directoryService,
		Realtime:  gatewayClient.Realtime(),
		Audit:     auditRecorder,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dashboard service")
	}

	bridge, err := authbridge.NewBridge(&authbridge.Config{
		Store:     st,
		Auth:      gatewayClient.Auth(),
		Directory: directoryService,
		Dashboard: dashboardService,
		Sessions:  sessionService,
		Tokens:    gatewayClient,
		Audit:     auditRecorder,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth bridge")
	}

	// Restore a persisted session before serving traffic
	if err := bridge.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("session restoration skipped")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Setup router
	router := setupRouter(cfg, gatewayClient, cacheClient, auditRecorder, st, directoryService, dashboardService, bridge)

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Close change subscriptions but keep the persisted session; the next
	// start restores it.
	bridge.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig) (cache.Cache, error) {
	cacheType := cache.Type(cfg.Type)

	switch cacheType {
	case cache.TypeRedis:
		return rediscache.NewCache(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
		})
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// createAuditRecorder creates the audit recorder, or returns nil when the
// backend cannot be reached.
func createAuditRecorder(ctx context.Context, cfg config.AuditConfig) audit.Recorder {
	if audit.Type(cfg.Type) != audit.TypeMongoDB {
		log.Warn().Str("type", cfg.Type).Msg("unsupported audit type, audit trail disabled")
		return nil
	}

	recorder, err := auditmongo.NewRecorder(ctx, &auditmongo.Config{
		URI:          cfg.URI,
		DatabaseName: cfg.Database,
	})
	if err != nil {
		log.Warn().Err(err).Msg("audit trail unavailable, continuing without it")
		return nil
	}

	if err := recorder.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure audit indexes")
	}

	return recorder
}

// createEncryptor creates the session encryptor from the configured key.
func createEncryptor(cfg config.SessionConfig) (encryption.Encryptor, error) {
	if cfg.EncryptionKey == "" {
		// Tokens land in the cache unencrypted; acceptable only in development.
		log.Warn().Msg("SESSION_ENCRYPTION_KEY not set, using NoOp encryptor")
		return encryption.NewNoOpEncryptor(), nil
	}
	return encryption.NewAESEncryptor(cfg.EncryptionKey)
}

// setupRouter assembles the Gin engine with middleware and routes.
func setupRouter(
	cfg *config.Config,
	gatewayClient *supabase.Client,
	cacheClient cache.Cache,
	auditRecorder audit.Recorder,
	st *store.Store,
	directoryService *directory.Service,
	dashboardService *dashboard.Service,
	bridge *authbridge.Bridge,
) *gin.Engine {
	router := gin.New()

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	}
	router.Use(middleware.NewCORSMiddleware(corsConfig))
	middleware.SetupCORSRoutes(router, corsConfig)

	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler:        handlers.NewHealthHandler(gatewayClient, cacheClient, auditRecorder),
		AuthHandler:          handlers.NewAuthHandler(bridge),
		DashboardHandler:     handlers.NewDashboardHandler(st, dashboardService),
		ProfileHandler:       handlers.NewProfileHandler(st, directoryService),
		TravelersHandler:     handlers.NewTravelersHandler(directoryService),
		ConversationsHandler: handlers.NewConversationsHandler(directoryService, dashboardService),
		FeedbackHandler:      handlers.NewFeedbackHandler(directoryService),
		AuditHandler:         handlers.NewAuditHandler(auditRecorder),
		AuthMiddleware:       middleware.NewAuthMiddleware(st),
	}, middleware.NewLoggingMiddleware(), middleware.NewErrorMiddleware())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())

	return router
}
