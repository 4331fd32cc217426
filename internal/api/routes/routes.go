// Package routes defines the HTTP routes for the TravelOps Console Service.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/handlers"
	"github.com/travelops/console-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler        *handlers.HealthHandler
	AuthHandler          *handlers.AuthHandler
	DashboardHandler     *handlers.DashboardHandler
	ProfileHandler       *handlers.ProfileHandler
	TravelersHandler     *handlers.TravelersHandler
	ConversationsHandler *handlers.ConversationsHandler
	FeedbackHandler      *handlers.FeedbackHandler
	AuditHandler         *handlers.AuditHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	// API v1 routes - all routes under /api/v1/console
	v1 := r.Group("/api/v1/console")
	{
		// Health check routes (no auth required)
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Auth routes establish the session; only sign-out needs one
		auth := v1.Group("/auth")
		{
			auth.POST("/sign-in", cfg.AuthHandler.SignIn)
			auth.POST("/sign-up", cfg.AuthHandler.SignUp)
			auth.POST("/sign-out", cfg.AuthHandler.SignOut)
			auth.POST("/reset-password", cfg.AuthHandler.ResetPassword)
			auth.PUT("/password", cfg.AuthMiddleware.RequireSession(), cfg.AuthHandler.UpdatePassword)
		}

		// Operator routes require an established session
		protected := v1.Group("")
		protected.Use(cfg.AuthMiddleware.RequireSession())
		{
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/state", cfg.DashboardHandler.State)
				dashboard.POST("/refresh", cfg.DashboardHandler.Refresh)
				dashboard.PUT("/selected-traveler", cfg.DashboardHandler.SelectTraveler)
				dashboard.DELETE("/error", cfg.DashboardHandler.ClearError)
			}

			protected.GET("/profile", cfg.ProfileHandler.Get)
			protected.PATCH("/profile", cfg.ProfileHandler.Update)

			travelers := protected.Group("/travelers")
			{
				travelers.GET("", cfg.TravelersHandler.List)
				travelers.POST("", cfg.TravelersHandler.Create)
				travelers.GET("/:travelerId", cfg.TravelersHandler.Get)
				travelers.PATCH("/:travelerId", cfg.TravelersHandler.Update)
			}

			conversations := protected.Group("/conversations")
			{
				conversations.GET("", cfg.ConversationsHandler.List)
				conversations.POST("", cfg.ConversationsHandler.Create)
				conversations.GET("/:conversationId", cfg.ConversationsHandler.Get)
				conversations.PATCH("/:conversationId", cfg.ConversationsHandler.Update)
				conversations.GET("/:conversationId/messages", cfg.ConversationsHandler.ListMessages)
				conversations.POST("/:conversationId/messages", cfg.ConversationsHandler.CreateMessage)
				conversations.GET("/:conversationId/messages/stream", cfg.ConversationsHandler.StreamMessages)
			}

			feedback := protected.Group("/feedback")
			{
				feedback.GET("", cfg.FeedbackHandler.List)
				feedback.POST("", cfg.FeedbackHandler.Create)
				feedback.PATCH("/:feedbackId", cfg.FeedbackHandler.Update)
			}

			protected.GET("/audit", cfg.AuditHandler.List)
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	// Apply global middleware
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())

	// Setup routes
	Setup(r, cfg)
}
