// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// healthCheckPaths are polled by orchestrators and would drown the request log.
var healthCheckPaths = map[string]bool{
	"/api/v1/console/health": true,
	"/api/v1/console/ready":  true,
	"/api/v1/console/live":   true,
}

// LoggingMiddleware handles request logging.
type LoggingMiddleware struct {
	logger zerolog.Logger
}

// NewLoggingMiddleware creates a new LoggingMiddleware.
func NewLoggingMiddleware() *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: log.Logger,
	}
}

// NewLoggingMiddlewareWithLogger creates a new LoggingMiddleware with a custom logger.
func NewLoggingMiddlewareWithLogger(logger zerolog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Logger returns a gin middleware that logs completed requests. Health and
// liveness checks are skipped.
func (m *LoggingMiddleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		if healthCheckPaths[path] {
			return
		}

		latency := time.Since(start)
		status := c.Writer.Status()

		event := m.logger.Info()
		if status >= 400 && status < 500 {
			event = m.logger.Warn()
		} else if status >= 500 {
			event = m.logger.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", GetRequestID(c)).
			Int("body_size", c.Writer.Size()).
			Msg("request completed")
	}
}

// RequestLogger assigns each request an ID, echoes it in the X-Request-ID
// header and stores a request-scoped logger in the context.
func (m *LoggingMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		requestLogger := m.logger.With().
			Str("request_id", requestID).
			Logger()

		c.Set("logger", requestLogger)

		c.Next()
	}
}

// GetRequestLogger retrieves the request-scoped logger from context.
func GetRequestLogger(c *gin.Context) zerolog.Logger {
	if logger, exists := c.Get("logger"); exists {
		return logger.(zerolog.Logger)
	}
	return log.Logger
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		return requestID.(string)
	}
	return ""
}
