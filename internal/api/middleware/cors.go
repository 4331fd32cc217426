package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsAllowMethods lists every method the console API serves.
var corsAllowMethods = strings.Join([]string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}, ", ")

// corsAllowHeaders lists the request headers the dashboard frontend sends.
var corsAllowHeaders = strings.Join([]string{
	"Origin",
	"Content-Type",
	"Accept",
	"Authorization",
	"X-Request-ID",
	"Cache-Control",
}, ", ")

// CORSConfig controls which browser origins may call the console API.
type CORSConfig struct {
	// AllowOrigins are the dashboard origins admitted by the browser
	// preflight. "*" admits any origin.
	AllowOrigins []string
}

// DefaultCORSConfig admits the local dashboard dev servers.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
	}
}

// NewCORSMiddleware creates a CORS middleware admitting the configured
// dashboard origins. SSE responses rely on the exposed Content-Type so the
// browser can read the event stream.
func NewCORSMiddleware(cfg CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if originAllowed(cfg.AllowOrigins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Expose-Headers", "Content-Type, Content-Length, X-Request-ID")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		// Preflight requests stop here, before the session gate.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupCORSRoutes registers a catch-all OPTIONS handler so preflights for
// unknown paths still get CORS headers instead of a bare 404.
func SetupCORSRoutes(router *gin.Engine, cfg CORSConfig) {
	router.OPTIONS("/*path", NewCORSMiddleware(cfg))
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
