// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/store"
)

// AuthMiddleware gates operator endpoints on the service-held session. The
// console signs in once via the auth endpoints; there is no per-request token.
type AuthMiddleware struct {
	store *store.Store
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(st *store.Store) *AuthMiddleware {
	return &AuthMiddleware{
		store: st,
	}
}

// RequireSession returns a gin middleware that rejects requests while no
// staff session is established.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.store.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "no active session, sign in first",
			})
			return
		}

		c.Next()
	}
}
