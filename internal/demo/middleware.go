package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations when demo mode is active, so a
// publicly hosted instance cannot have its catalog modified. Read-only
// operations (GET) are always allowed, as are the auth endpoints and
// per-user state (favorites, listening progress, player settings) that
// visitors need to try the app.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		// Allow HEAD and OPTIONS for CORS/preflight
		if c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

// isAllowedPath checks if a path is allowed for write operations in demo
// mode. Intentionally restrictive: only explicitly allowed prefixes pass.
func (m *Middleware) isAllowedPath(path string) bool {
	allowedPrefixes := []string{
		// Auth endpoints need to work for the login flow
		"/api/auth/",
		// Per-user state, scoped to the visitor's own account
		"/api/favorites",
		"/api/progress",
		"/api/settings/",
		"/api/notifications/",
	}

	for _, allowed := range allowedPrefixes {
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	return false
}

func (m *Middleware) respondBlocked(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"error":     "هذا الإجراء معطل في الوضع التجريبي",
		"demo_mode": true,
	})
	c.Abort()
}
