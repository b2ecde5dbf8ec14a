package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyEmail    = "auth_email"
	ContextKeyIsAdmin  = "auth_is_admin"
	ContextKeyAuthType = "auth_type" // "session", "bearer", or "none"
)

// AuthType indicates how the user was authenticated
type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
	AuthTypeBearer  AuthType = "bearer"
)

// Middleware resolves the caller's identity for every request. Route
// groups then apply RequireUser or RequireAdmin on top.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
	}
}

// Handler identifies the caller (bearer token first, then session) and
// stores the result in the Gin context. It never rejects; anonymous
// requests proceed with a zero user ID.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.tryBearerAuth(c); user != nil {
			// Bearer tokens are only issued to admins.
			m.setUserContext(c, user, true, AuthTypeBearer)
			c.Next()
			return
		}

		if user, isAdmin := m.trySessionAuth(c); user != nil {
			m.setUserContext(c, user, isAdmin, AuthTypeSession)
			c.Next()
			return
		}

		c.Set(ContextKeyUserID, uint(0))
		c.Set(ContextKeyAuthType, AuthTypeNone)
		c.Next()
	}
}

// RequireUser rejects anonymous and banned callers.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without admin membership. Session callers
// must have signed in through the admin flow; bearer callers were
// checked at token validation.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			return
		}
		c.Next()
	}
}

// tryBearerAuth attempts to authenticate using a Bearer token.
func (m *Middleware) tryBearerAuth(c *gin.Context) *entities.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	user, err := m.service.ValidateAdminToken(parts[1])
	if err != nil {
		return nil
	}
	return user
}

// trySessionAuth attempts to authenticate using the session cookie.
func (m *Middleware) trySessionAuth(c *gin.Context) (*entities.User, bool) {
	if m.sessionManager == nil {
		return nil, false
	}

	userID := m.sessionManager.GetUserID(c.Request)
	if userID == 0 {
		return nil, false
	}

	user, err := m.service.GetUserByID(userID)
	if err != nil {
		return nil, false
	}
	// A ban takes effect on the next request, not the next sign-in.
	if user.IsBanned {
		_ = m.sessionManager.DestroySession(c.Request)
		return nil, false
	}

	return user, m.sessionManager.IsAdminSession(c.Request)
}

// setUserContext stores user information in the Gin context.
func (m *Middleware) setUserContext(c *gin.Context, user *entities.User, isAdmin bool, authType AuthType) {
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyEmail, user.Email)
	c.Set(ContextKeyIsAdmin, isAdmin)
	c.Set(ContextKeyAuthType, authType)
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 if the request is anonymous.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetEmail retrieves the authenticated user's email from the context.
func GetEmail(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyEmail); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// IsAdmin reports whether the caller holds admin privileges.
func IsAdmin(c *gin.Context) bool {
	if v, exists := c.Get(ContextKeyIsAdmin); exists {
		if isAdmin, ok := v.(bool); ok {
			return isAdmin
		}
	}
	return false
}
