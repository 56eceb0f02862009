package middleware

import (
	"net/http"

	"admindash/internal/domain"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the admin session token. The Authorization header is left free
// for provider keys on the AI playground.
const SessionCookie = "admin_session"

const (
	ctxUserRole  = "userRole"
	ctxUserEmail = "userEmail"
	ctxUserID    = "userID"
)

type SessionParser interface {
	ParseSession(token string) (domain.RequestContext, error)
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"error":      message,
		"code":       code,
		"request_id": GetRequestID(c),
	})
}

// RequireSession verifies the session cookie and stores the caller's role and email
// on the context for RequireRoles and handlers.
func RequireSession(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		rc, err := parser.ParseSession(token)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
			return
		}
		c.Set(ctxUserRole, rc.Role)
		c.Set(ctxUserEmail, rc.Email)
		c.Set(ctxUserID, rc.UserID)
		c.Next()
	}
}

// CurrentUser returns the session stored by RequireSession.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	role := c.GetString(ctxUserRole)
	if role == "" {
		return domain.RequestContext{}, false
	}
	return domain.RequestContext{
		UserID: c.GetString(ctxUserID),
		Email:  c.GetString(ctxUserEmail),
		Role:   role,
	}, true
}
