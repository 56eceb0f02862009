package handlers

import (
	"net/http"

	"admindash/internal/http/middleware"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a API) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", a.SecureCookies, true)
}

func (a API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sess, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	a.setSessionCookie(c, sess.Token, int(services.SessionTTL.Seconds()))
	respondOK(c, gin.H{"user": sess.User, "expires_at": sess.ExpiresAt})
}

func (a API) Logout(c *gin.Context) {
	a.setSessionCookie(c, "", -1)
	respondOK(c, gin.H{"logged_out": true})
}

func Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	respondOK(c, user)
}
