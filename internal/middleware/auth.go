package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/services"
)

const (
	contextUserID    = "user_id"
	contextSessionID = "session_id"
)

// RequireSession authenticates the request from the session cookie. Requests
// without a live session are redirected to the login page with the original
// path in ?next=, matching the browser-facing challenge the app renders.
func RequireSession(sessions *services.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		userID, sessionID, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(contextUserID, userID)
		c.Set(contextSessionID, sessionID)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.Path))
	c.Abort()
}

// GetUserID returns the authenticated user id set by RequireSession, or
// uuid.Nil outside the session gate.
func GetUserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func GetSessionID(c *gin.Context) string {
	v, ok := c.Get(contextSessionID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
