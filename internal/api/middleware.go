package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/models"
)

const (
	ctxUserKey  = "authUser"
	ctxTokenKey = "authToken"
)

// requireAuth resolves the bearer token to a user before the handler runs:
// signature and expiry first, then membership in the user's session
// registry. The resolved user and the raw token are stored on the context
// so logout can revoke exactly the presented session.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c)
			return
		}

		user, err := h.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
}

// currentSession returns the user and raw token placed on the context by
// requireAuth. Only call it from handlers behind the middleware.
func currentSession(c *gin.Context) (*models.User, string) {
	user := c.MustGet(ctxUserKey).(*models.User)
	token := c.MustGet(ctxTokenKey).(string)
	return user, token
}
