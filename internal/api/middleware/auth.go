package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitwall/internal/auth"
	"pitwall/internal/models"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "pitwall_session"

const identityKey = "identity"

// resolve pulls the session token from the cookie, falling back to a Bearer
// header for non-browser clients, and verifies it.
func resolve(c *gin.Context, sessions *auth.Sessions) (models.Identity, bool) {
	tokenString, err := c.Cookie(SessionCookie)
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		}
	}
	if tokenString == "" {
		return models.Identity{}, false
	}

	ident, err := sessions.Parse(tokenString)
	if err != nil {
		return models.Identity{}, false
	}
	return ident, true
}

// RequireAuth aborts with 401 unless the request carries a valid session.
func RequireAuth(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := resolve(c, sessions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "not_authenticated"})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// OptionalAuth resolves the identity when present but never aborts. Used by
// whoami, which answers null instead of erroring.
func OptionalAuth(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, ok := resolve(c, sessions); ok {
			c.Set(identityKey, ident)
		}
		c.Next()
	}
}

// IdentityFrom returns the resolved caller identity, if any.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	ident, ok := v.(models.Identity)
	return ident, ok
}
