package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitwall/internal/api/middleware"
	"pitwall/internal/auth"
	"pitwall/internal/store"
)

// AuthHandler issues and ends sessions against the static roster.
type AuthHandler struct {
	store    *store.Store
	sessions *auth.Sessions
}

func NewAuthHandler(st *store.Store, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{store: st, sessions: sessions}
}

// Login checks the credentials against the roster and sets the session
// cookie. Passwords are compared in plaintext: the roster is a fixed demo
// list, not a credential store.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_credentials"})
		return
	}

	doc, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}

	for _, u := range doc.Users {
		if u.Username == input.Username && u.Password == input.Password {
			token, err := h.sessions.Issue(u)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
				return
			}

			maxAge := int(h.sessions.TTL().Seconds())
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)

			c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{
				"username": u.Username,
				"name":     u.Name,
				"role":     u.Role,
			}})
			return
		}
	}

	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid_credentials"})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Whoami reports the resolved identity or null. It never errors.
func (h *AuthHandler) Whoami(c *gin.Context) {
	if ident, ok := middleware.IdentityFrom(c); ok {
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": ident})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": nil})
}
