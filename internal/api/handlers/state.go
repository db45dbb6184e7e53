package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitwall/internal/store"
)

// StateHandler serves the whole document and the export download.
type StateHandler struct {
	store *store.Store
}

func NewStateHandler(st *store.Store) *StateHandler {
	return &StateHandler{store: st}
}

type publicUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// GetState returns the full document with passwords stripped from the
// roster. The frontend re-renders everything from this response.
func (h *StateHandler) GetState(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}

	users := make([]publicUser, 0, len(doc.Users))
	for _, u := range doc.Users {
		users = append(users, publicUser{Username: u.Username, Name: u.Name, Role: u.Role})
	}

	c.JSON(http.StatusOK, gin.H{
		"project": doc.Project,
		"users":   users,
		"entries": doc.Entries,
	})
}

// Export downloads the persisted file as-is. Loading first guarantees the
// file exists and is well-formed before it is handed out.
func (h *StateHandler) Export(c *gin.Context) {
	if _, err := h.store.Load(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}
	c.FileAttachment(h.store.Path(), "pitwall-export.json")
}
