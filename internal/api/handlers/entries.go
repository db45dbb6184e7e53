package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pitwall/internal/api/middleware"
	"pitwall/internal/entry"
	"pitwall/internal/models"
	"pitwall/internal/storage"
)

// EntryHandler exposes the entry lifecycle: create, patch, delete and the
// two purchase-flow transitions.
type EntryHandler struct {
	manager *entry.Manager
	storage *storage.Client
}

func NewEntryHandler(manager *entry.Manager, st *storage.Client) *EntryHandler {
	return &EntryHandler{manager: manager, storage: st}
}

func (h *EntryHandler) Create(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	var req entry.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		entryOps.WithLabelValues("create", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}

	created, err := h.manager.Create(ident, req)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	entryOps.WithLabelValues("create", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": created})
}

func (h *EntryHandler) Update(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	id, ok := entryID(c)
	if !ok {
		return
	}

	var req entry.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		entryOps.WithLabelValues("update", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_payload"})
		return
	}

	updated, err := h.manager.Update(ident, id, req)
	if err != nil {
		h.fail(c, "update", err)
		return
	}

	entryOps.WithLabelValues("update", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": updated})
}

func (h *EntryHandler) Delete(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	id, ok := entryID(c)
	if !ok {
		return
	}

	removed, err := h.manager.Delete(ident, id)
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	h.removeImages(removed.Images)

	entryOps.WithLabelValues("delete", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// removeImages releases the stored files behind an entry's image references.
// Best effort only: the entry is already gone, a leftover file just costs
// disk space.
func (h *EntryHandler) removeImages(refs []string) {
	for _, ref := range refs {
		key := strings.TrimPrefix(ref, "/api/v1/uploads/")
		if key == "" || strings.Contains(key, "/") {
			continue
		}
		if err := h.storage.DeleteImage(key); err != nil {
			slog.Warn("failed to remove entry image", "key", key, "error", err)
		}
	}
}

// MarkPurchased forces an entry into the purchased section.
func (h *EntryHandler) MarkPurchased(c *gin.Context) {
	h.transition(c, "purchase", h.manager.MarkPurchased)
}

// Restock moves a purchased entry back to the to-purchase section.
func (h *EntryHandler) Restock(c *gin.Context) {
	h.transition(c, "restock", h.manager.MoveBack)
}

func (h *EntryHandler) transition(c *gin.Context, op string, fn func(models.Identity, int64) (models.Entry, error)) {
	ident, _ := middleware.IdentityFrom(c)

	id, ok := entryID(c)
	if !ok {
		return
	}

	updated, err := fn(ident, id)
	if err != nil {
		h.fail(c, op, err)
		return
	}

	entryOps.WithLabelValues(op, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": updated})
}

// fail maps domain errors onto the wire contract.
func (h *EntryHandler) fail(c *gin.Context, op string, err error) {
	var verr *entry.ValidationError
	switch {
	case errors.As(err, &verr):
		entryOps.WithLabelValues(op, "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
	case errors.Is(err, entry.ErrNotFound):
		entryOps.WithLabelValues(op, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
	case errors.Is(err, entry.ErrForbidden):
		entryOps.WithLabelValues(op, "forbidden").Inc()
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
	default:
		entryOps.WithLabelValues(op, "error").Inc()
		slog.Error("entry operation failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
	}
}

func entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_id"})
		return 0, false
	}
	return id, true
}
