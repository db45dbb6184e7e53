package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitwall/internal/entry"
	"pitwall/internal/report"
)

// ReportHandler serves the derived dashboard views. Every response is
// recomputed from the current entry set.
type ReportHandler struct {
	manager *entry.Manager
}

func NewReportHandler(manager *entry.Manager) *ReportHandler {
	return &ReportHandler{manager: manager}
}

// Summary returns the work-tracking rollup plus the cost totals.
func (h *ReportHandler) Summary(c *gin.Context) {
	entries, err := h.manager.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"work": report.WorkSummary(entries),
		"cost": report.CostSummary(entries),
	})
}

// Timeline returns every entry's audit log flattened into one feed, most
// recent first.
func (h *ReportHandler) Timeline(c *gin.Context) {
	entries, err := h.manager.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "events": report.TimelineFeed(entries)})
}

// Purchases returns the purchase-manager board.
func (h *ReportHandler) Purchases(c *gin.Context) {
	entries, err := h.manager.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "board": report.Purchases(entries)})
}
