package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pitwall/internal/storage"
)

// UploadHandler stores entry images and streams them back.
type UploadHandler struct {
	storage *storage.Client
	maxSize int64
}

func NewUploadHandler(st *storage.Client, maxSizeBytes int64) *UploadHandler {
	return &UploadHandler{storage: st, maxSize: maxSizeBytes}
}

// Upload stores one image and returns its reference. The reference is opaque
// to the tracker: entries carry it as a string, nothing more.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no_file"})
		return
	}
	if fileHeader.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file_too_large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}
	defer file.Close()

	key, err := h.storage.SaveImage(fileHeader.Filename, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("image upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": "/api/v1/uploads/" + key})
}

// Serve streams a stored image by key.
func (h *UploadHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	// SaveImage keys never contain a separator, so anything path-shaped is
	// a traversal attempt, not a miss.
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") || strings.Contains(key, "..") {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
		return
	}

	obj, err := h.storage.OpenImage(key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
		return
	}
	defer obj.Body.Close()

	if seeker, ok := obj.Body.(io.ReadSeeker); ok {
		http.ServeContent(c.Writer, c.Request, key, obj.LastModified, seeker)
		return
	}

	// Fallback for non-seekable backends
	c.DataFromReader(http.StatusOK, obj.ContentLength, obj.ContentType, obj.Body, map[string]string{
		"Cache-Control": "public, max-age=31536000",
	})
}
