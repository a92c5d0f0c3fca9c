package handlers

import (
	"errors"
	"io"
	"net/http"

	"pantry-tracker/internal/models"
	"pantry-tracker/internal/service/inventory"

	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	svc *inventory.Service
}

func NewSnapshotHandler(svc *inventory.Service) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

// Export returns the full-state document for download.
func (h *SnapshotHandler) Export(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="pantry-snapshot.json"`)
	c.JSON(http.StatusOK, h.svc.ExportSnapshot())
}

// Import replaces both collections wholesale. A document missing either
// collection is rejected and nothing changes.
func (h *SnapshotHandler) Import(c *gin.Context) {
	document, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	if err := h.svc.ImportSnapshot(c.Request.Context(), document); err != nil {
		if errors.Is(err, models.ErrInvalidSnapshot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Snapshot imported"})
}
