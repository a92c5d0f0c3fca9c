package handlers

import (
	"net/http"

	"pantry-tracker/internal/models"
	"pantry-tracker/internal/service/inventory"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	svc *inventory.Service
}

func NewHistoryHandler(svc *inventory.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// GetHistory returns the purchase log, newest first.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	entries := h.svc.History()
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ClearHistory empties the entire purchase log.
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	if err := h.svc.ClearHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}
