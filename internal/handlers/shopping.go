package handlers

import (
	"errors"
	"net/http"

	"pantry-tracker/internal/models"
	"pantry-tracker/internal/service/inventory"

	"github.com/gin-gonic/gin"
)

type ShoppingHandler struct {
	svc *inventory.Service
}

func NewShoppingHandler(svc *inventory.Service) *ShoppingHandler {
	return &ShoppingHandler{svc: svc}
}

// GetShoppingList returns the items needing replenishment, ordered by
// category, with the estimated total cost of the trip.
func (h *ShoppingHandler) GetShoppingList(c *gin.Context) {
	items, total := h.svc.ShoppingList()
	if items == nil {
		items = []models.StockView{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total_cost": total})
}

// CompleteOne finishes the purchase of a single item. An item with nothing
// to purchase is a reported outcome, not an error.
func (h *ShoppingHandler) CompleteOne(c *gin.Context) {
	outcome, err := h.svc.CompleteOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete purchase"})
		return
	}

	if !outcome.Purchased {
		c.JSON(http.StatusOK, gin.H{"purchased": false, "message": "Nothing to purchase for this item"})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// CompleteChecked finishes every checked item and reports how many
// succeeded and how many were skipped.
func (h *ShoppingHandler) CompleteChecked(c *gin.Context) {
	result, err := h.svc.CompleteChecked(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete purchases"})
		return
	}

	c.JSON(http.StatusOK, result)
}
