package handlers

import (
	"errors"
	"net/http"

	"pantry-tracker/internal/models"
	"pantry-tracker/internal/service/inventory"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type StockHandler struct {
	svc       *inventory.Service
	validator *validator.Validate
}

func NewStockHandler(svc *inventory.Service) *StockHandler {
	return &StockHandler{
		svc:       svc,
		validator: validator.New(),
	}
}

// GetStock returns the stock table projection, grouped by category.
func (h *StockHandler) GetStock(c *gin.Context) {
	groups := h.svc.StockGroups()
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *StockHandler) CreateItem(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.svc.AddItem(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *StockHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.svc.EditItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *StockHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// SetPrice writes the last price paid for an item. Invalid or negative
// input coerces to 0 rather than failing.
func (h *StockHandler) SetPrice(c *gin.Context) {
	var req models.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.svc.SetPrice(c.Request.Context(), c.Param("id"), req.Price)
	if err != nil {
		h.writeError(c, err, "Failed to set price")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *StockHandler) SetManualQuantity(c *gin.Context) {
	var req models.SetManualQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.svc.SetManualQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		h.writeError(c, err, "Failed to set manual quantity")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *StockHandler) SetChecked(c *gin.Context) {
	var req models.SetCheckedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.svc.ToggleChecked(c.Param("id"), req.Checked); err != nil {
		h.writeError(c, err, "Failed to set checked flag")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "checked": req.Checked})
}

func (h *StockHandler) writeError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
