package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
)

func (h *Handler) getCart(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	cart, err := h.carts.Get(c.Request.Context(), principal.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required"`
}

func (h *Handler) setCartItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.carts.SetItem(c.Request.Context(), principal.ID, req.ProductID, req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), principal.ID, productID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
