package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/service"
)

type productRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category" binding:"required"`
	Subcategory string    `json:"subcategory"`
	Origin      string    `json:"origin"`
	Price       float64   `json:"price" binding:"required"`
	Currency    string    `json:"currency"`
	Discount    float64   `json:"discount"`
	Unit        string    `json:"unit" binding:"required"`
	Quantity    float64   `json:"quantity"`
	MOQ         float64   `json:"moq"`
	HarvestDate time.Time `json:"harvestDate"`
	ShelfLife   string    `json:"shelfLife"`
	Grade       string    `json:"grade"`
	Packaging   string    `json:"packaging"`
	SKU         string    `json:"sku"`
	Images      []string  `json:"images"`
}

func (r productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Origin:      r.Origin,
		Price:       r.Price,
		Currency:    r.Currency,
		Discount:    r.Discount,
		Unit:        r.Unit,
		Quantity:    r.Quantity,
		MOQ:         r.MOQ,
		HarvestDate: r.HarvestDate,
		ShelfLife:   r.ShelfLife,
		Grade:       r.Grade,
		Packaging:   r.Packaging,
		SKU:         r.SKU,
		Images:      r.Images,
	}
}

func (h *Handler) createProduct(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), req.toInput(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) listMyProducts(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	products, err := h.products.ListMine(c.Request.Context(), c.Query("search"), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.products.ListAll(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req.toInput(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type productStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateProductStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req productStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.UpdateStatus(c.Request.Context(), id, model.ProductStatus(req.Status), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) toggleProductPublish(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.TogglePublish(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) listProductTitles(c *gin.Context) {
	titles, err := h.products.Titles(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, titles)
}
