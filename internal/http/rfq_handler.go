package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/service"
)

type createRFQRequest struct {
	Product          string      `json:"product" binding:"required"`
	Category         string      `json:"category" binding:"required"`
	Quantity         float64     `json:"quantity" binding:"required"`
	Unit             string      `json:"unit" binding:"required"`
	DeliveryDeadline time.Time   `json:"deliveryDeadline" binding:"required"`
	AdditionalNotes  string      `json:"additionalNotes"`
	Type             string      `json:"type"`
	Region           string      `json:"region" binding:"required"`
	InvitedFarmers   []uuid.UUID `json:"invitedFarmers"`
	Attachments      []string    `json:"attachments"`
}

func (h *Handler) createRFQ(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rfq, err := h.rfqs.Create(c.Request.Context(), service.CreateRFQInput{
		Product:          req.Product,
		Category:         req.Category,
		Quantity:         req.Quantity,
		Unit:             req.Unit,
		DeliveryDeadline: req.DeliveryDeadline,
		AdditionalNotes:  req.AdditionalNotes,
		Type:             model.RFQType(req.Type),
		Region:           req.Region,
		InvitedFarmers:   req.InvitedFarmers,
		Attachments:      req.Attachments,
		Principal:        principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rfq)
}

func (h *Handler) listRFQs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	result, err := h.rfqs.List(c.Request.Context(), service.ListRFQsInput{
		Keyword:   c.Query("search"),
		Category:  c.Query("category"),
		Region:    c.Query("region"),
		Sort:      c.Query("sort"),
		Page:      page,
		Browse:    c.Query("browse") == "true",
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getRFQ(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rfq, err := h.rfqs.Get(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

func (h *Handler) listRegions(c *gin.Context) {
	regions, err := h.rfqs.Regions(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *Handler) listTransportMethods(c *gin.Context) {
	c.JSON(http.StatusOK, h.rfqs.TransportMethods())
}

type submitBidRequest struct {
	PricePerUnit    float64   `json:"pricePerUnit" binding:"required"`
	WindowStart     time.Time `json:"deliveryWindowStart" binding:"required"`
	WindowEnd       time.Time `json:"deliveryWindowEnd" binding:"required"`
	TransportMethod string    `json:"transportMethod" binding:"required"`
	Remarks         string    `json:"remarks"`
}

func (h *Handler) submitBid(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req submitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.rfqs.SubmitBid(c.Request.Context(), service.SubmitBidInput{
		RFQID:        rfqID,
		PricePerUnit: req.PricePerUnit,
		DeliveryWindow: model.DeliveryWindow{
			Start: req.WindowStart,
			End:   req.WindowEnd,
		},
		TransportMethod: req.TransportMethod,
		Remarks:         req.Remarks,
		Principal:       principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

func (h *Handler) listBids(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}

	bids, err := h.rfqs.ListBids(c.Request.Context(), rfqID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}

func (h *Handler) listMyBids(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	bids, err := h.rfqs.ListMyBids(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}

func (h *Handler) acceptBid(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	bidID, ok := parseID(c, "bidId")
	if !ok {
		return
	}

	result, err := h.rfqs.AcceptBid(c.Request.Context(), rfqID, bidID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
