package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/farmkart/farmkart-api/internal/notify"
	"github.com/farmkart/farmkart-api/internal/service"
)

type Handler struct {
	auth      *service.AuthService
	profiles  *service.ProfileService
	rfqs      *service.RFQService
	products  *service.ProductService
	carts     *service.CartService
	orders    *service.OrderService
	invoices  *service.InvoiceService
	messages  *service.MessageService
	analytics *service.AnalyticsService
	admin     *service.AdminService
	hub       *notify.Hub
	log       zerolog.Logger
}

type Services struct {
	Auth      *service.AuthService
	Profiles  *service.ProfileService
	RFQs      *service.RFQService
	Products  *service.ProductService
	Carts     *service.CartService
	Orders    *service.OrderService
	Invoices  *service.InvoiceService
	Messages  *service.MessageService
	Analytics *service.AnalyticsService
	Admin     *service.AdminService
}

func NewHandler(services Services, hub *notify.Hub, log zerolog.Logger) *Handler {
	return &Handler{
		auth:      services.Auth,
		profiles:  services.Profiles,
		rfqs:      services.RFQs,
		products:  services.Products,
		carts:     services.Carts,
		orders:    services.Orders,
		invoices:  services.Invoices,
		messages:  services.Messages,
		analytics: services.Analytics,
		admin:     services.Admin,
		hub:       hub,
		log:       log,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAccountLocked), errors.Is(err, service.ErrAccountSuspended):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(param)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
