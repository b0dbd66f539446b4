package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/service"
)

const sessionCookieMaxAge = 7 * 24 * 60 * 60

type registerRequest struct {
	FullName string     `json:"fullName" binding:"required"`
	Email    string     `json:"email" binding:"required"`
	Mobile   string     `json:"mobile"`
	Password string     `json:"password" binding:"required"`
	Role     model.Role `json:"role" binding:"required"`

	FarmName        string            `json:"farmName"`
	FarmAddress     model.Address     `json:"farmAddress"`
	FarmGeolocation model.Geolocation `json:"farmGeolocation"`
	CropsGrown      []string          `json:"cropsGrown"`
	BusinessName    string            `json:"businessName"`

	CompanyName              string   `json:"companyName"`
	BusinessType             string   `json:"businessType"`
	CompanyAddress           string   `json:"companyAddress"`
	GSTIN                    string   `json:"gstin"`
	CIN                      string   `json:"cin"`
	ContactPersonName        string   `json:"contactPersonName"`
	ContactPersonDesignation string   `json:"contactPersonDesignation"`
	ProduceRequired          []string `json:"produceRequired"`

	DeliveryAddress string `json:"deliveryAddress"`
	BillingAddress  string `json:"billingAddress"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		FullName:                 req.FullName,
		Email:                    req.Email,
		Mobile:                   req.Mobile,
		Password:                 req.Password,
		Role:                     req.Role,
		FarmName:                 req.FarmName,
		FarmAddress:              req.FarmAddress,
		FarmGeolocation:          req.FarmGeolocation,
		CropsGrown:               req.CropsGrown,
		BusinessName:             req.BusinessName,
		CompanyName:              req.CompanyName,
		BusinessType:             req.BusinessType,
		CompanyAddress:           req.CompanyAddress,
		GSTIN:                    req.GSTIN,
		CIN:                      req.CIN,
		ContactPersonName:        req.ContactPersonName,
		ContactPersonDesignation: req.ContactPersonDesignation,
		ProduceRequired:          req.ProduceRequired,
		DeliveryAddress:          req.DeliveryAddress,
		BillingAddress:           req.BillingAddress,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie(), result.Token, sessionCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie(), "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	user, err := h.auth.Me(c.Request.Context(), principal.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
