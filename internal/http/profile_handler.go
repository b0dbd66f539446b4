package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/service"
)

func (h *Handler) getProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	user, err := h.profiles.Get(c.Request.Context(), principal.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	FullName        *string            `json:"fullName"`
	Mobile          *string            `json:"mobile"`
	Bio             *string            `json:"bio"`
	ProfilePicture  *string            `json:"profilePicture"`
	FarmName        *string            `json:"farmName"`
	FarmAddress     *model.Address     `json:"farmAddress"`
	FarmGeolocation *model.Geolocation `json:"farmGeolocation"`
	CropsGrown      []string           `json:"cropsGrown"`
	BusinessName    *string            `json:"businessName"`
	BankDetails     *model.BankDetails `json:"bankDetails"`
	Documents       []model.Document   `json:"documents"`
	Photos          []string           `json:"photos"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profiles.Update(c.Request.Context(), principal.ID, service.UpdateProfileInput{
		FullName:        req.FullName,
		Mobile:          req.Mobile,
		Bio:             req.Bio,
		ProfilePicture:  req.ProfilePicture,
		FarmName:        req.FarmName,
		FarmAddress:     req.FarmAddress,
		FarmGeolocation: req.FarmGeolocation,
		CropsGrown:      req.CropsGrown,
		BusinessName:    req.BusinessName,
		BankDetails:     req.BankDetails,
		Documents:       req.Documents,
		Photos:          req.Photos,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *Handler) changePassword(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profiles.ChangePassword(c.Request.Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) listBuyers(c *gin.Context) {
	buyers, err := h.profiles.ListBuyers(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, buyers)
}
