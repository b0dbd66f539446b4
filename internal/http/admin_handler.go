package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/repository"
	"github.com/farmkart/farmkart-api/internal/service"
)

func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context(), repository.UserFilter{
		Role:    model.Role(c.Query("role")),
		Keyword: c.Query("search"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) adminVerifyUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.admin.VerifyUser(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type adminUpdateUserRequest struct {
	Role        *model.Role `json:"role"`
	IsSuspended *bool       `json:"isSuspended"`
	IsVerified  *bool       `json:"isVerified"`
}

func (h *Handler) adminUpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.admin.UpdateUser(c.Request.Context(), id, service.AdminUpdateUserInput{
		Role:        req.Role,
		IsSuspended: req.IsSuspended,
		IsVerified:  req.IsVerified,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) adminDeleteUser(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *Handler) adminListAudit(c *gin.Context) {
	filter := repository.AuditFilter{
		EntityType: model.AuditEntityType(c.Query("entityType")),
		EventType:  c.Query("eventType"),
	}
	if raw := c.Query("entityId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entityId"})
			return
		}
		filter.EntityID = id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	entries, err := h.admin.ListAudit(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
