package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/workleaf/resource-booking-backend/internal/auth"
	"github.com/workleaf/resource-booking-backend/internal/pkg/response"
	"github.com/workleaf/resource-booking-backend/internal/user"
)

type Handler struct {
	service user.Service
}

func NewHandler(service user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	users, total, err := h.service.List(c.Request.Context(), caller, user.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	// New accounts are active unless the payload says otherwise.
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	u, err := h.service.Create(c.Request.Context(), caller, user.CreateRequest{
		Username:             req.Username,
		Email:                req.Email,
		FullName:             req.FullName,
		Role:                 user.Role(req.Role),
		Department:           req.Department,
		MainSite:             req.MainSite,
		AllowedResourceTypes: req.AllowedResourceTypes,
		Priority:             user.Priority(req.Priority),
		IsActive:             active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewUserResponse(u))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	u, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	u, err := h.service.UpdateProfile(c.Request.Context(), caller, id, user.ProfileUpdateRequest{
		FullName:   req.FullName,
		Department: req.Department,
		MainSite:   req.MainSite,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) GetPermissions(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	u, err := h.service.GetPermissions(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPermissionsResponse(u))
}

func (h *Handler) UpdatePermissions(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	var req UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	update := user.PermissionsUpdateRequest{
		AllowedResourceTypes: req.AllowedResourceTypes,
		IsActive:             req.IsActive,
	}
	if req.Role != nil {
		role := user.Role(*req.Role)
		update.Role = &role
	}
	if req.Priority != nil {
		priority := user.Priority(*req.Priority)
		update.Priority = &priority
	}

	u, err := h.service.UpdatePermissions(c.Request.Context(), caller, id, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) Deactivate(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	u, err := h.service.Deactivate(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) Reactivate(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	u, err := h.service.Reactivate(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}
