package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/workleaf/resource-booking-backend/internal/auth"
	"github.com/workleaf/resource-booking-backend/internal/pkg/response"
	"github.com/workleaf/resource-booking-backend/internal/resource"
)

// maxImageUploadBytes caps resource photo uploads.
const maxImageUploadBytes = 10 << 20

type Handler struct {
	service resource.Service
}

func NewHandler(service resource.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListResourcesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	filter := resource.Filter{
		Type:        req.Type,
		Site:        req.Site,
		Status:      req.Status,
		MinCapacity: req.MinCapacity,
		Feature:     req.Feature,
		Sort:        req.Sort,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}

	resources, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ResourceResponse, len(resources))
	for i, res := range resources {
		items[i] = NewResourceResponse(res)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	res, err := h.service.Create(c.Request.Context(), caller, resource.CreateRequest{
		Name:               req.Name,
		Type:               resource.Type(req.Type),
		CapacityMax:        req.CapacityMax,
		Description:        req.Description,
		Features:           req.Features,
		Site:               req.Site,
		Building:           req.Building,
		Floor:              req.Floor,
		RoomNumber:         req.RoomNumber,
		OpenTime:           req.OpenTime,
		CloseTime:          req.CloseTime,
		Status:             resource.Status(req.Status),
		HourlyRateInternal: req.HourlyRateInternal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResourceResponse(res))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResourceResponse(res))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	update := resource.UpdateRequest{
		Name:               req.Name,
		CapacityMax:        req.CapacityMax,
		Description:        req.Description,
		Features:           req.Features,
		Site:               req.Site,
		Building:           req.Building,
		Floor:              req.Floor,
		RoomNumber:         req.RoomNumber,
		OpenTime:           req.OpenTime,
		CloseTime:          req.CloseTime,
		HourlyRateInternal: req.HourlyRateInternal,
	}
	if req.Status != nil {
		st := resource.Status(*req.Status)
		update.Status = &st
	}

	res, err := h.service.Update(c.Request.Context(), caller, id, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResourceResponse(res))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	res, err := h.service.SoftDelete(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResourceResponse(res))
}

func (h *Handler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "image file is required"})
		return
	}
	if header.Size > maxImageUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "image too large"})
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "failed to read uploaded file"})
		return
	}
	defer src.Close()

	caller := auth.GetIdentity(c)

	res, err := h.service.UploadImage(c.Request.Context(), caller, id, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResourceResponse(res))
}
