package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/workleaf/resource-booking-backend/internal/auth"
	"github.com/workleaf/resource-booking-backend/internal/booking"
	"github.com/workleaf/resource-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	filter := booking.Filter{
		UserID:     req.UserID,
		ResourceID: req.ResourceID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), caller, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	b, err := h.service.Create(c.Request.Context(), caller, booking.CreateRequest{
		UserID:       req.UserID,
		ResourceID:   req.ResourceID,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Title:        req.Title,
		Participants: req.Participants,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	b, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	b, err := h.service.Update(c.Request.Context(), caller, id, booking.UpdateRequest{
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Title:        req.Title,
		Participants: req.Participants,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_INPUT", "message": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	b, err := h.service.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
