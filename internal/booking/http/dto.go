package http

import (
	"time"

	"github.com/workleaf/resource-booking-backend/internal/booking"
	"github.com/workleaf/resource-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
	ResourceID string `form:"resource_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed no-show"`
}

// CreateBookingRequest is the payload for placing a booking.
type CreateBookingRequest struct {
	UserID       string    `json:"user_id" binding:"required,uuid"`
	ResourceID   string    `json:"resource_id" binding:"required,uuid"`
	StartAt      time.Time `json:"start_at" binding:"required"`
	EndAt        time.Time `json:"end_at" binding:"required"`
	Title        string    `json:"title" binding:"required,max=200"`
	Participants int       `json:"participants" binding:"omitempty,min=1"`
	Notes        string    `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateBookingRequest patches a booking; absent fields are left untouched.
type UpdateBookingRequest struct {
	StartAt      *time.Time `json:"start_at"`
	EndAt        *time.Time `json:"end_at"`
	Title        *string    `json:"title" binding:"omitempty,max=200"`
	Participants *int       `json:"participants" binding:"omitempty,min=1"`
	Notes        *string    `json:"notes" binding:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	ResourceID   string    `json:"resource_id"`
	UserID       string    `json:"user_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	Title        string    `json:"title"`
	Participants int       `json:"participants"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		UserID:       b.UserID,
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		Status:       string(b.Status),
		Title:        b.Title,
		Participants: b.Participants,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
	}
}
