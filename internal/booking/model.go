package booking

import (
	"net/http"
	"time"

	"github.com/workleaf/resource-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrForbidden           = apperror.New(http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "forbidden")
	ErrUserDisabled        = apperror.New(http.StatusBadRequest, "USER_DISABLED", "this user account is disabled")
	ErrResourceNotBookable = apperror.New(http.StatusBadRequest, "RESOURCE_NOT_BOOKABLE", "resource is not available for booking")
	ErrInvalidTimeSlot     = apperror.New(http.StatusBadRequest, "INVALID_TIME_SLOT", "end time must be after start time")
	ErrDurationTooShort    = apperror.New(http.StatusBadRequest, "DURATION_TOO_SHORT", "minimum duration is 30 minutes")
	ErrDurationTooLong     = apperror.New(http.StatusBadRequest, "DURATION_TOO_LONG", "maximum duration is 8 hours")
	ErrPastBooking         = apperror.New(http.StatusBadRequest, "PAST_BOOKING_NOT_ALLOWED", "booking in the past is not allowed")
	ErrCapacityExceeded    = apperror.New(http.StatusBadRequest, "CAPACITY_EXCEEDED", "participants exceed room capacity")
	ErrConflict            = apperror.New(http.StatusConflict, "BOOKING_CONFLICT", "this resource is already booked for this time slot")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// Active reports whether a booking in this status occupies its time slot.
// Only active bookings participate in conflict detection.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking represents a reservation of a resource for a half-open time
// window [StartAt, EndAt). Both instants are stored in UTC, aligned to the
// 15-minute grid.
type Booking struct {
	ID         string // UUID
	ResourceID string
	UserID     string

	StartAt time.Time
	EndAt   time.Time

	Status       Status
	Title        string
	Participants int
	Notes        string

	CreatedAt time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	ResourceID string
	Status     string
	Page       int
	PageSize   int
}
