package booking

import (
	"time"

	"github.com/workleaf/resource-booking-backend/internal/timeslot"
	"github.com/workleaf/resource-booking-backend/internal/user"
)

const (
	// MinDurationMinutes and MaxDurationMinutes bound a booking window,
	// measured after grid alignment.
	MinDurationMinutes = 30
	MaxDurationMinutes = 8 * 60
)

// normalizeSlot aligns a proposed window to the booking grid and validates
// it. Both instants are rounded down to the 15-minute grid first, so a window
// that looked long enough before rounding can legitimately fail afterwards.
//
// The past-start check is skipped for admins and, on updates that leave the
// window untouched, for everyone (enforcePast=false).
func normalizeSlot(start, end time.Time, role user.Role, enforcePast bool, now time.Time) (time.Time, time.Time, error) {
	start = timeslot.RoundToStep(start, timeslot.DefaultStepMinutes)
	end = timeslot.RoundToStep(end, timeslot.DefaultStepMinutes)

	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidTimeSlot
	}

	minutes := timeslot.MinutesBetween(start, end)
	if minutes < MinDurationMinutes {
		return time.Time{}, time.Time{}, ErrDurationTooShort
	}
	if minutes > MaxDurationMinutes {
		return time.Time{}, time.Time{}, ErrDurationTooLong
	}

	if enforcePast && !bypassesPastCheck(role) && start.Before(now) {
		return time.Time{}, time.Time{}, ErrPastBooking
	}

	return start, end, nil
}
