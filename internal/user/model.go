package user

import (
	"net/http"
	"time"

	"github.com/workleaf/resource-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "USER_NOT_FOUND", "user not found")
	ErrForbidden = apperror.New(http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "forbidden")
	ErrDuplicate = apperror.New(http.StatusConflict, "DUPLICATE_CONSTRAINT", "username or email already exists")
	ErrBadRole   = apperror.New(http.StatusBadRequest, "INVALID_ROLE", "invalid role")
)

// User represents an account that can own bookings.
type User struct {
	ID       string // UUID
	Username string
	Email    string
	FullName string

	Role     Role
	Priority Priority

	Department string
	MainSite   string

	// Resource type names this user is allowed to book. Admin callers bypass
	// this restriction when booking on a user's behalf.
	AllowedResourceTypes []string

	IsActive  bool
	CreatedAt time.Time
}

// Filter defines parameters for listing users.
type Filter struct {
	Page     int
	PageSize int
}
