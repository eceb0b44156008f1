package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workleaf/resource-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Error sends a JSON error response.
// AppErrors map to their own status and machine-readable code; anything else
// becomes a 500 with a generic body so internals never leak to clients.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, ErrorResponse{ErrorCode: appErr.Code, Message: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "INTERNAL_ERROR",
		Message:   "internal server error",
	})
}
