package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/workleaf/resource-booking-backend/internal/user"
)

const identityKey = "identity"

// SetIdentity stores the resolved caller identity into the Gin context.
func SetIdentity(c *gin.Context, id user.Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the authenticated caller identity, or a zero value if
// the request was not authenticated.
func GetIdentity(c *gin.Context) user.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(user.Identity); ok {
			return id
		}
	}
	return user.Identity{}
}
