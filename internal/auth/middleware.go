package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/workleaf/resource-booking-backend/internal/user"
)

// IdentityRequired resolves the caller identity for every request.
//
// Two sources are accepted:
//   - Authorization: Bearer <jwt> — a gateway-issued token carrying the user
//     id and role claims.
//   - X-User-Id / X-Role headers — only when trustHeaders is set, for
//     deployments where an upstream gateway has already authenticated the
//     caller and forwards identity in plain headers.
func IdentityRequired(jwtManager *JWTManager, trustHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error_code": "UNAUTHORIZED",
					"message":    "invalid Authorization header format",
				})
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error_code": "UNAUTHORIZED",
					"message":    "invalid or expired token",
				})
				return
			}

			role := user.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
			if !role.Valid() {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error_code": "INVALID_ROLE",
					"message":    "invalid role claim",
				})
				return
			}

			SetIdentity(c, user.Identity{UserID: claims.UserID, Role: role})
			c.Next()
			return
		}

		if trustHeaders {
			userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
			role := user.Role(strings.ToLower(strings.TrimSpace(c.GetHeader("X-Role"))))

			if userID == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error_code": "UNAUTHORIZED",
					"message":    "missing X-User-Id header",
				})
				return
			}
			if !role.Valid() {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error_code": "INVALID_ROLE",
					"message":    "invalid role header",
				})
				return
			}

			SetIdentity(c, user.Identity{UserID: userID, Role: role})
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error_code": "UNAUTHORIZED",
			"message":    "missing Authorization header",
		})
	}
}
