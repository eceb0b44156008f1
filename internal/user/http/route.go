package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/users")

	group.Use(identityMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.UpdateProfile)
		group.GET("/:id/permissions", h.GetPermissions)
		group.PATCH("/:id/permissions", h.UpdatePermissions)
		group.POST("/:id/deactivate", h.Deactivate)
		group.POST("/:id/reactivate", h.Reactivate)
	}
}
