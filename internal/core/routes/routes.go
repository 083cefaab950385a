package routes

import (
	"stockflow/internal/core/container"
	"stockflow/internal/middleware"
	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes wires endpoints reachable without a token.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
	router.GET("/health", middleware.HealthCheckHandler())
}

// RegisterProtectedRoutes wires everything behind JWT authentication.
// Per-route role checks live in each handler's RegisterRoutes.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protected := router.Group("/api")
	protected.Use(security.JWTMiddleware())

	c.ItemHandler.RegisterRoutes(protected)
	c.MovementHandler.RegisterRoutes(protected)
	c.LocationHandler.RegisterRoutes(protected)
	c.CommentHandler.RegisterRoutes(protected)
	c.UserHandler.RegisterRoutes(protected)
	c.ReportHandler.RegisterRoutes(protected)
	c.AssistantHandler.RegisterRoutes(protected)

	if c.SheetsHandler != nil {
		c.SheetsHandler.RegisterRoutes(protected)
	}
}
