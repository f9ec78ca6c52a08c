package waitlist

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWaitlistRoutes configures waitlist routes
func SetupWaitlistRoutes(rg *gin.RouterGroup, controller *Controller) {
	authorized := rg.Group("/events/:slug/waitlist")
	authorized.Use(middleware.JWTAuth())
	{
		authorized.GET("/position", controller.GetPosition) // GET /api/v1/events/:slug/waitlist/position
	}
}
