package events

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures all event-related routes
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	{
		// Public browsing
		events.GET("", controller.ListEvents)     // GET /api/v1/events
		events.GET("/:slug", controller.GetEvent) // GET /api/v1/events/:slug

		// Organizer operations
		authorized := events.Group("")
		authorized.Use(middleware.JWTAuth(), middleware.RequireRoles("ORGANIZER", "ADMIN"))
		{
			authorized.POST("", controller.CreateEvent) // POST /api/v1/events
		}
	}
}
