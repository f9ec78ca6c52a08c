package tickets

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTicketRoutes configures ticket lookup and validation routes
func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller) {
	ticketsGroup := rg.Group("/tickets")
	ticketsGroup.Use(middleware.JWTAuth(), middleware.RequireRoles("ORGANIZER", "ADMIN"))
	{
		ticketsGroup.GET("/:number", controller.GetTicket)        // GET /api/v1/tickets/:number
		ticketsGroup.POST("/validate", controller.ValidateTicket) // POST /api/v1/tickets/validate
	}
}
