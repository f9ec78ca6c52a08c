package bookings

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	authorized := rg.Group("")
	authorized.Use(middleware.JWTAuth())
	{
		authorized.POST("/events/:slug/book", controller.AdmitBooking) // POST /api/v1/events/:slug/book
		authorized.GET("/bookings/:id", controller.GetBooking)         // GET /api/v1/bookings/:id
		authorized.GET("/users/bookings", controller.GetUserBookings)  // GET /api/v1/users/bookings
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireRole("ADMIN"))
	{
		admin.GET("/bookings", controller.GetAllBookings) // GET /api/v1/admin/bookings
	}
}
