package promos

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPromoRoutes configures promo code administration routes
func SetupPromoRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin/promos")
	admin.Use(middleware.JWTAuth(), middleware.RequireRole("ADMIN"))
	{
		admin.POST("", controller.CreatePromo) // POST /api/v1/admin/promos
		admin.GET("", controller.ListPromos)   // GET /api/v1/admin/promos
	}
}
