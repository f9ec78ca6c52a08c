package promos

import (
	"errors"
	"net/http"

	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreatePromo handles POST /api/v1/admin/promos
func (c *Controller) CreatePromo(ctx *gin.Context) {
	var req CreatePromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	promo, err := c.service.CreatePromo(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Promo code already exists", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create promo code", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Promo code created successfully", promo, nil)
}

// ListPromos handles GET /api/v1/admin/promos
func (c *Controller) ListPromos(ctx *gin.Context) {
	promoCodes, err := c.service.ListPromos(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list promo codes", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo codes retrieved successfully", promoCodes, nil)
}
