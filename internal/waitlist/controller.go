package waitlist

import (
	"errors"
	"net/http"

	"ticketly/internal/events"
	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service    Service
	eventsRepo events.Repository
}

func NewController(service Service, eventsRepo events.Repository) *Controller {
	return &Controller{service: service, eventsRepo: eventsRepo}
}

// GetPosition handles GET /api/v1/events/:slug/waitlist/position
func (c *Controller) GetPosition(ctx *gin.Context) {
	email := ctx.GetString("user_email")
	if email == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	event, err := c.eventsRepo.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get event", nil, err.Error())
		return
	}

	entry, err := c.service.GetPosition(ctx.Request.Context(), event.ID, email)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Not on the waitlist for this event", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get waitlist position", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Waitlist position retrieved successfully", entry, nil)
}
