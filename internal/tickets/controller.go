package tickets

import (
	"errors"
	"net/http"

	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	repo Repository
}

func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// GetTicket handles GET /api/v1/tickets/:number
func (c *Controller) GetTicket(ctx *gin.Context) {
	ticket, err := c.repo.GetByNumber(ctx.Request.Context(), ctx.Param("number"))
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Ticket not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get ticket", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

// ValidateTicket handles POST /api/v1/tickets/validate. Gate scanners
// post a scanned QR payload and get back the matching ticket if the
// payload is authentic and consistent with the stored record.
func (c *Controller) ValidateTicket(ctx *gin.Context) {
	var req struct {
		QRPayload string `json:"qr_payload" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticketNumber, bookingID, _, err := DecodeQRPayload(req.QRPayload)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid QR payload", nil, nil)
		return
	}

	ticket, err := c.repo.GetByNumber(ctx.Request.Context(), ticketNumber)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Ticket not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to validate ticket", nil, err.Error())
		return
	}

	if ticket.BookingID != bookingID {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "QR payload does not match ticket", nil, nil)
		return
	}
	if ticket.Status != StatusActive {
		response.RespondJSON(ctx, "error", http.StatusConflict, "Ticket is not active", nil, gin.H{"status": ticket.Status})
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket is valid", ticket, nil)
}
