package cancellation

import (
	"errors"
	"net/http"

	"busly/internal/shared/utils/response"
	"busly/internal/tickets"
	"busly/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SearchTicket handles GET /api/v1/cancellations/search?ticket_number=
func (c *Controller) SearchTicket(ctx *gin.Context) {
	ticketNumber := ctx.Query("ticket_number")
	if ticketNumber == "" {
		response.Error(ctx, http.StatusBadRequest, "query parameter 'ticket_number' is required", nil)
		return
	}

	record, err := c.service.Search(ctx.Request.Context(), ticketNumber)
	if err != nil {
		c.respondErr(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Reservation found", record)
}

// CancelTicket handles DELETE /api/v1/cancellations/:ticket_number
func (c *Controller) CancelTicket(ctx *gin.Context) {
	ticketNumber := ctx.Param("ticket_number")

	if err := c.service.Cancel(ctx.Request.Context(), ticketNumber); err != nil {
		c.respondErr(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Your ticket has been cancelled successfully.", gin.H{
		"ticket_number": ticketNumber,
	})
}

func (c *Controller) respondErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, tickets.ErrNoMatch):
		response.Error(ctx, http.StatusNotFound, "No matching records found.", err.Error())
	case errors.Is(err, ErrCancelFailed):
		response.Error(ctx, http.StatusBadGateway, "Error cancelling ticket. Please try again.", err.Error())
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(ctx, http.StatusBadGateway, "Failed to fetch reservations", err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, "Failed to process cancellation", err.Error())
	}
}
