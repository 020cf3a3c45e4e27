package tickets

import (
	"errors"
	"net/http"
	"strings"

	"busly/internal/shared/utils/response"
	"busly/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetTickets handles GET /api/v1/tickets?numbers=a,b,c — the
// confirmation view after a booking.
func (c *Controller) GetTickets(ctx *gin.Context) {
	raw := ctx.Query("numbers")
	if raw == "" {
		response.Error(ctx, http.StatusBadRequest, "query parameter 'numbers' is required", nil)
		return
	}

	var numbers []string
	for _, n := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			numbers = append(numbers, trimmed)
		}
	}

	records, err := c.service.FindByNumbers(ctx.Request.Context(), numbers)
	if err != nil {
		c.respondErr(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Tickets retrieved successfully", records)
}

// GetTicket handles GET /api/v1/tickets/:ticket_number
func (c *Controller) GetTicket(ctx *gin.Context) {
	record, err := c.service.FindOne(ctx.Request.Context(), ctx.Param("ticket_number"))
	if err != nil {
		c.respondErr(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Ticket retrieved successfully", record)
}

// DownloadTicket handles GET /api/v1/tickets/:ticket_number/pdf
func (c *Controller) DownloadTicket(ctx *gin.Context) {
	record, err := c.service.FindOne(ctx.Request.Context(), ctx.Param("ticket_number"))
	if err != nil {
		c.respondErr(ctx, err)
		return
	}

	data, filename, err := RenderTicketPDF(*record)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to render ticket", err.Error())
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", data)
}

func (c *Controller) respondErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoMatch):
		response.Error(ctx, http.StatusNotFound, "No matching records found.", err.Error())
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(ctx, http.StatusBadGateway, "Failed to fetch tickets", err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch tickets", err.Error())
	}
}
