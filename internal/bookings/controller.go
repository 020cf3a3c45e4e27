package bookings

import (
	"errors"
	"net/http"

	"busly/internal/routes"
	"busly/internal/seats"
	"busly/internal/shared/middleware"
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

// SubmitBooking handles POST /api/v1/bookings
func (c *Controller) SubmitBooking(ctx *gin.Context) {
	var req SubmitBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), middleware.SessionID(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPartialFailure):
			// result carries which items succeeded and which failed
			response.RespondJSON(ctx, "error", http.StatusBadGateway,
				"Some reservations could not be completed", result, err.Error())
		case errors.Is(err, seats.ErrEmptySelection):
			response.Error(ctx, http.StatusBadRequest, "No newly selected seats.", err.Error())
		case errors.Is(err, ErrSeatNotEligible), errors.Is(err, seats.ErrIncompleteKey):
			response.Error(ctx, http.StatusBadRequest, "Booking request rejected", err.Error())
		case errors.Is(err, routes.ErrNoMatch):
			response.Error(ctx, http.StatusNotFound, "No matching records found.", err.Error())
		case errors.Is(err, upstream.ErrUnavailable):
			response.Error(ctx, http.StatusBadGateway, "Failed to submit booking", err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to submit booking", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Reservation confirmed successfully", result)
}
