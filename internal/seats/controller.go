package seats

import (
	"errors"
	"net/http"

	"busly/internal/routes"
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

// GetBoard handles GET /api/v1/seats/board?sl_no=&date=&timing=
func (c *Controller) GetBoard(ctx *gin.Context) {
	var query BoardQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid board query", err.Error())
		return
	}

	key := RouteKey{SlNo: query.SlNo, Date: query.Date, Timing: query.Timing}
	board, err := c.service.Board(ctx.Request.Context(), middleware.SessionID(ctx), key)
	if err != nil {
		respondErr(ctx, err, "Failed to fetch seat board")
		return
	}
	response.Success(ctx, http.StatusOK, "Seat board retrieved successfully", board)
}

// ToggleSeat handles POST /api/v1/seats/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	var req ToggleSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	key := RouteKey{SlNo: req.SlNo, Date: req.Date, Timing: req.Timing}
	board, err := c.service.Toggle(ctx.Request.Context(), middleware.SessionID(ctx), key, req.Seat)
	if err != nil {
		respondErr(ctx, err, "Failed to toggle seat")
		return
	}
	response.Success(ctx, http.StatusOK, "Seat selection updated", board)
}

// ConfirmSelection handles POST /api/v1/seats/confirm
func (c *Controller) ConfirmSelection(ctx *gin.Context) {
	var req ConfirmSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	key := RouteKey{SlNo: req.SlNo, Date: req.Date, Timing: req.Timing}
	draft, err := c.service.Confirm(ctx.Request.Context(), middleware.SessionID(ctx), key)
	if err != nil {
		respondErr(ctx, err, "Failed to confirm selection")
		return
	}
	response.Success(ctx, http.StatusOK, "Selection confirmed", draft)
}

func respondErr(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrEmptySelection):
		response.Error(ctx, http.StatusBadRequest, "No newly selected seats.", err.Error())
	case errors.Is(err, ErrInvalidSeat), errors.Is(err, ErrIncompleteKey):
		response.Error(ctx, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, routes.ErrNoMatch):
		response.Error(ctx, http.StatusNotFound, "No matching records found.", err.Error())
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(ctx, http.StatusBadGateway, message, err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, message, err.Error())
	}
}
