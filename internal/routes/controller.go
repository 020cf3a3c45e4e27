package routes

import (
	"errors"
	"net/http"

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

// ListRoutes handles GET /api/v1/routes
func (c *Controller) ListRoutes(ctx *gin.Context) {
	routes, err := c.service.List(ctx.Request.Context())
	if err != nil {
		respondErr(ctx, err, "Failed to fetch routes")
		return
	}
	response.Success(ctx, http.StatusOK, "Routes retrieved successfully", routes)
}

// GetOrigins handles GET /api/v1/routes/origins
func (c *Controller) GetOrigins(ctx *gin.Context) {
	origins, err := c.service.Origins(ctx.Request.Context())
	if err != nil {
		respondErr(ctx, err, "Failed to fetch origins")
		return
	}
	response.Success(ctx, http.StatusOK, "Origins retrieved successfully", origins)
}

// GetDestinations handles GET /api/v1/routes/destinations?from=
func (c *Controller) GetDestinations(ctx *gin.Context) {
	from := ctx.Query("from")
	if from == "" {
		response.Error(ctx, http.StatusBadRequest, "query parameter 'from' is required", nil)
		return
	}

	destinations, err := c.service.Destinations(ctx.Request.Context(), from)
	if err != nil {
		respondErr(ctx, err, "Failed to fetch destinations")
		return
	}
	response.Success(ctx, http.StatusOK, "Destinations retrieved successfully", destinations)
}

// GetTimings handles GET /api/v1/routes/timings?from=&to=
func (c *Controller) GetTimings(ctx *gin.Context) {
	from, to := ctx.Query("from"), ctx.Query("to")
	if from == "" || to == "" {
		response.Error(ctx, http.StatusBadRequest, "query parameters 'from' and 'to' are required", nil)
		return
	}

	timings, err := c.service.Timings(ctx.Request.Context(), from, to)
	if err != nil {
		respondErr(ctx, err, "Failed to fetch departure timings")
		return
	}
	response.Success(ctx, http.StatusOK, "Departure timings retrieved successfully", timings)
}

// ResolveRoute handles GET /api/v1/routes/resolve?from=&to=&timing=
func (c *Controller) ResolveRoute(ctx *gin.Context) {
	from, to, timing := ctx.Query("from"), ctx.Query("to"), ctx.Query("timing")
	if from == "" || to == "" || timing == "" {
		response.Error(ctx, http.StatusBadRequest, "query parameters 'from', 'to' and 'timing' are required", nil)
		return
	}

	route, err := c.service.Resolve(ctx.Request.Context(), from, to, timing)
	if err != nil {
		respondErr(ctx, err, "Failed to resolve route")
		return
	}
	response.Success(ctx, http.StatusOK, "Route resolved successfully", route)
}

func respondErr(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNoMatch):
		response.Error(ctx, http.StatusNotFound, "No matching records found.", err.Error())
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(ctx, http.StatusBadGateway, message, err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, message, err.Error())
	}
}
