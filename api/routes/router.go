// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"busly/internal/bookings"
	"busly/internal/cancellation"
	routedir "busly/internal/routes"
	"busly/internal/seats"
	"busly/internal/shared/config"
	"busly/internal/tickets"
	"busly/internal/upstream"
	"busly/pkg/cache"
	"busly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	client       *upstream.Client
	cacheService cache.Service
	store        seats.SelectionStore
	log          *logger.Logger

	routeService routedir.Service // shared across domain packages
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, client *upstream.Client, cacheService cache.Service, store seats.SelectionStore, log *logger.Logger) *Router {
	return &Router{
		config:       cfg,
		client:       client,
		cacheService: cacheService,
		store:        store,
		log:          log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Route directory first: other domains resolve routes through it
		r.setupRouteRoutes(api)
		r.setupSeatRoutes(api)
		r.setupBookingRoutes(api)
		r.setupTicketRoutes(api)
		r.setupCancellationRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if r.cacheService != nil {
			if err := r.cacheService.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"error":     err.Error(),
					"timestamp": time.Now(),
					"service":   "busly",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busly",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupRouteRoutes configures the route directory
func (r *Router) setupRouteRoutes(rg *gin.RouterGroup) {
	r.routeService = routedir.NewService(r.client, r.cacheService, r.config.Redis.RouteCacheTTL)
	controller := routedir.NewController(r.routeService)

	routedir.SetupRouteRoutes(rg, controller)
}

// setupSeatRoutes configures the seat board
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatService := seats.NewService(r.client, r.store, r.routeService)
	controller := seats.NewController(seatService)

	seats.SetupSeatRoutes(rg, controller)
}

// setupBookingRoutes configures reservation submission
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	seatService := seats.NewService(r.client, r.store, r.routeService)
	bookingService := bookings.NewService(r.client, seatService, r.routeService, r.log)
	controller := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, controller)
}

// setupTicketRoutes configures ticket lookup and export
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketService := tickets.NewService(r.client)
	controller := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, controller)
}

// setupCancellationRoutes configures the cancellation flow
func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	ticketService := tickets.NewService(r.client)
	cancellationService := cancellation.NewService(r.client, ticketService, r.log)
	controller := cancellation.NewController(cancellationService)

	cancellation.SetupCancellationRoutes(rg, controller)
}
