package bookings

import (
	"busly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures the reservation submission endpoint
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.RequireSession())
	{
		bookings.POST("", controller.SubmitBooking) // POST /api/v1/bookings
	}
}
