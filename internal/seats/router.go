package seats

import (
	"busly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes configures the seat board endpoints. Mutations require
// an explicit session so selection state survives across requests.
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	seats := rg.Group("/seats")
	{
		seats.GET("/board", controller.GetBoard) // GET /api/v1/seats/board?sl_no=&date=&timing=

		mutating := seats.Group("")
		mutating.Use(middleware.RequireSession())
		{
			mutating.POST("/toggle", controller.ToggleSeat)        // POST /api/v1/seats/toggle
			mutating.POST("/confirm", controller.ConfirmSelection) // POST /api/v1/seats/confirm
		}
	}
}
