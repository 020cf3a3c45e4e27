package cancellation

import (
	"github.com/gin-gonic/gin"
)

// SetupCancellationRoutes configures the cancellation lookup endpoints
func SetupCancellationRoutes(rg *gin.RouterGroup, controller *Controller) {
	cancellations := rg.Group("/cancellations")
	{
		cancellations.GET("/search", controller.SearchTicket)          // GET /api/v1/cancellations/search?ticket_number=
		cancellations.DELETE("/:ticket_number", controller.CancelTicket) // DELETE /api/v1/cancellations/:ticket_number
	}
}
