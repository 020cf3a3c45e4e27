package tickets

import (
	"github.com/gin-gonic/gin"
)

// SetupTicketRoutes configures the ticket lookup and export endpoints
func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller) {
	tickets := rg.Group("/tickets")
	{
		tickets.GET("", controller.GetTickets)                        // GET /api/v1/tickets?numbers=a,b
		tickets.GET("/:ticket_number", controller.GetTicket)          // GET /api/v1/tickets/:ticket_number
		tickets.GET("/:ticket_number/pdf", controller.DownloadTicket) // GET /api/v1/tickets/:ticket_number/pdf
	}
}
