package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupRouteRoutes configures the route-directory endpoints
func SetupRouteRoutes(rg *gin.RouterGroup, controller *Controller) {
	routes := rg.Group("/routes")
	{
		routes.GET("", controller.ListRoutes)                   // GET /api/v1/routes
		routes.GET("/origins", controller.GetOrigins)           // GET /api/v1/routes/origins
		routes.GET("/destinations", controller.GetDestinations) // GET /api/v1/routes/destinations?from=
		routes.GET("/timings", controller.GetTimings)           // GET /api/v1/routes/timings?from=&to=
		routes.GET("/resolve", controller.ResolveRoute)         // GET /api/v1/routes/resolve?from=&to=&timing=
	}
}
